// Package engine holds the pure Tetris rules: piece geometry, the board grid
// and the session state machine. It performs no I/O and has no timers; the
// platform layer drives it one tick at a time.
package engine

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindT
	KindL
	KindJ
	KindZ
	KindS
)

// KindCount is the number of distinct piece kinds.
const KindCount = 7

// Orientation is a clockwise rotation state.
type Orientation int

const (
	Up Orientation = iota
	Right
	Down
	Left
)

// OrientationCount is the number of rotation states per piece.
const OrientationCount = 4

// Next returns the orientation after one clockwise turn.
func (o Orientation) Next() Orientation {
	return (o + 1) % OrientationCount
}

func (o Orientation) String() string {
	switch o {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Offset is a cell position relative to a piece anchor.
type Offset struct {
	DX, DY int
}

// shapes is indexed [kind][orientation][cell].
var shapes = [KindCount][OrientationCount][4]Offset{
	KindI: {
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
	},
	KindO: {
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {2, 1}},
	},
	KindT: {
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	KindL: {
		{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
	KindJ: {
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
	},
	KindZ: {
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
	},
	KindS: {
		{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
}

var colors = [KindCount]core.Color{
	KindI: core.ColorCyan,
	KindO: core.ColorBrightYellow,
	KindT: core.ColorMagenta,
	KindL: core.ColorOrange,
	KindJ: core.ColorBlue,
	KindZ: core.ColorRed,
	KindS: core.ColorGreen,
}

var names = [KindCount]string{"I", "O", "T", "L", "J", "Z", "S"}

func init() {
	if err := validateShapes(); err != nil {
		panic(err)
	}
}

// validateShapes checks every (kind, orientation) entry has 4 distinct
// cells inside the 4x4 local box.
func validateShapes() error {
	for k := range KindCount {
		for o := range OrientationCount {
			seen := make(map[Offset]bool, 4)
			for _, c := range shapes[k][o] {
				if c.DX < 0 || c.DX > 3 || c.DY < 0 || c.DY > 3 {
					return fmt.Errorf("engine: %s/%s cell %v outside 4x4 box", names[k], Orientation(o), c)
				}
				if seen[c] {
					return fmt.Errorf("engine: %s/%s repeats cell %v", names[k], Orientation(o), c)
				}
				seen[c] = true
			}
		}
		if colors[k] == core.ColorDefault {
			return fmt.Errorf("engine: %s has no color", names[k])
		}
	}
	return nil
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindS
}

// String returns the single-letter piece name.
func (k Kind) String() string {
	return Name(k)
}

// CellOffsets returns the four occupied cells of kind k in orientation o.
func CellOffsets(k Kind, o Orientation) [4]Offset {
	return shapes[k][o]
}

// Color returns the display color of kind k.
func Color(k Kind) core.Color {
	if !k.Valid() {
		return core.ColorDefault
	}
	return colors[k]
}

// Name returns the letter for kind k, or "?" for an unknown kind.
func Name(k Kind) string {
	if !k.Valid() {
		return "?"
	}
	return names[k]
}

// Randomizer is the source of piece selection. *rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
}

// RandomKind picks a kind uniformly, independent of earlier picks.
func RandomKind(rng Randomizer) Kind {
	return Kind(rng.Intn(KindCount))
}

// RandomOrientation picks a starting orientation. The O piece looks the same
// in every orientation and always starts Up.
func RandomOrientation(rng Randomizer, k Kind) Orientation {
	if k == KindO {
		return Up
	}
	return Orientation(rng.Intn(OrientationCount))
}

// Extent returns the min/max local offsets over the piece's cells.
func Extent(k Kind, o Orientation) (minX, maxX, minY, maxY int) {
	cells := shapes[k][o]
	minX, maxX = cells[0].DX, cells[0].DX
	minY, maxY = cells[0].DY, cells[0].DY
	for _, c := range cells[1:] {
		minX = min(minX, c.DX)
		maxX = max(maxX, c.DX)
		minY = min(minY, c.DY)
		maxY = max(maxY, c.DY)
	}
	return minX, maxX, minY, maxY
}

// CenteredSpawnX returns the anchor x that centers the rotated piece's
// bounding width on the board.
func CenteredSpawnX(k Kind, o Orientation) int {
	minX, maxX, _, _ := Extent(k, o)
	width := maxX - minX + 1
	return (Cols-width)/2 - minX
}
