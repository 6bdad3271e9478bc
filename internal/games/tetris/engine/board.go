package engine

// Board dimensions.
const (
	Rows = 20
	Cols = 10
)

// Cell is a board square: CellEmpty or the kind of the piece locked there.
type Cell int8

// CellEmpty marks an unoccupied square.
const CellEmpty Cell = -1

// CellOf returns the cell value for a locked piece of kind k.
func CellOf(k Kind) Cell {
	return Cell(k)
}

// Empty reports whether the cell is unoccupied.
func (c Cell) Empty() bool {
	return c == CellEmpty
}

// Kind returns the kind locked in the cell. Only meaningful when !Empty().
func (c Cell) Kind() Kind {
	return Kind(c)
}

// ActivePiece is the falling piece: kind, orientation and board anchor.
type ActivePiece struct {
	Kind        Kind
	Orientation Orientation
	X, Y        int
}

// Cells returns the absolute board coordinates of the piece.
func (p ActivePiece) Cells() [4]Offset {
	cells := CellOffsets(p.Kind, p.Orientation)
	for i := range cells {
		cells[i].DX += p.X
		cells[i].DY += p.Y
	}
	return cells
}

// Board is the grid of locked cells, indexed [row][col].
type Board struct {
	cells [Rows][Cols]Cell
}

// NewBoard returns an empty board.
func NewBoard() Board {
	var b Board
	b.Reset()
	return b
}

// Reset empties every cell.
func (b *Board) Reset() {
	for y := range Rows {
		b.cells[y] = emptyRow()
	}
}

func emptyRow() [Cols]Cell {
	var row [Cols]Cell
	for x := range row {
		row[x] = CellEmpty
	}
	return row
}

// At returns the cell at column x, row y. Out-of-range coordinates read as
// empty.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= Cols || y < 0 || y >= Rows {
		return CellEmpty
	}
	return b.cells[y][x]
}

// Set writes a cell directly. Out-of-range coordinates are ignored.
func (b *Board) Set(x, y int, c Cell) {
	if x < 0 || x >= Cols || y < 0 || y >= Rows {
		return
	}
	b.cells[y][x] = c
}

// CanPlace reports whether a piece of kind k in orientation o fits with its
// anchor at (x, y): every cell in bounds and unoccupied.
func (b *Board) CanPlace(k Kind, o Orientation, x, y int) bool {
	for _, c := range CellOffsets(k, o) {
		bx, by := x+c.DX, y+c.DY
		if bx < 0 || bx >= Cols || by < 0 || by >= Rows {
			return false
		}
		if !b.cells[by][bx].Empty() {
			return false
		}
	}
	return true
}

// Fits reports whether p can occupy its current position.
func (b *Board) Fits(p ActivePiece) bool {
	return b.CanPlace(p.Kind, p.Orientation, p.X, p.Y)
}

// Lock writes the piece into the grid. The caller must have checked the
// position with CanPlace.
func (b *Board) Lock(p ActivePiece) {
	v := CellOf(p.Kind)
	for _, c := range p.Cells() {
		b.cells[c.DY][c.DX] = v
	}
}

// IsFull reports whether every column of row y is occupied.
func (b *Board) IsFull(y int) bool {
	for x := range Cols {
		if b.cells[y][x].Empty() {
			return false
		}
	}
	return true
}

// ClearCompletedLines removes every full row, shifting the rows above down.
// Returns the number of rows removed.
func (b *Board) ClearCompletedLines() int {
	cleared := 0
	for y := Rows - 1; y >= 0; y-- {
		if !b.IsFull(y) {
			continue
		}
		cleared++
		for r := y; r > 0; r-- {
			b.cells[r] = b.cells[r-1]
		}
		b.cells[0] = emptyRow()
		// Row y now holds what was above it; check it again.
		y++
	}
	return cleared
}

// Height returns the number of rows from the floor up to the highest
// occupied cell. An empty board has height 0.
func (b *Board) Height() int {
	for y := range Rows {
		for x := range Cols {
			if !b.cells[y][x].Empty() {
				return Rows - y
			}
		}
	}
	return 0
}

// Grid returns a copy of the cells for rendering.
func (b *Board) Grid() [Rows][Cols]Cell {
	return b.cells
}
