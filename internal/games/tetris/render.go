package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Layout constants, in screen cells. Each board column is two cells wide so
// blocks look square in most terminal fonts.
const (
	cellW     = 2
	boardBoxW = engine.Cols*cellW + 2
	boardBoxH = engine.Rows + 2
	panelGap  = 2
	panelW    = 16
	previewW  = 4*cellW + 2
	previewH  = 4 + 2

	// MinWidth and MinHeight are the smallest screen the game draws on.
	MinWidth  = boardBoxW + panelGap + panelW
	MinHeight = boardBoxH
)

const (
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '·'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.session == nil {
		renderOverlay(dst, core.NewRect(0, 0, dst.Width(), dst.Height()),
			"Window too small", fmt.Sprintf("Need %dx%d", MinWidth, MinHeight))
		return
	}

	originX := max(0, (dst.Width()-MinWidth)/2)
	originY := max(0, (dst.Height()-MinHeight)/2)
	boardRect := core.NewRect(originX, originY, boardBoxW, boardBoxH)

	g.renderBoard(dst, boardRect)
	g.renderPanel(dst, originX+boardBoxW+panelGap, originY)

	switch {
	case g.session.GameOver():
		renderOverlay(dst, boardRect, "GAME OVER", "Press R to restart")
	case g.paused:
		renderOverlay(dst, boardRect, "PAUSED", "Press P to continue")
	}
}

// renderBoard draws the well border, locked cells, ghost and active piece.
func (g *Game) renderBoard(dst *core.Screen, r core.Rect) {
	dst.DrawBoxColor(r, core.ColorGray)
	inner := r.Inset(1)

	board := g.session.Board()
	for y := range engine.Rows {
		for x := range engine.Cols {
			c := board.At(x, y)
			if c.Empty() {
				dst.SetColor(inner.X+x*cellW+1, inner.Y+y, emptyRune, core.ColorGray)
				continue
			}
			drawBlock(dst, inner, x, y, blockRune, engine.Color(c.Kind()))
		}
	}

	if g.session.GameOver() {
		return
	}

	active := g.session.Active()
	ghost := active
	ghost.Y = g.session.GhostY()
	if ghost.Y != active.Y {
		for _, c := range ghost.Cells() {
			if board.At(c.DX, c.DY).Empty() {
				drawBlock(dst, inner, c.DX, c.DY, ghostRune, engine.Color(active.Kind))
			}
		}
	}
	for _, c := range active.Cells() {
		drawBlock(dst, inner, c.DX, c.DY, blockRune, engine.Color(active.Kind))
	}
}

// drawBlock paints board cell (x, y) inside the well.
func drawBlock(dst *core.Screen, inner core.Rect, x, y int, r rune, c core.Color) {
	if x < 0 || x >= engine.Cols || y < 0 || y >= engine.Rows {
		return
	}
	sx := inner.X + x*cellW
	for i := range cellW {
		dst.SetColor(sx+i, inner.Y+y, r, c)
	}
}

// renderPanel draws stats and the next piece preview to the right of the well.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	s := g.session

	dst.DrawTextColor(x, y, "TETRIS", core.ColorWhite)

	stats := []struct {
		label string
		value int
	}{
		{"SCORE", s.Score()},
		{"LINES", s.Lines()},
		{"LEVEL", s.Level()},
	}
	row := y + 2
	for _, st := range stats {
		dst.DrawTextColor(x, row, st.label, core.ColorGray)
		dst.DrawTextColor(x, row+1, fmt.Sprintf("%d", st.value), core.ColorYellow)
		row += 3
	}

	dst.DrawTextColor(x, row, "NEXT", core.ColorGray)
	preview := core.NewRect(x, row+1, previewW, previewH)
	dst.DrawBoxColor(preview, core.ColorGray)
	next := s.Next()
	for _, c := range engine.CellOffsets(next, engine.Up) {
		px := preview.X + 1 + c.DX*cellW
		for i := range cellW {
			dst.SetColor(px+i, preview.Y+1+c.DY, blockRune, engine.Color(next))
		}
	}
	row += previewH + 2

	dst.DrawTextColor(x, row, string(g.cfg.Difficulty.Preset), core.ColorGray)
	dst.DrawTextColor(x, row+1, fmt.Sprintf("%.2fs/row", s.GravityDelay()), core.ColorGray)
}

// renderOverlay draws a boxed two-line message centered in r.
func renderOverlay(dst *core.Screen, r core.Rect, line1, line2 string) {
	textW := max(len([]rune(line1)), len([]rune(line2)))
	boxW := min(textW+4, max(r.W, textW))
	boxH := 5
	box := core.NewRect(r.X+(r.W-boxW)/2, r.Y+(r.H-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, core.ColorWhite)
	drawCentered(dst, box, box.Y+1, line1, core.ColorWhite)
	drawCentered(dst, box, box.Y+3, line2, core.ColorGray)
}

func drawCentered(dst *core.Screen, box core.Rect, y int, text string, c core.Color) {
	x := box.X + (box.W-len([]rune(text)))/2
	dst.DrawTextColor(x, y, text, c)
}
