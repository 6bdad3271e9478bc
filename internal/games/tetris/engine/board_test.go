package engine

import "testing"

// fillRow occupies every column of row y.
func fillRow(b *Board, y int, k Kind) {
	for x := range Cols {
		b.Set(x, y, CellOf(k))
	}
}

func TestNewBoardEmpty(t *testing.T) {
	b := NewBoard()
	for y := range Rows {
		for x := range Cols {
			if !b.At(x, y).Empty() {
				t.Fatalf("new board cell (%d, %d) = %d, expected empty", x, y, b.At(x, y))
			}
		}
	}
	if b.Height() != 0 {
		t.Errorf("Height() = %d, expected 0", b.Height())
	}
}

func TestCanPlaceBounds(t *testing.T) {
	b := NewBoard()

	// O piece cells span local x 1..2, y 0..1.
	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left legal", -1, 0, true},
		{"off left", -2, 0, false},
		{"bottom-right legal", 7, 18, true},
		{"off right", 8, 0, false},
		{"off top", 3, -1, false},
		{"off bottom", 3, 19, false},
		{"middle", 3, 8, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.CanPlace(KindO, Up, tc.x, tc.y); got != tc.expected {
				t.Errorf("CanPlace(O, up, %d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestCanPlaceExhaustiveEmptyBoard(t *testing.T) {
	b := NewBoard()
	for k := KindI; k <= KindS; k++ {
		for o := Up; o <= Left; o++ {
			minX, maxX, minY, maxY := Extent(k, o)
			for y := -4; y < Rows+4; y++ {
				for x := -4; x < Cols+4; x++ {
					inBounds := x+minX >= 0 && x+maxX < Cols && y+minY >= 0 && y+maxY < Rows
					if got := b.CanPlace(k, o, x, y); got != inBounds {
						t.Fatalf("CanPlace(%s, %s, %d, %d) = %v, expected %v", k, o, x, y, got, inBounds)
					}
				}
			}
		}
	}
}

func TestCanPlaceOccupied(t *testing.T) {
	b := NewBoard()
	b.Set(5, 10, CellOf(KindZ))

	// T up at (4, 9) covers (5,9) (4,10) (5,10) (6,10).
	if b.CanPlace(KindT, Up, 4, 9) {
		t.Error("CanPlace should fail when a cell overlaps a locked cell")
	}
	// One column right still covers (5,10) with its left cell.
	if b.CanPlace(KindT, Up, 5, 9) {
		t.Error("CanPlace should fail when the left cell overlaps a locked cell")
	}
	if !b.CanPlace(KindT, Up, 6, 9) {
		t.Error("CanPlace should succeed when no cell overlaps")
	}
}

func TestLockThenCanPlaceFails(t *testing.T) {
	b := NewBoard()
	p := ActivePiece{Kind: KindS, Orientation: Right, X: 2, Y: 5}
	if !b.Fits(p) {
		t.Fatal("piece should fit on an empty board")
	}
	b.Lock(p)

	if b.Fits(p) {
		t.Error("CanPlace at a locked position should be false")
	}
	for _, c := range p.Cells() {
		if b.At(c.DX, c.DY) != CellOf(KindS) {
			t.Errorf("cell (%d, %d) = %d, expected S", c.DX, c.DY, b.At(c.DX, c.DY))
		}
	}
}

func TestClearSingleLine(t *testing.T) {
	b := NewBoard()
	fillRow(&b, Rows-1, KindI)
	b.Set(0, Rows-2, CellOf(KindT))

	if n := b.ClearCompletedLines(); n != 1 {
		t.Fatalf("ClearCompletedLines() = %d, expected 1", n)
	}
	if b.At(0, Rows-1) != CellOf(KindT) {
		t.Errorf("cell above cleared row should drop one row")
	}
	for x := 1; x < Cols; x++ {
		if !b.At(x, Rows-1).Empty() {
			t.Errorf("cell (%d, %d) should be empty after clear", x, Rows-1)
		}
	}
}

func TestClearAdjacentRowsCascade(t *testing.T) {
	b := NewBoard()
	fillRow(&b, 19, KindI)
	fillRow(&b, 18, KindJ)
	b.Set(0, 17, CellOf(KindT))
	b.Set(3, 5, CellOf(KindZ))
	b.Set(9, 0, CellOf(KindL))

	if n := b.ClearCompletedLines(); n != 2 {
		t.Fatalf("ClearCompletedLines() = %d, expected 2", n)
	}

	if b.At(0, 19) != CellOf(KindT) {
		t.Errorf("row 17 content should move to row 19")
	}
	if b.At(3, 7) != CellOf(KindZ) {
		t.Errorf("row 5 content should move to row 7")
	}
	if b.At(9, 2) != CellOf(KindL) {
		t.Errorf("row 0 content should move to row 2")
	}
	for y := 0; y < 2; y++ {
		for x := range Cols {
			if !b.At(x, y).Empty() {
				t.Errorf("top row %d should be empty, cell %d = %d", y, x, b.At(x, y))
			}
		}
	}
	for x := 1; x < Cols; x++ {
		if !b.At(x, 19).Empty() || !b.At(x, 18).Empty() {
			t.Errorf("bottom rows column %d should be empty", x)
		}
	}
}

func TestClearNonAdjacentRows(t *testing.T) {
	b := NewBoard()
	fillRow(&b, 19, KindI)
	b.Set(4, 18, CellOf(KindO))
	fillRow(&b, 17, KindS)

	if n := b.ClearCompletedLines(); n != 2 {
		t.Fatalf("ClearCompletedLines() = %d, expected 2", n)
	}
	if b.At(4, 19) != CellOf(KindO) {
		t.Errorf("partial row should settle on the floor")
	}
	if b.Height() != 1 {
		t.Errorf("Height() = %d, expected 1", b.Height())
	}
}

func TestClearFourRows(t *testing.T) {
	b := NewBoard()
	for y := 16; y < Rows; y++ {
		fillRow(&b, y, KindI)
	}
	if n := b.ClearCompletedLines(); n != 4 {
		t.Fatalf("ClearCompletedLines() = %d, expected 4", n)
	}
	if b.Height() != 0 {
		t.Errorf("board should be empty after clearing all rows, height %d", b.Height())
	}
}

func TestClearNoFullRows(t *testing.T) {
	b := NewBoard()
	for x := 0; x < Cols-1; x++ {
		b.Set(x, 19, CellOf(KindJ))
	}
	before := b.Grid()
	if n := b.ClearCompletedLines(); n != 0 {
		t.Fatalf("ClearCompletedLines() = %d, expected 0", n)
	}
	if b.Grid() != before {
		t.Error("board should be unchanged when no row is full")
	}
}

func TestBoardReset(t *testing.T) {
	b := NewBoard()
	fillRow(&b, 10, KindT)
	b.Reset()
	if b.Height() != 0 {
		t.Errorf("Height() after Reset = %d, expected 0", b.Height())
	}
}
