package engine

// Lines holds the complete rows and columns found in one board snapshot.
// The two axes are independent; a cell may belong to both.
type Lines struct {
	Rows []int
	Cols []int
}

// Count returns the total number of complete lines.
func (l Lines) Count() int {
	return len(l.Rows) + len(l.Cols)
}

// Empty reports whether no line is complete.
func (l Lines) Empty() bool {
	return l.Count() == 0
}

// DetectLines returns every fully occupied row and column of b in ascending
// order.
func DetectLines(b Board) Lines {
	var lines Lines
	for y := range b.H {
		full := b.W > 0
		for x := range b.W {
			if !b.Filled(x, y) {
				full = false
				break
			}
		}
		if full {
			lines.Rows = append(lines.Rows, y)
		}
	}
	for x := range b.W {
		full := b.H > 0
		for y := range b.H {
			if !b.Filled(x, y) {
				full = false
				break
			}
		}
		if full {
			lines.Cols = append(lines.Cols, x)
		}
	}
	return lines
}

// Clear removes the given rows and then the given columns. Removing rows from
// the highest index down while inserting empty rows at the top is the same as
// shifting surviving rows down, which is what happens here; columns shift
// right with empty columns appearing on the left. Board dimensions never
// change and the Lines slices are not modified. Out-of-range and duplicate
// indices are ignored.
func Clear(b Board, lines Lines) Board {
	if lines.Empty() {
		return b
	}
	out := b.Clone()

	rows := make(map[int]bool, len(lines.Rows))
	for _, r := range lines.Rows {
		if r >= 0 && r < b.H {
			rows[r] = true
		}
	}
	if len(rows) > 0 {
		next := NewBoard(b.W, b.H)
		dst := b.H - 1
		for y := b.H - 1; y >= 0; y-- {
			if rows[y] {
				continue
			}
			for x := range b.W {
				if f, ok := out.At(x, y); ok {
					next.set(x, dst, f)
				}
			}
			dst--
		}
		out = next
	}

	cols := make(map[int]bool, len(lines.Cols))
	for _, c := range lines.Cols {
		if c >= 0 && c < b.W {
			cols[c] = true
		}
	}
	if len(cols) > 0 {
		next := NewBoard(b.W, b.H)
		dst := b.W - 1
		for x := b.W - 1; x >= 0; x-- {
			if cols[x] {
				continue
			}
			for y := range b.H {
				if f, ok := out.At(x, y); ok {
					next.set(dst, y, f)
				}
			}
			dst--
		}
		out = next
	}
	return out
}

// Score returns the points awarded for clearing lines at once:
// 1→100, 2→300, 3→500, 4→800 and n×100 beyond that.
func Score(lines Lines) int {
	switch n := lines.Count(); n {
	case 0:
		return 0
	case 1:
		return 100
	case 2:
		return 300
	case 3:
		return 500
	case 4:
		return 800
	default:
		return n * 100
	}
}
