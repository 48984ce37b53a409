package engine

import "github.com/bnema/rove/internal/dom"

// nextGridPos computes the cell a navigation key lands on in a grid group.
// Pure, like nextLinearIndex.
//
// Up/Down move rows, Left/Right move columns, Home/End jump inside the
// current row. Column overflow resolves before row overflow, and flow
// takes precedence over wrap when both apply to the same edge: leaving a
// row to the left under col-flow continues on the last column of the
// previous row, leaving to the right continues on the first column of the
// next. Row overflow wraps under row-flow, row-wrap, or the group-wide
// wrap modifier, and clamps otherwise. The final column is clamped into
// whichever row was settled on, since rows may have different lengths.
func nextGridPos(ts TokenSet, key Key, pos GridPos, rows [][]*dom.Element) GridPos {
	if len(rows) == 0 || pos.Row < 0 || pos.Col < 0 || pos.Row >= len(rows) {
		return pos
	}

	row, col := pos.Row, pos.Col
	switch key {
	case KeyArrowUp:
		row--
	case KeyArrowDown:
		row++
	case KeyArrowLeft:
		col--
	case KeyArrowRight:
		col++
	case KeyHome:
		col = 0
	case KeyEnd:
		col = len(rows[row]) - 1
	default:
		return pos
	}

	lastCol := len(rows[pos.Row]) - 1
	switch {
	case col < 0:
		switch {
		case ts.ColFlow:
			row--
			clamped := clampRow(row, len(rows))
			col = len(rows[clamped]) - 1
		case ts.ColWrap || ts.Wrap:
			col = lastCol
		default:
			col = 0
		}
	case col > lastCol && key == KeyArrowRight:
		switch {
		case ts.ColFlow:
			row++
			col = 0
		case ts.ColWrap || ts.Wrap:
			col = 0
		default:
			col = lastCol
		}
	}

	rowOverflows := ts.RowFlow || ts.RowWrap || ts.Wrap
	switch {
	case row < 0:
		if rowOverflows {
			row = len(rows) - 1
		} else {
			row = 0
		}
	case row >= len(rows):
		if rowOverflows {
			row = 0
		} else {
			row = len(rows) - 1
		}
	}

	if max := len(rows[row]) - 1; col > max {
		col = max
	}
	if col < 0 {
		col = 0
	}

	return GridPos{Row: row, Col: col}
}

func clampRow(row, count int) int {
	if row < 0 {
		return 0
	}
	if row > count-1 {
		return count - 1
	}
	return row
}

// itemAt resolves a grid position to its element, nil when the position
// has no corresponding item (malformed geometry, empty row).
func itemAt(rows [][]*dom.Element, pos GridPos) *dom.Element {
	if pos.Row < 0 || pos.Row >= len(rows) {
		return nil
	}
	row := rows[pos.Row]
	if pos.Col < 0 || pos.Col >= len(row) {
		return nil
	}
	return row[pos.Col]
}
