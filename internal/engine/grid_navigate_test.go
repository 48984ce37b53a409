package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/rove/internal/dom"
)

// grid builds rows from row lengths, e.g. grid(3, 3) is two rows of three.
func grid(lengths ...int) [][]*dom.Element {
	rows := make([][]*dom.Element, len(lengths))
	for i, n := range lengths {
		rows[i] = makeButtons(n)
	}
	return rows
}

func TestGridBasicMoves(t *testing.T) {
	rows := grid(3, 3)
	ts := TokenSet{Grid: true}

	assert.Equal(t, GridPos{0, 2}, nextGridPos(ts, KeyArrowRight, GridPos{0, 1}, rows))
	assert.Equal(t, GridPos{0, 0}, nextGridPos(ts, KeyArrowLeft, GridPos{0, 1}, rows))
	assert.Equal(t, GridPos{1, 1}, nextGridPos(ts, KeyArrowDown, GridPos{0, 1}, rows))
	assert.Equal(t, GridPos{0, 1}, nextGridPos(ts, KeyArrowUp, GridPos{1, 1}, rows))
}

func TestGridHomeEnd(t *testing.T) {
	rows := grid(3, 2)
	ts := TokenSet{Grid: true}

	assert.Equal(t, GridPos{0, 0}, nextGridPos(ts, KeyHome, GridPos{0, 2}, rows))
	assert.Equal(t, GridPos{0, 2}, nextGridPos(ts, KeyEnd, GridPos{0, 0}, rows))
	assert.Equal(t, GridPos{1, 1}, nextGridPos(ts, KeyEnd, GridPos{1, 0}, rows), "End uses the current row's last column")
}

func TestGridColumnClampWithoutModifiers(t *testing.T) {
	rows := grid(3, 3)
	ts := TokenSet{Grid: true}

	assert.Equal(t, GridPos{0, 2}, nextGridPos(ts, KeyArrowRight, GridPos{0, 2}, rows))
	assert.Equal(t, GridPos{0, 0}, nextGridPos(ts, KeyArrowLeft, GridPos{0, 0}, rows))
}

func TestGridColWrap(t *testing.T) {
	rows := grid(3, 3)
	ts := TokenSet{Grid: true, ColWrap: true}

	assert.Equal(t, GridPos{0, 0}, nextGridPos(ts, KeyArrowRight, GridPos{0, 2}, rows))
	assert.Equal(t, GridPos{0, 2}, nextGridPos(ts, KeyArrowLeft, GridPos{0, 0}, rows))
}

func TestGridGroupWideWrapAppliesToBothAxes(t *testing.T) {
	rows := grid(3, 3)
	ts := TokenSet{Grid: true, Wrap: true}

	assert.Equal(t, GridPos{0, 0}, nextGridPos(ts, KeyArrowRight, GridPos{0, 2}, rows))
	assert.Equal(t, GridPos{0, 1}, nextGridPos(ts, KeyArrowDown, GridPos{1, 1}, rows))
	assert.Equal(t, GridPos{1, 1}, nextGridPos(ts, KeyArrowUp, GridPos{0, 1}, rows))
}

func TestGridColFlowCarriesIntoAdjacentRow(t *testing.T) {
	rows := grid(3, 3)
	ts := TokenSet{Grid: true, ColFlow: true}

	// right off the row end lands on the next row's first column
	assert.Equal(t, GridPos{1, 0}, nextGridPos(ts, KeyArrowRight, GridPos{0, 2}, rows))
	// left off the row start lands on the previous row's last column
	assert.Equal(t, GridPos{0, 2}, nextGridPos(ts, KeyArrowLeft, GridPos{1, 0}, rows))
}

func TestGridColFlowTakesPrecedenceOverColWrap(t *testing.T) {
	rows := grid(3, 3)
	ts := TokenSet{Grid: true, ColFlow: true, ColWrap: true}

	assert.Equal(t, GridPos{1, 0}, nextGridPos(ts, KeyArrowRight, GridPos{0, 2}, rows))
}

func TestGridColFlowClampsAtGridEdges(t *testing.T) {
	rows := grid(3, 3)
	ts := TokenSet{Grid: true, ColFlow: true}

	// flowing left from (0,0) has no previous row; column settles on the
	// clamped row's last column, row clamps back to 0
	assert.Equal(t, GridPos{0, 2}, nextGridPos(ts, KeyArrowLeft, GridPos{0, 0}, rows))
	// flowing right from the last cell clamps to the last row
	got := nextGridPos(ts, KeyArrowRight, GridPos{1, 2}, rows)
	assert.Equal(t, 1, got.Row)
}

func TestGridRowWrap(t *testing.T) {
	rows := grid(3, 3)
	ts := TokenSet{Grid: true, RowWrap: true}

	assert.Equal(t, GridPos{0, 1}, nextGridPos(ts, KeyArrowDown, GridPos{1, 1}, rows))
	assert.Equal(t, GridPos{1, 1}, nextGridPos(ts, KeyArrowUp, GridPos{0, 1}, rows))
}

func TestGridRowClampWithoutModifiers(t *testing.T) {
	rows := grid(3, 3)
	ts := TokenSet{Grid: true}

	assert.Equal(t, GridPos{1, 1}, nextGridPos(ts, KeyArrowDown, GridPos{1, 1}, rows))
	assert.Equal(t, GridPos{0, 1}, nextGridPos(ts, KeyArrowUp, GridPos{0, 1}, rows))
}

func TestGridRaggedRowsClampColumn(t *testing.T) {
	rows := grid(3, 2)
	ts := TokenSet{Grid: true}

	// moving down from (0,2) into a two-item row clamps the column
	assert.Equal(t, GridPos{1, 1}, nextGridPos(ts, KeyArrowDown, GridPos{0, 2}, rows))
}

func TestGridRoundTrip(t *testing.T) {
	// down then up returns to the origin when neither move clamps
	rows := grid(3, 3, 3)
	ts := TokenSet{Grid: true}

	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			start := GridPos{Row: r, Col: c}
			down := nextGridPos(ts, KeyArrowDown, start, rows)
			back := nextGridPos(ts, KeyArrowUp, down, rows)
			assert.Equal(t, start, back, "round trip from %v", start)
		}
	}
}

func TestGridNoOpOnInvalidState(t *testing.T) {
	ts := TokenSet{Grid: true}

	assert.Equal(t, noGridPos, nextGridPos(ts, KeyArrowRight, noGridPos, grid(3)))
	pos := GridPos{0, 0}
	assert.Equal(t, pos, nextGridPos(ts, KeyArrowRight, pos, nil))
	assert.Equal(t, pos, nextGridPos(ts, KeyNone, pos, grid(3)))
}

func TestItemAt(t *testing.T) {
	rows := grid(2, 1)

	require.NotNil(t, itemAt(rows, GridPos{0, 1}))
	assert.Nil(t, itemAt(rows, GridPos{1, 1}), "short row")
	assert.Nil(t, itemAt(rows, GridPos{2, 0}), "row out of range")
	assert.Nil(t, itemAt(rows, noGridPos))
}
