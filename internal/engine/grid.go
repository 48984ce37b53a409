package engine

import (
	"sort"

	"github.com/bnema/rove/internal/dom"
)

// GridPos addresses a cell inside a group's inferred rows. The zero value
// is not meaningful; noGridPos marks "not applicable".
type GridPos struct {
	Row, Col int
}

var noGridPos = GridPos{Row: -1, Col: -1}

// buildGridRows clusters items into visual rows using rendered geometry.
// Tree order is not authoritative here: CSS can reflow items arbitrarily,
// so adjacency for 2-D navigation has to come from bounding boxes.
//
// Items are sorted by top, then left. A new row starts when an item's top
// is more than half the previous item's height below the previous top,
// which tolerates sub-pixel baseline jitter inside one visual row while
// still splitting genuinely stacked rows. Items without a box land in a
// trailing row in tree order so they stay reachable.
func buildGridRows(items []*dom.Element, geometry Geometry) [][]*dom.Element {
	if len(items) == 0 {
		return nil
	}

	type placed struct {
		el   *dom.Element
		rect Rect
	}

	boxed := make([]placed, 0, len(items))
	var unboxed []*dom.Element
	for _, el := range items {
		rect, ok := geometry.BoundingBox(el)
		if !ok {
			unboxed = append(unboxed, el)
			continue
		}
		boxed = append(boxed, placed{el: el, rect: rect})
	}

	sort.SliceStable(boxed, func(i, j int) bool {
		if boxed[i].rect.Top != boxed[j].rect.Top {
			return boxed[i].rect.Top < boxed[j].rect.Top
		}
		return boxed[i].rect.Left < boxed[j].rect.Left
	})

	var rows [][]*dom.Element
	var row []*dom.Element
	var prev placed
	for i, p := range boxed {
		if i > 0 && p.rect.Top-prev.rect.Top > prev.rect.Height/2 {
			rows = append(rows, row)
			row = nil
		}
		row = append(row, p.el)
		prev = p
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if len(unboxed) > 0 {
		rows = append(rows, unboxed)
	}

	return rows
}

// locateInRows finds an element inside freshly built rows. Returns
// noGridPos when the element is absent, which makes the next grid
// navigation a no-op until something else focuses an item.
func locateInRows(rows [][]*dom.Element, el *dom.Element) GridPos {
	if el == nil {
		return noGridPos
	}
	for r, row := range rows {
		for c, item := range row {
			if item == el {
				return GridPos{Row: r, Col: c}
			}
		}
	}
	return noGridPos
}
