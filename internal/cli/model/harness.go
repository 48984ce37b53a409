// Package model provides the Bubble Tea playground for the focus engine,
// plus the synthetic collaborators (focusability, geometry, focus) the
// engine needs when no real rendering platform is underneath.
package model

import (
	"strings"

	"github.com/bnema/rove/internal/dom"
	"github.com/bnema/rove/internal/engine"
)

// interactiveTags is the playground's notion of "naturally focusable".
var interactiveTags = map[string]bool{
	"a":        true,
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"summary":  true,
}

// DefaultFocusable is the focusability policy used by the playground and
// the inspect command: interactive tags and elements with a non-negative
// tabindex, minus disabled and inert-marked elements.
func DefaultFocusable(el *dom.Element) bool {
	if el.HasAttr("disabled") || el.HasAttr("inert") {
		return false
	}
	if ti, ok := el.Attr("tabindex"); ok {
		return !strings.HasPrefix(ti, "-")
	}
	if el.Tag == "a" {
		return el.HasAttr("href")
	}
	return interactiveTags[el.Tag]
}

// Layout computes a deterministic synthetic layout for every item of every
// group container in the document, standing in for a rendering engine. It
// implements engine.Geometry.
//
// Each group gets its own vertical band. Grid-behavior groups are laid out
// itemsPerRow per visual row; everything else gets one row.
type Layout struct {
	itemsPerRow int
	rects       map[*dom.Element]engine.Rect
}

const (
	cellWidth  = 120.0
	cellHeight = 24.0
	bandGap    = 40.0
)

// NewLayout builds the layout for the current state of the document.
// Rebuild it after structural changes.
func NewLayout(doc *dom.Document, itemsPerRow int) *Layout {
	if itemsPerRow < 1 {
		itemsPerRow = 3
	}
	l := &Layout{
		itemsPerRow: itemsPerRow,
		rects:       make(map[*dom.Element]engine.Rect),
	}
	l.place(doc.Root, 0)
	return l
}

func (l *Layout) place(root *dom.Element, bandTop float64) float64 {
	for _, container := range groupContainers(root) {
		ts := engine.ParseTokens(attrOf(container, engine.AttrGroup))
		perRow := len(ownedItems(container))
		if ts.Grid {
			perRow = l.itemsPerRow
		}
		if perRow < 1 {
			perRow = 1
		}
		for i, el := range ownedItems(container) {
			row := i / perRow
			col := i % perRow
			l.rects[el] = engine.Rect{
				Top:    bandTop + float64(row)*cellHeight,
				Left:   float64(col) * cellWidth,
				Width:  cellWidth - 10,
				Height: cellHeight - 4,
			}
		}
		bandTop += bandGap + cellHeight
	}
	return bandTop
}

// BoundingBox implements engine.Geometry.
func (l *Layout) BoundingBox(el *dom.Element) (engine.Rect, bool) {
	r, ok := l.rects[el]
	return r, ok
}

// Flow implements engine.Geometry. A dir="rtl" attribute on the element or
// an ancestor flips text direction; a writing-mode attribute starting with
// "vertical" flips orientation.
func (l *Layout) Flow(el *dom.Element) engine.Flow {
	flow := engine.Flow{}
	if a := el.Closest(func(e *dom.Element) bool { return e.HasAttr("dir") }); a != nil {
		if v, _ := a.Attr("dir"); v == "rtl" {
			flow.Direction = engine.DirectionRTL
		}
	}
	if a := el.Closest(func(e *dom.Element) bool { return e.HasAttr("writing-mode") }); a != nil {
		if v, _ := a.Attr("writing-mode"); strings.HasPrefix(v, "vertical") {
			flow.Orientation = engine.OrientationVertical
		}
	}
	return flow
}

// groupContainers lists group containers under root in tree order.
func groupContainers(root *dom.Element) []*dom.Element {
	var out []*dom.Element
	root.Walk(func(el *dom.Element) bool {
		if el != root && el.HasAttr(engine.AttrGroup) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// ownedItems approximates the engine's discovery for layout purposes:
// focusable descendants with no deeper group container in between.
func ownedItems(container *dom.Element) []*dom.Element {
	var out []*dom.Element
	var walk func(*dom.Element)
	walk = func(el *dom.Element) {
		for _, c := range el.Children() {
			if c.HasAttr(engine.AttrGroup) {
				continue
			}
			if DefaultFocusable(c) {
				out = append(out, c)
				continue
			}
			walk(c)
		}
	}
	walk(container)
	return out
}

func attrOf(el *dom.Element, name string) string {
	v, _ := el.Attr(name)
	return v
}
