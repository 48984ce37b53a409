package engine

import "github.com/bnema/rove/internal/dom"

// Group is the engine's state record for one registered container, plus
// the programmatic handle offered to embedders. All derived fields
// (tokens, items, grid rows, active index) are recomputed on rebuild;
// rebuilding never destroys the record.
type Group struct {
	engine  *Engine
	element *dom.Element

	tokens   TokenSet
	items    []*dom.Element
	gridRows [][]*dom.Element

	// activeIndex is the single item reachable by sequential navigation,
	// -1 when the group is empty.
	activeIndex int
	gridPos     GridPos

	memory memoryTracker
}

// Element returns the owning container. The engine never owns it.
func (g *Group) Element() *dom.Element { return g.element }

// Tokens returns the parsed configuration from the last rebuild.
func (g *Group) Tokens() TokenSet {
	g.engine.mu.Lock()
	defer g.engine.mu.Unlock()
	return g.tokens
}

// Items returns the current item list in discovery order.
func (g *Group) Items() []*dom.Element {
	g.engine.mu.Lock()
	defer g.engine.mu.Unlock()
	return g.itemsCopyLocked()
}

func (g *Group) itemsCopyLocked() []*dom.Element {
	out := make([]*dom.Element, len(g.items))
	copy(out, g.items)
	return out
}

// ActiveIndex returns the index of the sequentially reachable item, -1
// when the group is empty.
func (g *Group) ActiveIndex() int {
	g.engine.mu.Lock()
	defer g.engine.mu.Unlock()
	return g.activeIndex
}

// ActiveItem returns the sequentially reachable item, nil when empty.
func (g *Group) ActiveItem() *dom.Element {
	g.engine.mu.Lock()
	defer g.engine.mu.Unlock()
	return g.activeItemLocked()
}

func (g *Group) activeItemLocked() *dom.Element {
	if g.activeIndex < 0 || g.activeIndex >= len(g.items) {
		return nil
	}
	return g.items[g.activeIndex]
}

// GridPosition returns the active item's (row, col) when the group is in
// grid mode, (-1, -1) otherwise.
func (g *Group) GridPosition() GridPos {
	g.engine.mu.Lock()
	defer g.engine.mu.Unlock()
	return g.gridPos
}

// GridRows returns the inferred rows, outer slice per row. Nil when the
// group is not in grid mode.
func (g *Group) GridRows() [][]*dom.Element {
	g.engine.mu.Lock()
	defer g.engine.mu.Unlock()
	out := make([][]*dom.Element, len(g.gridRows))
	for i, row := range g.gridRows {
		out[i] = append([]*dom.Element(nil), row...)
	}
	return out
}

// RebuildPending reports whether a coalesced rebuild is scheduled.
func (g *Group) RebuildPending() bool {
	g.engine.mu.Lock()
	defer g.engine.mu.Unlock()
	return g.engine.rebuilds.Pending(g.element)
}

// FocusFirst moves focus to the first item.
func (g *Group) FocusFirst() bool {
	return g.focusIndex(func(_ int, count int) int {
		if count == 0 {
			return -1
		}
		return 0
	})
}

// FocusLast moves focus to the last item.
func (g *Group) FocusLast() bool {
	return g.focusIndex(func(_ int, count int) int {
		return count - 1
	})
}

// FocusNext moves focus one item forward in discovery order, honoring the
// group's wrap modifier.
func (g *Group) FocusNext() bool {
	return g.focusStep(1)
}

// FocusPrevious moves focus one item backward in discovery order, honoring
// the group's wrap modifier.
func (g *Group) FocusPrevious() bool {
	return g.focusStep(-1)
}

func (g *Group) focusStep(delta int) bool {
	return g.focusIndex(func(current, count int) int {
		if count == 0 {
			return -1
		}
		if current < 0 {
			return 0
		}
		next := current + delta
		if g.tokens.Wrap {
			return ((next % count) + count) % count
		}
		if next < 0 {
			return 0
		}
		if next > count-1 {
			return count - 1
		}
		return next
	})
}

// FocusItem moves focus to a specific item. Returns false when el is not
// one of the group's items.
func (g *Group) FocusItem(el *dom.Element) bool {
	return g.focusIndex(func(_ int, _ int) int {
		for i, item := range g.items {
			if item == el {
				return i
			}
		}
		return -1
	})
}

// focusIndex computes a target index under the engine lock, commits it,
// and requests platform focus outside the lock.
func (g *Group) focusIndex(pick func(current, count int) int) bool {
	e := g.engine

	e.lock()
	next := pick(g.activeIndex, len(g.items))
	if next < 0 || next >= len(g.items) {
		e.unlock()
		return false
	}
	fire := e.commitActiveLocked(g, next)
	e.unlock()

	fire()
	return true
}

// Refresh forces an immediate rebuild of the group.
func (g *Group) Refresh() {
	e := g.engine

	e.lock()
	fire := e.rebuildLocked(g)
	e.unlock()

	fire()
}
