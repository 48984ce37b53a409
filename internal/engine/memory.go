package engine

import "github.com/bnema/rove/internal/dom"

// memoryTracker holds a non-owning reference to the last item that held
// platform focus inside a group. The reference may go stale at any time;
// resolution treats "left the tree" and "no longer an item" the same way.
type memoryTracker struct {
	last *dom.Element
}

func (t *memoryTracker) remember(el *dom.Element) {
	t.last = el
}

func (t *memoryTracker) forget() {
	t.last = nil
}

// resolve returns the remembered item if it is still connected and still
// one of the group's items, nil otherwise. The reference itself is kept:
// staleness is re-checked on every call, so an item detached and
// reattached by a re-render resolves again once it is back.
func (t *memoryTracker) resolve(items []*dom.Element) *dom.Element {
	if t.last == nil || !t.last.IsConnected() {
		return nil
	}
	for _, el := range items {
		if el == t.last {
			return el
		}
	}
	return nil
}
