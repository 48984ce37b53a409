package engine

import "github.com/bnema/rove/internal/dom"

const (
	attrTabindex = "tabindex"
	attrRole     = "role"

	tabindexPrimary   = "0"
	tabindexSecondary = "-1"
)

// rolePair is the inferred accessibility role assignment for a behavior.
// An empty item role means items keep whatever they have.
type rolePair struct {
	container string
	item      string
}

var behaviorRoles = map[Behavior]rolePair{
	BehaviorToolbar:    {container: "toolbar"},
	BehaviorTablist:    {container: "tablist", item: "tab"},
	BehaviorRadiogroup: {container: "radiogroup", item: "radio"},
	BehaviorListbox:    {container: "listbox", item: "option"},
	BehaviorMenu:       {container: "menu", item: "menuitem"},
	BehaviorMenubar:    {container: "menubar", item: "menuitem"},
	BehaviorGrid:       {container: "grid", item: "gridcell"},
}

// genericTags are element types with no implicit role of their own; the
// container role is only inferred onto these, never onto e.g. a <ul>.
var genericTags = map[string]bool{
	"div":     true,
	"span":    true,
	"section": true,
	"header":  true,
	"footer":  true,
	"nav":     true,
}

// originalAttrs is the pre-engine snapshot of one element's managed
// attributes. Presence of a snapshot means the element is currently
// engine-managed and must be restored on teardown.
type originalAttrs struct {
	tabindex    string
	hasTabindex bool
	role        string
	hasRole     bool
}

// attrManager owns the snapshot association and every write the engine
// makes to reachability and role attributes. Snapshots are engine-wide
// rather than per group: an item migrating into a nested group must keep
// its original values, not the roving values a previous owner wrote.
type attrManager struct {
	snapshots map[*dom.Element]originalAttrs
	// roving tracks elements whose reachability attribute the engine is
	// actively rewriting. Discovery must keep treating them as items even
	// though the engine's own "-1" would fail a tabindex-based predicate.
	roving map[*dom.Element]bool
}

func newAttrManager() *attrManager {
	return &attrManager{
		snapshots: make(map[*dom.Element]originalAttrs),
		roving:    make(map[*dom.Element]bool),
	}
}

// snapshot records the element's pre-engine attribute values exactly once.
func (m *attrManager) snapshot(el *dom.Element) {
	if _, ok := m.snapshots[el]; ok {
		return
	}
	var orig originalAttrs
	orig.tabindex, orig.hasTabindex = el.Attr(attrTabindex)
	orig.role, orig.hasRole = el.Attr(attrRole)
	m.snapshots[el] = orig
}

// restore replays the snapshot and drops it. Restoring an unmanaged
// element, or restoring twice, is a no-op.
func (m *attrManager) restore(el *dom.Element) {
	orig, ok := m.snapshots[el]
	if !ok {
		return
	}
	delete(m.snapshots, el)
	delete(m.roving, el)

	if orig.hasTabindex {
		el.SetAttribute(attrTabindex, orig.tabindex)
	} else {
		el.RemoveAttribute(attrTabindex)
	}
	if orig.hasRole {
		el.SetAttribute(attrRole, orig.role)
	} else {
		el.RemoveAttribute(attrRole)
	}
}

// restoreAll tears down every managed element.
func (m *attrManager) restoreAll() {
	for el := range m.snapshots {
		m.restore(el)
	}
}

// managed reports whether the element currently carries a snapshot.
func (m *attrManager) managed(el *dom.Element) bool {
	_, ok := m.snapshots[el]
	return ok
}

// setTabindex snapshots the element on first touch, then writes the
// reachability attribute.
func (m *attrManager) setTabindex(el *dom.Element, value string) {
	m.snapshot(el)
	m.roving[el] = true
	el.SetAttribute(attrTabindex, value)
}

// rovingManaged reports whether the engine currently owns the element's
// reachability attribute.
func (m *attrManager) rovingManaged(el *dom.Element) bool {
	return m.roving[el]
}

// originalFocusable re-evaluates the predicate with the element's authored
// reachability attribute temporarily back in place. The engine's own "-1"
// must not evict items from discovery, but a failure with the authored
// value restored (disabled, tag change) is genuine and the item goes.
func (m *attrManager) originalFocusable(el *dom.Element, pred Focusable) bool {
	orig, ok := m.snapshots[el]
	if !ok || !m.roving[el] {
		return false
	}

	cur, had := el.Attr(attrTabindex)
	if orig.hasTabindex {
		el.SetAttribute(attrTabindex, orig.tabindex)
	} else {
		el.RemoveAttribute(attrTabindex)
	}

	verdict := pred(el)

	if had {
		el.SetAttribute(attrTabindex, cur)
	} else {
		el.RemoveAttribute(attrTabindex)
	}
	return verdict
}

// applyRoving makes exactly the item at activeIndex reachable by
// sequential navigation and everything else skip-over.
func (m *attrManager) applyRoving(items []*dom.Element, activeIndex int) {
	for i, el := range items {
		if i == activeIndex {
			m.setTabindex(el, tabindexPrimary)
		} else {
			m.setTabindex(el, tabindexSecondary)
		}
	}
}

// applyRoles infers container and item roles for the behavior. Attributes
// the page author set explicitly are never overwritten: authorship is
// judged against the snapshot when one exists, so the engine's own writes
// do not count as authored.
func (m *attrManager) applyRoles(container *dom.Element, items []*dom.Element, behavior Behavior) {
	roles, ok := behaviorRoles[behavior]
	if !ok {
		return
	}

	if roles.container != "" && genericTags[container.Tag] && !m.authoredRole(container) {
		m.snapshot(container)
		container.SetAttribute(attrRole, roles.container)
	}

	if roles.item == "" {
		return
	}
	for _, el := range items {
		if m.authoredRole(el) {
			continue
		}
		m.snapshot(el)
		el.SetAttribute(attrRole, roles.item)
	}
}

func (m *attrManager) authoredRole(el *dom.Element) bool {
	if orig, ok := m.snapshots[el]; ok {
		return orig.hasRole
	}
	return el.HasAttr(attrRole)
}
