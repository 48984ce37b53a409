// Package dom provides the element tree the focus engine operates on:
// elements with attributes, optional shadow subtrees, and a document that
// reports structural mutations to a registered observer.
package dom

// Element is a single node in the tree. Elements are identity-keyed: the
// engine associates state with the pointer itself and treats "no longer in
// the tree" as the normal stale-reference case.
type Element struct {
	Tag string

	attrs    map[string]string
	parent   *Element
	children []*Element

	// shadow is the root of an attached shadow subtree, nil when none.
	// Shadow children are not part of the light children slice.
	shadow *Element

	// host is set on a shadow root, pointing back at the hosting element.
	host *Element

	doc *Document
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: tag, attrs: make(map[string]string)}
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttr reports whether the attribute is present, including when empty.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttribute sets an attribute and notifies the owning document. Writing
// the value already present is a no-op and notifies nobody, so attribute
// rewrites converge instead of re-triggering observers.
func (e *Element) SetAttribute(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	if cur, ok := e.attrs[name]; ok && cur == value {
		return
	}
	e.attrs[name] = value
	e.notifyMutation(nil, nil)
}

// RemoveAttribute removes an attribute and notifies the owning document.
// Removing an absent attribute is a no-op.
func (e *Element) RemoveAttribute(name string) {
	if _, ok := e.attrs[name]; !ok {
		return
	}
	delete(e.attrs, name)
	e.notifyMutation(nil, nil)
}

// Parent returns the parent element. For a shadow root it returns nil;
// use Host to cross the boundary upward.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the light children in tree order. Callers must not
// mutate the returned slice.
func (e *Element) Children() []*Element { return e.children }

// ShadowRoot returns the attached shadow subtree root, or nil.
func (e *Element) ShadowRoot() *Element { return e.shadow }

// Host returns the hosting element when e is a shadow root, nil otherwise.
func (e *Element) Host() *Element { return e.host }

// AttachShadow creates and returns a shadow root for this element.
// A second call returns the existing root.
func (e *Element) AttachShadow() *Element {
	if e.shadow == nil {
		e.shadow = &Element{Tag: "#shadow-root", host: e, doc: e.doc}
	}
	return e.shadow
}

// AppendChild adds child as the last light child. A child already placed
// elsewhere is detached from its previous parent first, and the previous
// parent observes the removal.
func (e *Element) AppendChild(child *Element) {
	child.reparent()
	child.parent = e
	child.adopt(e.doc)
	e.children = append(e.children, child)
	e.notifyMutation([]*Element{child}, nil)
}

// InsertBefore inserts child before ref. A nil ref appends.
func (e *Element) InsertBefore(child, ref *Element) {
	if ref == nil {
		e.AppendChild(child)
		return
	}
	child.reparent()
	for i, c := range e.children {
		if c == ref {
			child.parent = e
			child.adopt(e.doc)
			e.children = append(e.children[:i], append([]*Element{child}, e.children[i:]...)...)
			e.notifyMutation([]*Element{child}, nil)
			return
		}
	}
	e.AppendChild(child)
}

// RemoveChild detaches child from this element. Unknown children are ignored.
func (e *Element) RemoveChild(child *Element) {
	if child.parent != e {
		return
	}
	e.detach(child)
	child.adopt(nil)
	e.notifyMutation(nil, []*Element{child})
}

func (e *Element) detach(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			break
		}
	}
	child.parent = nil
}

// reparent detaches the element from its current parent, if any, emitting
// the removal notification. A move is a removal followed by an insertion;
// without the removal, an observer watching the old subtree never learns
// the element left it.
func (e *Element) reparent() {
	old := e.parent
	if old == nil {
		return
	}
	old.detach(e)
	old.notifyMutation(nil, []*Element{e})
}

// adopt updates the owning document pointer across the whole subtree,
// shadow subtrees included.
func (e *Element) adopt(doc *Document) {
	e.doc = doc
	for _, c := range e.children {
		c.adopt(doc)
	}
	if e.shadow != nil {
		e.shadow.adopt(doc)
	}
}

// IsConnected reports whether the element is reachable from its document
// root. Elements inside connected shadow subtrees are connected.
func (e *Element) IsConnected() bool {
	if e.doc == nil {
		return false
	}
	root := e.rootAbove()
	return root == e.doc.Root
}

func (e *Element) rootAbove() *Element {
	cur := e
	for {
		switch {
		case cur.parent != nil:
			cur = cur.parent
		case cur.host != nil:
			cur = cur.host
		default:
			return cur
		}
	}
}

// Contains reports whether other is e or a descendant of e, crossing
// shadow boundaries downward.
func (e *Element) Contains(other *Element) bool {
	for cur := other; cur != nil; {
		if cur == e {
			return true
		}
		if cur.parent != nil {
			cur = cur.parent
		} else if cur.host != nil {
			cur = cur.host
		} else {
			cur = nil
		}
	}
	return false
}

// Closest walks ancestors (self included, shadow boundaries crossed) and
// returns the first element for which match returns true, or nil.
func (e *Element) Closest(match func(*Element) bool) *Element {
	for cur := e; cur != nil; {
		if match(cur) {
			return cur
		}
		if cur.parent != nil {
			cur = cur.parent
		} else if cur.host != nil {
			cur = cur.host
		} else {
			cur = nil
		}
	}
	return nil
}

// Walk visits the light subtree rooted at e in tree order. Returning false
// from visit stops the walk.
func (e *Element) Walk(visit func(*Element) bool) {
	var walk func(*Element) bool
	walk = func(n *Element) bool {
		if !visit(n) {
			return false
		}
		for _, c := range n.children {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(e)
}

func (e *Element) notifyMutation(added, removed []*Element) {
	if e.doc != nil {
		e.doc.notify(e, added, removed)
	}
}
