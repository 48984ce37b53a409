package dom

// MutationHandler receives structural-change notifications. target is the
// element whose subtree (or attributes) may have changed; added and removed
// list the top-level nodes inserted into or detached from it.
type MutationHandler func(target *Element, added, removed []*Element)

// Document owns a tree root and fans structural mutations out to a single
// registered handler. The engine never talks to Document directly; the
// embedding wires the handler to the engine's change entry point.
type Document struct {
	Root    *Element
	handler MutationHandler

	// suspended pauses notifications, letting the embedding batch bulk
	// tree edits and rescan once instead of rebuilding per mutation.
	suspended bool
}

// NewDocument creates a document with an empty root element.
func NewDocument() *Document {
	d := &Document{Root: NewElement("#document")}
	d.Root.doc = d
	return d
}

// SetMutationHandler registers the observer. A nil handler disables
// notifications.
func (d *Document) SetMutationHandler(h MutationHandler) {
	d.handler = h
}

// Suspend pauses mutation notifications until Resume is called.
func (d *Document) Suspend() { d.suspended = true }

// Resume re-enables mutation notifications.
func (d *Document) Resume() { d.suspended = false }

func (d *Document) notify(target *Element, added, removed []*Element) {
	if d.handler == nil || d.suspended {
		return
	}
	d.handler(target, added, removed)
}
