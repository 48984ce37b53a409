package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnema/rove/internal/dom"
)

// testFocusable is the predicate used across the engine tests: interactive
// tags, plus anything with an authored non-negative tabindex.
func testFocusable(el *dom.Element) bool {
	if el.HasAttr("disabled") {
		return false
	}
	switch el.Tag {
	case "button", "a", "input", "select", "textarea":
		return true
	}
	if ti, ok := el.Attr("tabindex"); ok {
		return !strings.HasPrefix(ti, "-")
	}
	return false
}

// fakeGeometry serves bounding boxes from a map and a fixed flow.
type fakeGeometry struct {
	rects map[*dom.Element]Rect
	flow  Flow
}

func newFakeGeometry() *fakeGeometry {
	return &fakeGeometry{rects: make(map[*dom.Element]Rect)}
}

func (f *fakeGeometry) BoundingBox(el *dom.Element) (Rect, bool) {
	r, ok := f.rects[el]
	return r, ok
}

func (f *fakeGeometry) Flow(*dom.Element) Flow { return f.flow }

// placeGrid assigns grid-like boxes, perRow items per visual row.
func (f *fakeGeometry) placeGrid(items []*dom.Element, perRow int) {
	for i, el := range items {
		row := i / perRow
		col := i % perRow
		f.rects[el] = Rect{
			Top:    float64(row) * 30,
			Left:   float64(col) * 100,
			Width:  90,
			Height: 20,
		}
	}
}

// focusRecorder implements FocusRequester and echoes every request back as
// a confirmed focus-in, the way a cooperating platform would.
type focusRecorder struct {
	eng     *Engine
	current *dom.Element
	history []*dom.Element
}

func (r *focusRecorder) RequestFocus(el *dom.Element) {
	r.current = el
	r.history = append(r.history, el)
	if r.eng != nil {
		r.eng.HandleFocusIn(el)
	}
}

// parseFragment builds a document from an HTML fragment and returns an
// id-based element lookup.
func parseFragment(t *testing.T, fragment string) (*dom.Document, func(string) *dom.Element) {
	t.Helper()

	doc, err := dom.ParseFragment(fragment)
	require.NoError(t, err)

	byID := func(id string) *dom.Element {
		var found *dom.Element
		var walk func(*dom.Element) bool
		walk = func(el *dom.Element) bool {
			if v, ok := el.Attr("id"); ok && v == id {
				found = el
				return false
			}
			if sr := el.ShadowRoot(); sr != nil {
				for _, c := range sr.Children() {
					if !walk(c) {
						return false
					}
				}
			}
			for _, c := range el.Children() {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(doc.Root)
		require.NotNil(t, found, "no element with id %q", id)
		return found
	}
	return doc, byID
}

// newTestEngine builds an engine with the standard test collaborators and
// installs it over the document.
func newTestEngine(t *testing.T, doc *dom.Document, geo Geometry, opt func(*Options)) (*Engine, *focusRecorder) {
	t.Helper()

	rec := &focusRecorder{}
	opts := Options{
		Focusable: testFocusable,
		Geometry:  geo,
		Focus:     rec,
	}
	if opt != nil {
		opt(&opts)
	}

	eng, err := New(opts)
	require.NoError(t, err)
	rec.eng = eng

	doc.SetMutationHandler(func(target *dom.Element, added, removed []*dom.Element) {
		eng.HandleTreeChange(target, added, removed)
	})

	require.True(t, eng.Install(doc.Root))
	return eng, rec
}
