package engine

import "github.com/bnema/rove/internal/dom"

// Focusable decides whether an element is a navigable item. The policy
// (visibility, disabled state, tabindex, interactive tag set) is supplied
// by the embedding; the engine only consumes the verdict.
type Focusable func(el *dom.Element) bool

// Rect is an element's rendered bounding box relative to the viewport.
type Rect struct {
	Top, Left     float64
	Width, Height float64
}

// TextDirection is the computed inline text direction of an element.
type TextDirection int

const (
	DirectionLTR TextDirection = iota
	DirectionRTL
)

// Orientation is the computed writing-mode orientation of an element.
type Orientation int

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

// Flow bundles the direction and orientation used to resolve which arrow
// keys mean forward and backward.
type Flow struct {
	Direction   TextDirection
	Orientation Orientation
}

// Geometry answers layout questions the engine cannot answer from the tree
// alone. Grid row inference and key-direction resolution depend on it.
type Geometry interface {
	// BoundingBox returns the element's rendered box. ok is false for
	// elements without a box (detached, display:none).
	BoundingBox(el *dom.Element) (Rect, bool)
	// Flow returns the computed text direction and writing orientation
	// in effect at the element.
	Flow(el *dom.Element) Flow
}

// FocusRequester asks the platform to move input focus to an element. The
// engine does not verify success synchronously; confirmation arrives as a
// later HandleFocusIn call.
type FocusRequester interface {
	RequestFocus(el *dom.Element)
}

// FocusRequesterFunc adapts a function to the FocusRequester interface.
type FocusRequesterFunc func(el *dom.Element)

// RequestFocus calls f.
func (f FocusRequesterFunc) RequestFocus(el *dom.Element) { f(el) }
