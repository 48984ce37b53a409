package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearForwardBackward(t *testing.T) {
	ts := TokenSet{Behavior: BehaviorToolbar}
	ltr := Flow{}

	assert.Equal(t, 2, nextLinearIndex(ts, KeyArrowRight, 1, 3, ltr))
	assert.Equal(t, 0, nextLinearIndex(ts, KeyArrowLeft, 1, 3, ltr))
	assert.Equal(t, 2, nextLinearIndex(ts, KeyArrowDown, 1, 3, ltr))
	assert.Equal(t, 0, nextLinearIndex(ts, KeyArrowUp, 1, 3, ltr))
}

func TestLinearRTLFlipsHorizontalKeys(t *testing.T) {
	ts := TokenSet{Behavior: BehaviorToolbar}
	rtl := Flow{Direction: DirectionRTL}

	assert.Equal(t, 0, nextLinearIndex(ts, KeyArrowRight, 1, 3, rtl))
	assert.Equal(t, 2, nextLinearIndex(ts, KeyArrowLeft, 1, 3, rtl))
	// vertical keys unaffected
	assert.Equal(t, 2, nextLinearIndex(ts, KeyArrowDown, 1, 3, rtl))
}

func TestLinearVerticalWritingFlipsVerticalKeys(t *testing.T) {
	ts := TokenSet{Behavior: BehaviorToolbar}
	vertical := Flow{Orientation: OrientationVertical}

	assert.Equal(t, 0, nextLinearIndex(ts, KeyArrowDown, 1, 3, vertical))
	assert.Equal(t, 2, nextLinearIndex(ts, KeyArrowUp, 1, 3, vertical))
}

func TestLinearAxisGating(t *testing.T) {
	ltr := Flow{}

	inline := TokenSet{InlineOnly: true}
	assert.Equal(t, 1, nextLinearIndex(inline, KeyArrowDown, 1, 3, ltr), "block key ignored in inline-only group")
	assert.Equal(t, 2, nextLinearIndex(inline, KeyArrowRight, 1, 3, ltr))

	block := TokenSet{BlockOnly: true}
	assert.Equal(t, 1, nextLinearIndex(block, KeyArrowRight, 1, 3, ltr), "inline key ignored in block-only group")
	assert.Equal(t, 2, nextLinearIndex(block, KeyArrowDown, 1, 3, ltr))

	// in vertical writing the inline axis is the vertical one
	vertical := Flow{Orientation: OrientationVertical}
	assert.Equal(t, 1, nextLinearIndex(inline, KeyArrowRight, 1, 3, vertical))
	assert.Equal(t, 0, nextLinearIndex(inline, KeyArrowDown, 1, 3, vertical))
}

func TestLinearAxisGatingSkipsWrapEvaluation(t *testing.T) {
	ts := TokenSet{InlineOnly: true, Wrap: true}
	assert.Equal(t, 2, nextLinearIndex(ts, KeyArrowDown, 2, 3, Flow{}), "gated key must not wrap")
}

func TestLinearHomeEnd(t *testing.T) {
	ts := TokenSet{}
	assert.Equal(t, 0, nextLinearIndex(ts, KeyHome, 2, 5, Flow{}))
	assert.Equal(t, 4, nextLinearIndex(ts, KeyEnd, 2, 5, Flow{}))

	// Home/End bypass axis gating and direction resolution
	gated := TokenSet{BlockOnly: true}
	assert.Equal(t, 0, nextLinearIndex(gated, KeyHome, 2, 5, Flow{}))
}

func TestLinearWrapIdempotence(t *testing.T) {
	// k forward presses from index 0 in a wrapping group of size k return
	// to index 0
	ts := TokenSet{Wrap: true}
	const k = 5

	idx := 0
	for range k {
		idx = nextLinearIndex(ts, KeyArrowRight, idx, k, Flow{})
	}
	assert.Equal(t, 0, idx)
}

func TestLinearClampAtBoundaries(t *testing.T) {
	ts := TokenSet{}
	assert.Equal(t, 0, nextLinearIndex(ts, KeyArrowLeft, 0, 3, Flow{}))
	assert.Equal(t, 2, nextLinearIndex(ts, KeyArrowRight, 2, 3, Flow{}))
}

func TestLinearWrapAtBoundaries(t *testing.T) {
	ts := TokenSet{Wrap: true}
	assert.Equal(t, 2, nextLinearIndex(ts, KeyArrowLeft, 0, 3, Flow{}))
	assert.Equal(t, 0, nextLinearIndex(ts, KeyArrowRight, 2, 3, Flow{}))
}

func TestLinearNoOpCases(t *testing.T) {
	ts := TokenSet{Wrap: true}
	assert.Equal(t, -1, nextLinearIndex(ts, KeyArrowRight, -1, 3, Flow{}), "no current index")
	assert.Equal(t, 0, nextLinearIndex(ts, KeyArrowRight, 0, 0, Flow{}), "empty group")
	assert.Equal(t, 1, nextLinearIndex(ts, KeyNone, 1, 3, Flow{}), "unrecognized key")
}
