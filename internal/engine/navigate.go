package engine

// nextLinearIndex computes the index a navigation key lands on in a linear
// group. Pure: no state outside the arguments is consulted.
//
// Forward/backward resolution honors the computed flow: right-to-left text
// flips the horizontal keys, a vertical writing orientation flips the
// vertical keys. Axis-restricted groups ignore keys on the other axis
// entirely (no wrap evaluation, no index change). Home and End bypass
// direction resolution. Out-of-range results wrap modulo the item count
// when wrapping is on, otherwise clamp to the nearest boundary.
func nextLinearIndex(ts TokenSet, key Key, index, count int, flow Flow) int {
	if count == 0 || index < 0 {
		return index
	}

	switch key {
	case KeyHome:
		return 0
	case KeyEnd:
		return count - 1
	}

	// inline axis follows the writing orientation: horizontal keys in
	// horizontal writing, vertical keys in vertical writing
	inlineKey := key.horizontal() == (flow.Orientation == OrientationHorizontal)
	if ts.InlineOnly && !inlineKey {
		return index
	}
	if ts.BlockOnly && inlineKey {
		return index
	}

	var forward bool
	switch key {
	case KeyArrowRight:
		forward = flow.Direction != DirectionRTL
	case KeyArrowLeft:
		forward = flow.Direction == DirectionRTL
	case KeyArrowDown:
		forward = flow.Orientation != OrientationVertical
	case KeyArrowUp:
		forward = flow.Orientation == OrientationVertical
	default:
		return index
	}

	next := index - 1
	if forward {
		next = index + 1
	}

	if ts.Wrap {
		return ((next % count) + count) % count
	}
	if next < 0 {
		return 0
	}
	if next > count-1 {
		return count - 1
	}
	return next
}
