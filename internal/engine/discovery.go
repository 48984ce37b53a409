package engine

import "github.com/bnema/rove/internal/dom"

// discoverItems walks the container subtree in tree order and collects the
// group's navigable items. Traversal is an explicit worklist so the
// exclusion rules stay uniform whether or not a shadow boundary was
// crossed on the way down:
//
//   - a subtree under an opt-out ("none") container is never entered;
//   - a nested group container keeps its own subtree: the walk does not
//     descend into it (the container itself can still be an item of this
//     group when the predicate accepts it);
//   - a focusable element is an item and a leaf in the navigation sense,
//     even when it has focusable descendants;
//   - shadow subtrees are entered only in shadow-inclusive mode, splicing
//     their items at the point the host is encountered.
//
// The container is never part of its own item list.
func discoverItems(container *dom.Element, ts TokenSet, focusable Focusable) []*dom.Element {
	if ts.Behavior == BehaviorNone {
		return nil
	}

	var items []*dom.Element

	stack := make([]*dom.Element, 0, 16)
	push := func(el *dom.Element) {
		// shadow children come before light children in discovery
		// order, so push light first (stack is LIFO)
		children := el.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
		if ts.ShadowInclusive && el.ShadowRoot() != nil {
			shadowChildren := el.ShadowRoot().Children()
			for i := len(shadowChildren) - 1; i >= 0; i-- {
				stack = append(stack, shadowChildren[i])
			}
		}
	}

	push(container)
	for len(stack) > 0 {
		el := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if raw, ok := el.Attr(AttrGroup); ok {
			nested := ParseTokens(raw)
			if nested.Behavior == BehaviorNone {
				// opt-out zone: not an item, subtree sealed
				continue
			}
			if focusable(el) {
				items = append(items, el)
			}
			// nested group owns its subtree
			continue
		}

		if focusable(el) {
			items = append(items, el)
			continue
		}

		push(el)
	}

	return items
}
