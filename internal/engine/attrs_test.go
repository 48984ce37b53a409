package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/rove/internal/dom"
)

func attrOf(t *testing.T, el *dom.Element, name string) string {
	t.Helper()
	v, ok := el.Attr(name)
	require.True(t, ok, "expected %s attribute on <%s>", name, el.Tag)
	return v
}

func TestAttrSnapshotRestoreFidelity(t *testing.T) {
	m := newAttrManager()

	withBoth := dom.NewElement("button")
	withBoth.SetAttribute("tabindex", "2")
	withBoth.SetAttribute("role", "switch")

	withNeither := dom.NewElement("button")

	m.setTabindex(withBoth, tabindexSecondary)
	m.setTabindex(withNeither, tabindexPrimary)

	assert.Equal(t, "-1", attrOf(t, withBoth, "tabindex"))
	assert.Equal(t, "0", attrOf(t, withNeither, "tabindex"))

	m.restore(withBoth)
	m.restore(withNeither)

	assert.Equal(t, "2", attrOf(t, withBoth, "tabindex"))
	assert.Equal(t, "switch", attrOf(t, withBoth, "role"))
	assert.False(t, withNeither.HasAttr("tabindex"), "absent attribute comes back absent")
	assert.False(t, withNeither.HasAttr("role"))
}

func TestAttrSnapshotTakenOnce(t *testing.T) {
	m := newAttrManager()
	el := dom.NewElement("button")
	el.SetAttribute("tabindex", "3")

	m.setTabindex(el, tabindexSecondary)
	// later writes must not re-snapshot the engine's own value
	m.setTabindex(el, tabindexPrimary)
	m.restore(el)

	assert.Equal(t, "3", attrOf(t, el, "tabindex"))
}

func TestAttrDoubleRestoreIsNoOp(t *testing.T) {
	m := newAttrManager()
	el := dom.NewElement("button")

	m.setTabindex(el, tabindexSecondary)
	m.restore(el)

	// a page script writes after teardown; a second restore must not undo it
	el.SetAttribute("tabindex", "5")
	m.restore(el)

	assert.Equal(t, "5", attrOf(t, el, "tabindex"))
	assert.False(t, m.managed(el))
}

func TestAttrRestoreUnmanagedIsNoOp(t *testing.T) {
	m := newAttrManager()
	el := dom.NewElement("button")
	el.SetAttribute("tabindex", "1")

	m.restore(el)

	assert.Equal(t, "1", attrOf(t, el, "tabindex"))
}

func TestAttrRestoreAll(t *testing.T) {
	m := newAttrManager()
	items := makeButtons(3)
	items[1].SetAttribute("tabindex", "0")

	m.applyRoving(items, 0)
	m.restoreAll()

	assert.False(t, items[0].HasAttr("tabindex"))
	assert.Equal(t, "0", attrOf(t, items[1], "tabindex"))
	assert.False(t, items[2].HasAttr("tabindex"))
	for _, el := range items {
		assert.False(t, m.managed(el))
		assert.False(t, m.rovingManaged(el))
	}
}

func TestApplyRovingSinglePrimary(t *testing.T) {
	m := newAttrManager()
	items := makeButtons(4)

	m.applyRoving(items, 2)

	for i, el := range items {
		want := tabindexSecondary
		if i == 2 {
			want = tabindexPrimary
		}
		assert.Equal(t, want, attrOf(t, el, "tabindex"))
		assert.True(t, m.rovingManaged(el))
	}

	// moving the primary keeps the invariant
	m.applyRoving(items, 0)
	primaries := 0
	for _, el := range items {
		if attrOf(t, el, "tabindex") == tabindexPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
}

func TestApplyRolesInference(t *testing.T) {
	m := newAttrManager()
	container := dom.NewElement("div")
	items := makeButtons(2)

	m.applyRoles(container, items, BehaviorTablist)

	assert.Equal(t, "tablist", attrOf(t, container, "role"))
	assert.Equal(t, "tab", attrOf(t, items[0], "role"))
	assert.Equal(t, "tab", attrOf(t, items[1], "role"))
}

func TestApplyRolesSkipsNonGenericContainer(t *testing.T) {
	m := newAttrManager()
	container := dom.NewElement("ul")
	items := makeButtons(1)

	m.applyRoles(container, items, BehaviorListbox)

	assert.False(t, container.HasAttr("role"), "implicit-role tags keep their semantics")
	assert.Equal(t, "option", attrOf(t, items[0], "role"))
}

func TestApplyRolesNeverOverwritesAuthoredRole(t *testing.T) {
	m := newAttrManager()
	container := dom.NewElement("div")
	container.SetAttribute("role", "region")
	items := makeButtons(2)
	items[1].SetAttribute("role", "checkbox")

	m.applyRoles(container, items, BehaviorMenu)

	assert.Equal(t, "region", attrOf(t, container, "role"))
	assert.Equal(t, "menuitem", attrOf(t, items[0], "role"))
	assert.Equal(t, "checkbox", attrOf(t, items[1], "role"))
}

func TestApplyRolesEngineWriteIsNotAuthored(t *testing.T) {
	m := newAttrManager()
	items := makeButtons(1)

	// roving snapshots the element first; the role the engine writes later
	// must still be treated as engine-owned, not authored
	m.applyRoving(items, 0)
	m.applyRoles(dom.NewElement("div"), items, BehaviorListbox)
	assert.Equal(t, "option", attrOf(t, items[0], "role"))

	m.applyRoles(dom.NewElement("div"), items, BehaviorMenu)
	assert.Equal(t, "menuitem", attrOf(t, items[0], "role"))

	m.restore(items[0])
	assert.False(t, items[0].HasAttr("role"))
}

func TestApplyRolesToolbarHasNoItemRole(t *testing.T) {
	m := newAttrManager()
	container := dom.NewElement("div")
	items := makeButtons(1)

	m.applyRoles(container, items, BehaviorToolbar)

	assert.Equal(t, "toolbar", attrOf(t, container, "role"))
	assert.False(t, items[0].HasAttr("role"))
}

func TestApplyRolesUnknownBehaviorIsNoOp(t *testing.T) {
	m := newAttrManager()
	container := dom.NewElement("div")
	items := makeButtons(1)

	m.applyRoles(container, items, BehaviorUnknown)

	assert.False(t, container.HasAttr("role"))
	assert.False(t, items[0].HasAttr("role"))
}
