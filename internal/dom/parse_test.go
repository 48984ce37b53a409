package dom

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findTag(root *Element, tag string) *Element {
	var found *Element
	root.Walk(func(e *Element) bool {
		if e.Tag == tag {
			found = e
			return false
		}
		return true
	})
	return found
}

func TestParseFragmentBuildsElementTree(t *testing.T) {
	doc, err := ParseFragment(`
		<div focusgroup="toolbar">
			some text
			<button id="a">Save</button>
			<!-- a comment -->
			<button id="b"></button>
		</div>`)
	require.NoError(t, err)

	group := findTag(doc.Root, "div")
	require.NotNil(t, group)
	v, ok := group.Attr("focusgroup")
	require.True(t, ok)
	assert.Equal(t, "toolbar", v)

	// text and comments are dropped, only elements remain
	require.Len(t, group.Children(), 2)
	id, _ := group.Children()[0].Attr("id")
	assert.Equal(t, "a", id)

	assert.True(t, group.IsConnected())
}

func TestParseDeclarativeShadowRoot(t *testing.T) {
	doc, err := ParseFragment(`
		<div id="host">
			<template shadowrootmode="open">
				<button id="inner"></button>
			</template>
			<span id="light"></span>
		</div>`)
	require.NoError(t, err)

	host := findTag(doc.Root, "div")
	require.NotNil(t, host)

	shadow := host.ShadowRoot()
	require.NotNil(t, shadow, "template with shadowrootmode attaches a shadow root")
	require.Len(t, shadow.Children(), 1)
	assert.Equal(t, "button", shadow.Children()[0].Tag)

	require.Len(t, host.Children(), 1, "the template itself does not appear in the light tree")
	assert.Equal(t, "span", host.Children()[0].Tag)

	assert.True(t, shadow.Children()[0].IsConnected())
}

func TestParsePlainTemplateStaysInert(t *testing.T) {
	doc, err := ParseFragment(`
		<div id="host">
			<template><button></button></template>
		</div>`)
	require.NoError(t, err)

	host := findTag(doc.Root, "div")
	require.NotNil(t, host)
	assert.Nil(t, host.ShadowRoot(), "a template without shadowrootmode is not a shadow root")
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(`<html><body><nav focusgroup="menubar"></nav></body></html>`), 0o644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.NotNil(t, findTag(doc.Root, "nav"))

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}
