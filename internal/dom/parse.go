package dom

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Parse reads an HTML document and builds the element tree. Text nodes,
// comments and doctypes are dropped; the engine only cares about element
// structure and attributes. A <template shadowrootmode="..."> child becomes
// an attached shadow subtree on its parent, mirroring declarative shadow DOM.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := NewDocument()
	convertChildren(doc.Root, root)
	return doc, nil
}

// ParseFile parses the HTML document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// ParseFragment parses an HTML fragment as the children of a <body>.
func ParseFragment(fragment string) (*Document, error) {
	return Parse(strings.NewReader("<body>" + fragment + "</body>"))
}

func convertChildren(parent *Element, src *html.Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data == "template" && templateShadowMode(c) != "" {
			shadow := parent.AttachShadow()
			convertChildren(shadow, templateContent(c))
			continue
		}
		el := NewElement(c.Data)
		for _, a := range c.Attr {
			el.attrs[a.Key] = a.Val
		}
		parent.AppendChild(el)
		convertChildren(el, c)
	}
}

func templateShadowMode(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "shadowrootmode" {
			return a.Val
		}
	}
	return ""
}

// templateContent returns the node holding a template's children. x/net/html
// parses template contents into a separate fragment node when available.
func templateContent(n *html.Node) *html.Node {
	if f := templateFragment(n); f != nil {
		return f
	}
	return n
}

func templateFragment(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DocumentNode {
			return c
		}
	}
	return nil
}
