// Package markup builds HTML element trees and renders them to strings.
//
// Trees are plain *html.Node values from golang.org/x/net/html. Text nodes are
// escaped on render; Raw nodes are written verbatim and must only carry markup
// the caller trusts.
package markup

import (
	"bytes"
	"errors"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrEmptyTree is returned when rendering a nil tree.
var ErrEmptyTree = errors.New("markup: empty tree")

// El returns an element node with the given children appended in order.
// Nil children are skipped.
func El(tag atom.Atom, children ...*html.Node) *html.Node {
	return ElAttr(tag, nil, children...)
}

// ElAttr is El with attributes.
func ElAttr(tag atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: tag,
		Data:     tag.String(),
		Attr:     attrs,
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

// Attr is shorthand for a namespace-less attribute.
func Attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// Text returns a text node. Its content is escaped when rendered.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Raw returns a node whose content is emitted without escaping.
func Raw(s string) *html.Node {
	return &html.Node{Type: html.RawNode, Data: s}
}

// Renderer serialises trees to HTML.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes n and its descendants as an HTML fragment.
func (*Renderer) Render(n *html.Node) (string, error) {
	if n == nil {
		return "", ErrEmptyTree
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
