package dom

import (
	"bytes"
	"strings"

	"github.com/go-drift/rosa/pkg/errors"
	"golang.org/x/net/html"
)

// Element is an element node of a Document.
type Element struct {
	doc   *Document
	node  *html.Node
	style *declarations
}

// Node returns the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.node.Data }

// ID returns the id attribute.
func (e *Element) ID() string {
	id, _ := e.Attr("id")
	return id
}

// Attr returns the value of attribute key.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute key, adding it if missing.
func (e *Element) SetAttr(key, value string) {
	if key == "style" {
		e.style = nil
	}
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr deletes attribute key.
func (e *Element) RemoveAttr(key string) {
	if key == "style" {
		e.style = nil
	}
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// Query returns the first descendant matching sel.
func (e *Element) Query(sel string) (*Element, error) {
	return e.doc.query(e.node, sel)
}

// QueryAll returns every descendant matching sel.
func (e *Element) QueryAll(sel string) ([]*Element, error) {
	return e.doc.queryAll(e.node, sel)
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Children returns the child elements, skipping text and comments.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	var sb strings.Builder
	collectText(e.node, &sb)
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// SetText replaces the children with a single text node.
func (e *Element) SetText(text string) {
	e.clear()
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// InnerHTML renders the children.
func (e *Element) InnerHTML() (string, error) {
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", &errors.Error{Op: "dom.InnerHTML", Kind: errors.KindRender, Err: err}
		}
	}
	return buf.String(), nil
}

// SetInnerHTML replaces the children with the parsed markup. Elements
// previously under e are detached.
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return &errors.Error{Op: "dom.SetInnerHTML", Kind: errors.KindRender, Err: err}
	}
	e.clear()
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

func (e *Element) clear() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	class, _ := e.Attr("class")
	return strings.Fields(class)
}

// HasClass reports whether the class list contains class.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends classes not yet present.
func (e *Element) AddClass(classes ...string) {
	list := e.Classes()
	for _, class := range classes {
		if !contains(list, class) {
			list = append(list, class)
		}
	}
	e.SetAttr("class", strings.Join(list, " "))
}

// RemoveClass drops classes.
func (e *Element) RemoveClass(classes ...string) {
	var list []string
	for _, c := range e.Classes() {
		if !contains(classes, c) {
			list = append(list, c)
		}
	}
	e.SetAttr("class", strings.Join(list, " "))
}

// ToggleClass removes class if present and adds it otherwise. It returns
// whether the class is present afterwards.
func (e *Element) ToggleClass(class string) bool {
	if e.HasClass(class) {
		e.RemoveClass(class)
		return false
	}
	e.AddClass(class)
	return true
}

// ReplaceClass swaps old for class.
func (e *Element) ReplaceClass(old, class string) {
	e.RemoveClass(old)
	e.AddClass(class)
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
