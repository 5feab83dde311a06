package dom

import (
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/go-drift/rosa/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page. Every node is wrapped by at most one
// *Element, so elements can be compared by identity and used as map keys.
type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, &errors.Error{Op: "dom.Parse", Kind: errors.KindRender, Err: err}
	}
	return &Document{root: root, elements: make(map[*html.Node]*Element)}, nil
}

// ParseString parses an HTML document held in a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Body returns the body element. The HTML parser always creates one.
func (d *Document) Body() *Element {
	return d.wrap(findAtom(d.root, atom.Body))
}

// Wrap returns the element for n, which must belong to d.
func (d *Document) Wrap(n *html.Node) *Element {
	return d.wrap(n)
}

// Query returns the first element matching sel. A selector that does not
// compile or matches nothing is a KindSelector error.
func (d *Document) Query(sel string) (*Element, error) {
	return d.query(d.root, sel)
}

// QueryAll returns every element matching sel in document order. An empty
// match is a KindSelector error.
func (d *Document) QueryAll(sel string) ([]*Element, error) {
	return d.queryAll(d.root, sel)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return &errors.Error{Op: "dom.Render", Kind: errors.KindRender, Err: err}
	}
	return nil
}

func (d *Document) query(scope *html.Node, sel string) (*Element, error) {
	compiled, err := compile("dom.Query", sel)
	if err != nil {
		return nil, err
	}
	n := compiled.MatchFirst(scope)
	if n == nil {
		return nil, &errors.Error{Op: "dom.Query", Kind: errors.KindSelector, Selector: sel, Err: errors.ErrNoMatch}
	}
	return d.wrap(n), nil
}

func (d *Document) queryAll(scope *html.Node, sel string) ([]*Element, error) {
	compiled, err := compile("dom.QueryAll", sel)
	if err != nil {
		return nil, err
	}
	nodes := compiled.MatchAll(scope)
	if len(nodes) == 0 {
		return nil, &errors.Error{Op: "dom.QueryAll", Kind: errors.KindSelector, Selector: sel, Err: errors.ErrNoMatch}
	}
	out := make([]*Element, len(nodes))
	for i, n := range nodes {
		out[i] = d.wrap(n)
	}
	tracer().Debugf("dom: %q matched %d element(s)", sel, len(out))
	return out, nil
}

func compile(op, sel string) (cascadia.Selector, error) {
	compiled, err := cascadia.Compile(sel)
	if err != nil {
		tracer().Errorf("dom: invalid selector %q: %v", sel, err)
		return nil, &errors.Error{Op: op, Kind: errors.KindSelector, Selector: sel, Err: err}
	}
	return compiled, nil
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if e, ok := d.elements[n]; ok {
		return e
	}
	e := &Element{doc: d, node: n}
	d.elements[n] = e
	return e
}

func findAtom(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findAtom(c, a); found != nil {
			return found
		}
	}
	return nil
}
