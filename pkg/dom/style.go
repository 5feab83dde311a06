package dom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// declarations is an inline style as an ordered declaration list.
type declarations struct {
	list []*css.Declaration
}

func parseStyle(text string) *declarations {
	d := &declarations{}
	text = strings.TrimSpace(text)
	if text == "" {
		return d
	}
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	list, err := parser.ParseDeclarations(text)
	if err != nil {
		tracer().Errorf("dom: dropping unparseable style %q: %v", text, err)
		return d
	}
	d.list = list
	return d
}

func (d *declarations) get(property string) string {
	for _, decl := range d.list {
		if decl.Property == property {
			return decl.Value
		}
	}
	return ""
}

// set replaces the value of property in place, appends it, or removes it
// when value is empty.
func (d *declarations) set(property, value string) {
	for i, decl := range d.list {
		if decl.Property != property {
			continue
		}
		if value == "" {
			d.list = append(d.list[:i], d.list[i+1:]...)
			return
		}
		decl.Value = value
		decl.Important = false
		return
	}
	if value != "" {
		d.list = append(d.list, &css.Declaration{Property: property, Value: value})
	}
}

func (d *declarations) String() string {
	parts := make([]string, len(d.list))
	for i, decl := range d.list {
		parts[i] = decl.Property + ": " + decl.Value
		if decl.Important {
			parts[i] += " !important"
		}
		parts[i] += ";"
	}
	return strings.Join(parts, " ")
}

func (e *Element) styles() *declarations {
	if e.style == nil {
		text, _ := e.Attr("style")
		e.style = parseStyle(text)
	}
	return e.style
}

// Style returns the inline value of a CSS property.
func (e *Element) Style(property string) string {
	return e.styles().get(property)
}

// SetStyle writes one inline CSS property. An empty value removes it.
func (e *Element) SetStyle(property, value string) {
	d := e.styles()
	d.set(property, value)
	e.writeStyle(d)
}

// SetStyles writes properties[i] = values[i] for each pair.
func (e *Element) SetStyles(properties, values []string) {
	d := e.styles()
	for i, property := range properties {
		if i < len(values) {
			d.set(property, values[i])
		}
	}
	e.writeStyle(d)
}

func (e *Element) writeStyle(d *declarations) {
	text := d.String()
	found := false
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == "style" {
			e.node.Attr[i].Val = text
			found = true
			break
		}
	}
	if !found {
		e.SetAttr("style", text)
		e.style = d
	}
}
