package component

import (
	"strings"
	"unicode"

	"github.com/go-drift/rosa/pkg/dom"
	"github.com/go-drift/rosa/pkg/errors"
)

// Registry maps component names to render functions, so that a page can
// name its root component as "<App/>".
type Registry struct {
	funcs map[string]func() string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]func() string)}
}

// Register stores render under name.
func (r *Registry) Register(name string, render func() string) {
	r.funcs[name] = render
}

// Mount renders the component named by tag into root. Everything but
// letters is stripped from tag, so "<App/>" names "App".
func (r *Registry) Mount(root *dom.Element, tag string) error {
	name := strings.Map(func(c rune) rune {
		if unicode.IsLetter(c) {
			return c
		}
		return -1
	}, tag)
	render, ok := r.funcs[name]
	if !ok {
		tracer().Infof("component: %q is not registered", name)
		return &errors.Error{
			Op:   "component.Mount",
			Kind: errors.KindRender,
			Err:  &errors.ParamError{Field: "component", Value: name, Reason: "not registered"},
		}
	}
	return root.SetInnerHTML(render())
}
