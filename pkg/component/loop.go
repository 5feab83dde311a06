// Package component re-renders stateful markup components into host
// elements, at most once per frame and only when their state changed.
package component

import (
	"reflect"
	"time"

	"github.com/go-drift/rosa/pkg/animation"
	"github.com/go-drift/rosa/pkg/dom"
	"github.com/go-drift/rosa/pkg/errors"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to 'rosa.component'.
func tracer() tracing.Trace {
	return tracing.Select("rosa.component")
}

// Component produces markup from its state.
type Component interface {
	// State returns a value compared with reflect.DeepEqual between frames.
	State() any
	// Render returns the markup for the current state.
	Render() string
}

type entry struct {
	component Component
	host      *dom.Element
	last      any
	rendered  bool
}

// Loop is the render loop. Each frame it polls every component and replaces
// the content of its host with a fresh render when the state differs from
// the state of the last render.
type Loop struct {
	host    *dom.Element
	entries []*entry
	renders int
}

// NewLoop creates a loop whose components render into host by default.
func NewLoop(host *dom.Element) *Loop {
	return &Loop{host: host}
}

// Add registers c under the default host. Adding a registered component
// again has no effect.
func (l *Loop) Add(c Component) {
	l.AddTo(l.host, c)
}

// AddTo registers c under host.
func (l *Loop) AddTo(host *dom.Element, c Component) {
	if l.find(c) >= 0 {
		return
	}
	l.entries = append(l.entries, &entry{component: c, host: host})
}

// Remove unregisters c. Its host keeps the last render.
func (l *Loop) Remove(c Component) {
	if i := l.find(c); i >= 0 {
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
	}
}

// Len returns the number of registered components.
func (l *Loop) Len() int { return len(l.entries) }

// Renders returns the number of renders performed so far.
func (l *Loop) Renders() int { return l.renders }

// Attach runs Frame on every frame of s and returns the function that
// detaches it again.
func (l *Loop) Attach(s *animation.Scheduler) func() {
	return s.OnFrame(l.Frame)
}

// Frame renders every component whose state changed.
func (l *Loop) Frame(now time.Time) {
	for _, e := range append([]*entry(nil), l.entries...) {
		state := e.component.State()
		if e.rendered && reflect.DeepEqual(state, e.last) {
			continue
		}
		if e.host == nil {
			errors.Report(&errors.Error{
				Op:   "component.Frame",
				Kind: errors.KindRender,
				Err:  errors.ErrNoMatch,
			})
			continue
		}
		if err := e.host.SetInnerHTML(e.component.Render()); err != nil {
			tracer().Errorf("component: render failed: %v", err)
			errors.Report(&errors.Error{Op: "component.Frame", Kind: errors.KindRender, Err: err})
			continue
		}
		e.last = state
		e.rendered = true
		l.renders++
		tracer().Debugf("component: rendered %T into <%s>", e.component, e.host.Tag())
	}
}

func (l *Loop) find(c Component) int {
	for i, e := range l.entries {
		if e.component == c {
			return i
		}
	}
	return -1
}
