package animation

import (
	"fmt"
	"time"
)

// Styler receives the computed inline styles of an animated element. The
// scheduler keys its registry by Styler, so implementations must be
// comparable; pointer types are the norm.
type Styler interface {
	SetStyle(property, value string)
}

// Direction selects whether from/to pairs play forward or swapped.
type Direction int

const (
	// DirectionDefault inherits the enclosing direction (normal at the top level).
	DirectionDefault Direction = iota
	// Normal plays from -> to.
	Normal
	// Reverse plays to -> from.
	Reverse
)

// ParseDirection maps "normal", "reverse" and "" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "":
		return DirectionDefault, nil
	case "normal":
		return Normal, nil
	case "reverse":
		return Reverse, nil
	}
	return DirectionDefault, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) String() string {
	switch d {
	case DirectionDefault:
		return ""
	case Normal:
		return "normal"
	case Reverse:
		return "reverse"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ElementConfig carries the animation-level timing of an Element. Duration,
// Delay and Ease drive SharedProgress animations; PerPropertyTiming
// animations take their timing from the tweens.
type ElementConfig struct {
	Mode      Mode
	Duration  time.Duration
	Delay     time.Duration
	Ease      string
	Direction Direction
	// Origin is the scheduler timeline time at creation.
	Origin time.Time
	// WriteOpacity adds opacity to the written CSS properties.
	WriteOpacity bool
	OnFinish     func()
}

// Element binds one styled target to one Compositor and drives it.
type Element struct {
	target     Styler
	comp       *Compositor
	mode       Mode
	direction  Direction
	duration   time.Duration
	delay      time.Duration
	ease       string
	curve      Curve
	start      time.Time
	elapsed    time.Duration
	progress   float64
	finished   bool
	settled    bool
	onFinish   func()
	properties []string
}

// NewElement creates an element animating target through comp.
func NewElement(target Styler, comp *Compositor, cfg ElementConfig) *Element {
	ease := cfg.Ease
	if ease == "" {
		ease = DefaultEase
	}
	direction := cfg.Direction
	if direction == DirectionDefault {
		direction = Normal
	}
	e := &Element{
		target:     target,
		comp:       comp,
		mode:       cfg.Mode,
		direction:  direction,
		duration:   cfg.Duration,
		delay:      cfg.Delay,
		ease:       ease,
		curve:      mustCurve(ease),
		start:      cfg.Origin.Add(cfg.Delay),
		onFinish:   cfg.OnFinish,
		properties: []string{"transform"},
	}
	if cfg.WriteOpacity {
		e.properties = append(e.properties, "opacity")
	}
	return e
}

// Update advances the element to timestamp ts, which must already exclude
// paused time.
func (e *Element) Update(ts time.Time) {
	if e.finished {
		return
	}
	switch e.mode {
	case SharedProgress:
		e.updateShared(ts)
	case PerPropertyTiming:
		e.updatePerProperty(ts)
	}
}

func (e *Element) updateShared(ts time.Time) {
	e.elapsed = ts.Sub(e.start)
	if e.elapsed < 0 {
		return
	}
	e.progress = e.curve(unitProgress(e.elapsed, e.duration))
	for _, tw := range e.comp.tweens {
		tw.SetProgress(e.progress)
	}
}

func (e *Element) updatePerProperty(ts time.Time) {
	for _, tw := range e.comp.Tweens() {
		if tw.Finished() {
			e.comp.Remove(tw)
			continue
		}
		tw.Advance(ts)
	}
	if e.comp.Len() == 0 {
		e.finish()
	}
}

// Draw recomputes the composite styles and writes them to the target. A
// SharedProgress element finishes on the draw that sees progress 1. After
// the final write of a finished element, Draw does nothing.
func (e *Element) Draw() {
	if e.settled {
		return
	}
	if e.mode == SharedProgress && e.progress >= 1 {
		e.finish()
	}
	e.comp.Recompute()
	for _, prop := range e.properties {
		switch prop {
		case "transform":
			e.target.SetStyle(prop, e.comp.Transform())
		case "opacity":
			e.target.SetStyle(prop, e.comp.Opacity())
		}
	}
	if e.finished {
		e.settled = true
	}
}

func (e *Element) finish() {
	if e.finished {
		return
	}
	e.finished = true
	tracer().Debugf("animation: element %p finished", e.target)
	if e.onFinish != nil {
		e.onFinish()
	}
}

// Target returns the styled target.
func (e *Element) Target() Styler { return e.target }

// Compositor returns the element's compositor.
func (e *Element) Compositor() *Compositor { return e.comp }

// Mode returns the element's progress mode.
func (e *Element) Mode() Mode { return e.mode }

// Direction returns the element's direction.
func (e *Element) Direction() Direction { return e.direction }

// Duration returns the animation-level duration.
func (e *Element) Duration() time.Duration { return e.duration }

// Delay returns the animation-level delay.
func (e *Element) Delay() time.Duration { return e.delay }

// EaseName returns the animation-level curve name.
func (e *Element) EaseName() string { return e.ease }

// Progress returns the shared eased progress (SharedProgress only).
func (e *Element) Progress() float64 { return e.progress }

// Finished reports whether the element has completed.
func (e *Element) Finished() bool { return e.finished }

// Properties returns the CSS properties the element writes.
func (e *Element) Properties() []string {
	out := make([]string, len(e.properties))
	copy(out, e.properties)
	return out
}
