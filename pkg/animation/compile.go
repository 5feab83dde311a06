package animation

import (
	"sort"
	"time"

	"github.com/go-drift/rosa/pkg/errors"
)

// DefaultDuration is the duration of an animation compiled without one.
const DefaultDuration = time.Second

// Timing overrides the animation-level timing for one property. Nil
// durations, an empty ease and DirectionDefault inherit the animation's
// values; an explicit zero duration or delay is kept.
type Timing struct {
	Duration  *time.Duration
	Delay     *time.Duration
	Ease      string
	Direction Direction
}

// Dur returns a pointer to d, for the optional fields of Timing and Params.
func Dur(d time.Duration) *time.Duration {
	return &d
}

// resolved is a Timing with every field filled in.
type resolved struct {
	duration  time.Duration
	delay     time.Duration
	ease      string
	direction Direction
}

// Prop is the from/to pair of one property. From and To accept a Value, a
// number (percent) or a string ("10px", "45deg").
type Prop struct {
	From, To any
	// Timing, when set, gives the property its own clock and switches the
	// whole animation to PerPropertyTiming.
	Timing *Timing
}

// FromTo returns a Prop using the animation-level timing.
func FromTo(from, to any) Prop {
	return Prop{From: from, To: to}
}

// With returns a copy of p with its own timing.
func (p Prop) With(t Timing) Prop {
	p.Timing = &t
	return p
}

// Params declares one animation.
type Params struct {
	Target Styler
	// Props maps property names ("translateX", "opacity", ...) to their
	// from/to pairs. Names outside the vocabulary are ignored.
	Props map[string]Prop

	// Duration defaults to DefaultDuration when nil. Zero finishes on the
	// first frame.
	Duration  *time.Duration
	Delay     time.Duration
	Ease      string
	Direction Direction
	// Opacity requests the opacity style even without an opacity track.
	Opacity  bool
	OnFinish func()
}

type track struct {
	property Property
	prop     Prop
}

// Animate compiles p into tweens, a compositor and an element and registers
// the element. If the target is already animating, every property that is
// animated again starts from its current value instead of p's from value,
// so re-targeting never jumps.
func (s *Scheduler) Animate(p Params) (*Element, error) {
	const op = "animation.Animate"
	if p.Target == nil {
		return nil, paramError(op, "target", nil, "missing")
	}

	global := resolved{
		duration:  DefaultDuration,
		delay:     p.Delay,
		ease:      p.Ease,
		direction: p.Direction,
	}
	if p.Duration != nil {
		global.duration = *p.Duration
	}
	if global.ease == "" {
		global.ease = DefaultEase
	}
	if global.direction == DirectionDefault {
		global.direction = Normal
	}
	if _, ok := LookupCurve(global.ease); !ok {
		return nil, paramError(op, "ease", global.ease, "unknown curve")
	}
	if !validDirection(global.direction) {
		return nil, paramError(op, "direction", global.direction, "unknown direction")
	}

	tracks := make([]track, 0, len(p.Props))
	for name, prop := range p.Props {
		property, ok := ParseProperty(name)
		if !ok {
			tracer().Debugf("animation: ignoring unknown property %q", name)
			continue
		}
		tracks = append(tracks, track{property: property, prop: prop})
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].property < tracks[j].property })

	prev, animating := s.Lookup(p.Target)
	if animating {
		if err := rebase(tracks, prev); err != nil {
			return nil, &errors.Error{Op: op, Kind: errors.KindParams, Err: err}
		}
	}

	mode := SharedProgress
	writeOpacity := p.Opacity
	for _, tr := range tracks {
		if tr.prop.Timing != nil {
			mode = PerPropertyTiming
		}
		if tr.property == Opacity {
			writeOpacity = true
		}
	}

	origin := s.TimelineNow()
	tweens := make([]*Tween, 0, len(tracks))
	for _, tr := range tracks {
		tw, err := buildTween(tr, global, mode, origin)
		if err != nil {
			return nil, &errors.Error{Op: op, Kind: errors.KindParams, Err: err}
		}
		tweens = append(tweens, tw)
	}

	comp := NewCompositor(tweens...)
	if animating {
		comp.inherit(prev.Compositor())
	}
	e := NewElement(p.Target, comp, ElementConfig{
		Mode:         mode,
		Duration:     global.duration,
		Delay:        global.delay,
		Ease:         global.ease,
		Direction:    global.direction,
		Origin:       origin,
		WriteOpacity: writeOpacity,
		OnFinish:     p.OnFinish,
	})
	s.Enqueue(e)
	tracer().Debugf("animation: enqueued %d tween(s) for %p in %s mode", len(tweens), p.Target, mode)
	return e, nil
}

// rebase overwrites the from value of every track that the previous
// animation is still tweening with that tween's current value.
func rebase(tracks []track, prev *Element) error {
	for i := range tracks {
		tw, ok := prev.Compositor().Lookup(tracks[i].property)
		if !ok {
			continue
		}
		from, err := ParseValue(tracks[i].prop.From)
		if err != nil {
			return withField(err, tracks[i].property.String())
		}
		from.Amount = tw.Value()
		tracks[i].prop.From = from
		tracer().Debugf("animation: rebased %s from %s", tracks[i].property, from)
	}
	return nil
}

func buildTween(tr track, global resolved, mode Mode, origin time.Time) (*Tween, error) {
	name := tr.property.String()
	from, err := ParseValue(tr.prop.From)
	if err != nil {
		return nil, withField(err, name)
	}
	to, err := ParseValue(tr.prop.To)
	if err != nil {
		return nil, withField(err, name)
	}

	timing := global
	if o := tr.prop.Timing; o != nil {
		if o.Duration != nil {
			timing.duration = *o.Duration
		}
		if o.Delay != nil {
			timing.delay = *o.Delay
		}
		if o.Ease != "" {
			timing.ease = o.Ease
		}
		if o.Direction != DirectionDefault {
			timing.direction = o.Direction
		}
	}
	if _, ok := LookupCurve(timing.ease); !ok {
		return nil, &errors.ParamError{Field: name + ".ease", Value: timing.ease, Reason: "unknown curve"}
	}
	if !validDirection(timing.direction) {
		return nil, &errors.ParamError{Field: name + ".direction", Value: timing.direction, Reason: "unknown direction"}
	}

	// The unit is chosen from the from value and applies to both ends.
	start := Value{Amount: from.Amount, Unit: from.Unit}
	end := Value{Amount: to.Amount, Unit: from.Unit}
	if timing.direction == Reverse {
		start.Amount, end.Amount = end.Amount, start.Amount
	}

	if mode == SharedProgress {
		return NewTween(tr.property, start, end), nil
	}
	return NewTimedTween(tr.property, start, end, TweenTiming{
		Origin:   origin,
		Delay:    timing.delay,
		Duration: timing.duration,
		Ease:     timing.ease,
	}), nil
}

func validDirection(d Direction) bool {
	return d == Normal || d == Reverse
}

func withField(err error, field string) error {
	if pe, ok := err.(*errors.ParamError); ok {
		cp := *pe
		cp.Field = field
		return &cp
	}
	return err
}

func paramError(op, field string, value any, reason string) error {
	return &errors.Error{
		Op:   op,
		Kind: errors.KindParams,
		Err:  &errors.ParamError{Field: field, Value: value, Reason: reason},
	}
}
