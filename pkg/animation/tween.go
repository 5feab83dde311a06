package animation

import (
	"fmt"
	"time"
)

// Mode selects how an animation's tweens receive progress. It is fixed when
// the animation is compiled.
type Mode int

const (
	// SharedProgress animations compute one eased progress per frame and
	// hand it to every tween.
	SharedProgress Mode = iota
	// PerPropertyTiming animations let each tween keep its own clock,
	// duration, delay and curve.
	PerPropertyTiming
)

func (m Mode) String() string {
	switch m {
	case SharedProgress:
		return "shared"
	case PerPropertyTiming:
		return "per-property"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Tween interpolates one property of one element.
type Tween struct {
	property Property
	unit     Unit
	start    float64
	end      float64
	value    float64
	progress float64
	mode     Mode
	finished bool

	// PerPropertyTiming only.
	begin    time.Time
	duration time.Duration
	delay    time.Duration
	ease     string
	curve    Curve
}

// TweenTiming configures a PerPropertyTiming tween. Origin is the
// scheduler's timeline time at construction (see Scheduler.TimelineNow);
// the tween starts Delay later.
type TweenTiming struct {
	Origin   time.Time
	Delay    time.Duration
	Duration time.Duration
	Ease     string
}

// NewTween creates a SharedProgress tween from from to to. The unit comes
// from from; opacity is always unitless.
func NewTween(p Property, from, to Value) *Tween {
	unit := from.Unit
	if p == Opacity {
		unit = UnitNone
	}
	return &Tween{
		property: p,
		unit:     unit,
		start:    from.Amount,
		end:      to.Amount,
		value:    from.Amount,
		mode:     SharedProgress,
	}
}

// NewTimedTween creates a PerPropertyTiming tween. An empty ease selects
// DefaultEase; an unknown one panics.
func NewTimedTween(p Property, from, to Value, timing TweenTiming) *Tween {
	tw := NewTween(p, from, to)
	tw.mode = PerPropertyTiming
	tw.duration = timing.Duration
	tw.delay = timing.Delay
	tw.begin = timing.Origin.Add(timing.Delay)
	tw.ease = timing.Ease
	if tw.ease == "" {
		tw.ease = DefaultEase
	}
	tw.curve = mustCurve(tw.ease)
	return tw
}

// SetProgress sets the tween to an already eased progress. Values outside
// [0, 1] extrapolate.
func (t *Tween) SetProgress(progress float64) {
	t.progress = progress
	t.value = Lerp(t.start, t.end, progress)
}

// Advance moves a PerPropertyTiming tween to timestamp ts, which must
// already exclude paused time. Before the delay has elapsed the tween is
// left unchanged. Finished is raised on the call after progress reaches 1,
// so the final value is always drawn at least once before the tween is
// dropped.
func (t *Tween) Advance(ts time.Time) {
	if t.progress >= 1 {
		t.finished = true
	}
	elapsed := ts.Sub(t.begin)
	if elapsed < 0 {
		return
	}
	t.progress = t.curve(unitProgress(elapsed, t.duration))
	t.value = Lerp(t.start, t.end, t.progress)
}

// unitProgress returns elapsed/duration clamped to at most 1. A
// non-positive duration completes immediately.
func unitProgress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return min(float64(elapsed)/float64(duration), 1)
}

// Property returns the tweened property.
func (t *Tween) Property() Property { return t.property }

// Unit returns the unit written after the value.
func (t *Tween) Unit() Unit { return t.unit }

// Start returns the value at progress 0.
func (t *Tween) Start() float64 { return t.start }

// End returns the value at progress 1.
func (t *Tween) End() float64 { return t.end }

// Value returns the current interpolated value.
func (t *Tween) Value() float64 { return t.value }

// Progress returns the last eased progress.
func (t *Tween) Progress() float64 { return t.progress }

// Finished reports whether a PerPropertyTiming tween has completed.
func (t *Tween) Finished() bool { return t.finished }

// Mode returns the tween's progress mode.
func (t *Tween) Mode() Mode { return t.mode }

// Duration returns the tween's own duration (PerPropertyTiming only).
func (t *Tween) Duration() time.Duration { return t.duration }

// Delay returns the tween's own delay (PerPropertyTiming only).
func (t *Tween) Delay() time.Duration { return t.delay }

// EaseName returns the tween's curve name (PerPropertyTiming only).
func (t *Tween) EaseName() string { return t.ease }

// String returns the current value with its unit, e.g. "87.5px".
func (t *Tween) String() string {
	return formatNumber(t.value) + t.unit.String()
}

func mustCurve(name string) Curve {
	c, ok := LookupCurve(name)
	if !ok {
		panic(fmt.Sprintf("animation: unknown ease %q", name))
	}
	return c
}
