// Package animation drives CSS transform and opacity animations on styled
// targets, one frame at a time.
//
// # Core Components
//
//   - [Scheduler]: the registry of running animations and the frame loop
//     that updates and draws them. Supports pause and resume without
//     counting paused time.
//
//   - [Element]: binds one [Styler] target to one [Compositor] and owns the
//     animation-level timing and completion callback.
//
//   - [Compositor]: merges the tweens of one element into a single
//     transform string (translate3d, scale3d, rotate3d, skew) and an opacity.
//
//   - [Tween]: interpolates one [Property] between two values, either from a
//     shared progress or on its own clock.
//
//   - Curves: the Penner easing family by name, see [CurveNames].
//
// # Basic Usage
//
// Build a scheduler on a frame source, start it and compile animations:
//
//	loop := animation.NewFrameLoop(0, nil)
//	s := animation.NewScheduler(animation.Options{Frames: loop})
//	s.Start()
//	defer s.Close()
//
//	s.Animate(animation.Params{
//	    Target:   el,
//	    Duration: animation.Dur(800 * time.Millisecond),
//	    Ease:     "outCubic",
//	    Props: map[string]animation.Prop{
//	        "translateY": animation.FromTo(-100, 0),
//	        "opacity":    animation.FromTo(0, 1),
//	    },
//	})
//
//	go loop.Run(ctx) // or drive a Stepper in tests
//
// Animating a target again while it is still moving starts the new tweens at
// the current values, so there is no visual jump.
package animation

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'rosa.animation'.
func tracer() tracing.Trace {
	return tracing.Select("rosa.animation")
}
