package animation

import "time"

// styleSink is a Styler that keeps the last value per property and counts
// writes.
type styleSink struct {
	styles map[string]string
	writes int
}

func newStyleSink() *styleSink {
	return &styleSink{styles: make(map[string]string)}
}

func (s *styleSink) SetStyle(property, value string) {
	s.styles[property] = value
	s.writes++
}

// newSteppedScheduler returns a started scheduler driven by a Stepper.
func newSteppedScheduler() (*Scheduler, *Stepper) {
	stepper := NewStepper(time.Time{})
	s := NewScheduler(Options{Clock: stepper, Frames: stepper})
	s.Start()
	return s, stepper
}

func translateX(px string) string {
	return "translate3d(" + px + ", 0px, 0px) scale3d(1, 1, 1) rotate3d(0,0,0,0deg) skew(0deg,0deg)"
}
