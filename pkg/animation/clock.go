package animation

import "time"

// Clock provides time for animations. The scheduler reads it when it
// starts, pauses, resumes and when animations are created; frame sources
// supply the timestamps of frames. Tests use a Stepper, which is both.
type Clock interface {
	Now() time.Time
}

// SystemClock uses system time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }
