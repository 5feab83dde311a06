package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/rosa/pkg/animation"
)

// DefaultFrameDuration is the frame step of PumpAndSettle.
const DefaultFrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: animations did not settle")

// Tester drives a Scheduler with a Stepper so that frames happen exactly
// when the test says so.
type Tester struct {
	stepper    *animation.Stepper
	scheduler  *animation.Scheduler
	epoch      time.Time
	frame      int
	recorders  []*Recorder
	dispatches []func()
}

// NewTester creates a tester with a started scheduler. Call Cleanup when
// done, or use NewTesterWithT instead.
func NewTester() *Tester {
	stepper := animation.NewStepper(time.Time{})
	t := &Tester{
		stepper:   stepper,
		scheduler: animation.NewScheduler(animation.Options{Clock: stepper, Frames: stepper}),
		epoch:     stepper.Now(),
	}
	t.scheduler.OnFrame(func(time.Time) { t.frame++ })
	t.scheduler.Start()
	return t
}

// NewTesterWithT creates a tester that cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup closes the scheduler.
func (t *Tester) Cleanup() {
	t.scheduler.Close()
}

// Scheduler returns the scheduler under test.
func (t *Tester) Scheduler() *animation.Scheduler { return t.scheduler }

// Stepper returns the clock and frame source.
func (t *Tester) Stepper() *animation.Stepper { return t.stepper }

// Frame returns the number of frames run so far.
func (t *Tester) Frame() int { return t.frame }

// Elapsed returns the time since the tester was created.
func (t *Tester) Elapsed() time.Duration {
	return t.stepper.Now().Sub(t.epoch)
}

// NewRecorder returns a recorder whose writes are stamped with this
// tester's frame and time. Recorders created here are part of snapshots.
func (t *Tester) NewRecorder(name string) *Recorder {
	r := NewRecorder(name)
	r.tester = t
	t.recorders = append(t.recorders, r)
	return r
}

// Animate compiles p on the scheduler.
func (t *Tester) Animate(p animation.Params) (*animation.Element, error) {
	return t.scheduler.Animate(p)
}

// Dispatch queues fn to run before the next frame.
func (t *Tester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// Pump advances time by d and runs one frame, after draining the dispatch
// queue.
func (t *Tester) Pump(d time.Duration) {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	t.stepper.Advance(d)
}

// PumpFrames runs n frames of duration d each.
func (t *Tester) PumpFrames(n int, d time.Duration) {
	for i := 0; i < n; i++ {
		t.Pump(d)
	}
}

// PumpAndSettle runs frames until no animation is registered or the timeout
// is reached. Each frame advances the clock by DefaultFrameDuration.
// Returns ErrSettleTimeout if the scheduler does not settle within timeout.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	t.Pump(0)
	for elapsed < timeout {
		if !t.needsWork() {
			return nil
		}
		t.Pump(DefaultFrameDuration)
		elapsed += DefaultFrameDuration
	}
	if t.needsWork() {
		return ErrSettleTimeout
	}
	return nil
}

func (t *Tester) needsWork() bool {
	return t.scheduler.Len() > 0 || len(t.dispatches) > 0
}
