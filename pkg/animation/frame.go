package animation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-drift/rosa/pkg/errors"
)

// DefaultFrameInterval is the frame period of a FrameLoop created without
// an explicit interval (about 60 frames per second).
const DefaultFrameInterval = time.Second / 60

// FrameID identifies a requested frame callback.
type FrameID uint64

// FrameSource is the display's frame timing primitive. A requested callback
// runs once, on the next frame, with that frame's timestamp; a callback that
// wants to keep running requests again from inside itself.
type FrameSource interface {
	RequestFrame(callback func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

// frameQueue holds callbacks requested for the next frame in request order.
type frameQueue struct {
	nextID    FrameID
	ids       []FrameID
	callbacks map[FrameID]func(time.Time)
}

func (q *frameQueue) request(callback func(time.Time)) FrameID {
	if q.callbacks == nil {
		q.callbacks = make(map[FrameID]func(time.Time))
	}
	q.nextID++
	q.ids = append(q.ids, q.nextID)
	q.callbacks[q.nextID] = callback
	return q.nextID
}

func (q *frameQueue) cancel(id FrameID) {
	delete(q.callbacks, id)
}

// drain removes and returns every live callback. Callbacks requested while
// the drained ones run belong to the following frame.
func (q *frameQueue) drain() []func(time.Time) {
	if len(q.ids) == 0 {
		return nil
	}
	out := make([]func(time.Time), 0, len(q.ids))
	for _, id := range q.ids {
		if cb, ok := q.callbacks[id]; ok {
			out = append(out, cb)
			delete(q.callbacks, id)
		}
	}
	q.ids = q.ids[:0]
	return out
}

func (q *frameQueue) len() int {
	return len(q.callbacks)
}

// Stepper is a manual clock and frame source. Time only moves when the
// owner says so, which makes it the driver for tests and offline rendering.
type Stepper struct {
	now   time.Time
	queue frameQueue
}

// NewStepper returns a Stepper whose clock reads epoch. A zero epoch
// selects a fixed date.
func NewStepper(epoch time.Time) *Stepper {
	if epoch.IsZero() {
		epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &Stepper{now: epoch}
}

// Now returns the stepper's current time.
func (s *Stepper) Now() time.Time { return s.now }

// RequestFrame queues callback for the next Frame or Advance.
func (s *Stepper) RequestFrame(callback func(time.Time)) FrameID {
	return s.queue.request(callback)
}

// CancelFrame drops a queued callback.
func (s *Stepper) CancelFrame(id FrameID) {
	s.queue.cancel(id)
}

// Advance moves the clock forward by d and runs one frame.
func (s *Stepper) Advance(d time.Duration) {
	s.now = s.now.Add(d)
	s.Frame()
}

// Skip moves the clock forward by d without running a frame, as when the
// host stops delivering frames.
func (s *Stepper) Skip(d time.Duration) {
	s.now = s.now.Add(d)
}

// Frame runs the callbacks queued so far at the current time.
func (s *Stepper) Frame() {
	for _, cb := range s.queue.drain() {
		cb(s.now)
	}
}

// Pending returns the number of queued callbacks.
func (s *Stepper) Pending() int {
	return s.queue.len()
}

// FrameLoop is a real-time frame source. Run ticks on the calling goroutine;
// every frame callback and every dispatched function executes there, so the
// animation state it drives needs no locking.
type FrameLoop struct {
	interval time.Duration
	clock    Clock

	mu         sync.Mutex
	queue      frameQueue
	dispatches []func()
}

// NewFrameLoop creates a loop ticking every interval (DefaultFrameInterval
// if interval is not positive). A nil clock selects SystemClock.
func NewFrameLoop(interval time.Duration, clock Clock) *FrameLoop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &FrameLoop{interval: interval, clock: clock}
}

// RequestFrame queues callback for the next tick.
func (l *FrameLoop) RequestFrame(callback func(time.Time)) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.queue.request(callback)
}

// CancelFrame drops a queued callback.
func (l *FrameLoop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.queue.cancel(id)
}

// Dispatch schedules fn to run on the loop goroutine before the next
// frame's callbacks. Safe to call from any goroutine.
func (l *FrameLoop) Dispatch(fn func()) {
	l.mu.Lock()
	l.dispatches = append(l.dispatches, fn)
	l.mu.Unlock()
}

// Run ticks until ctx is done or a frame panics. A panic is reported
// through errors.ReportPanic and returned as a KindPanic error.
func (l *FrameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := l.frame(); err != nil {
				return err
			}
		}
	}
}

func (l *FrameLoop) frame() (err error) {
	defer errors.RecoverWithCallback("animation.FrameLoop", func(r any) {
		err = &errors.Error{Op: "animation.FrameLoop", Kind: errors.KindPanic, Err: fmt.Errorf("%v", r)}
	})

	l.mu.Lock()
	dispatches := l.dispatches
	l.dispatches = nil
	l.mu.Unlock()
	for _, fn := range dispatches {
		fn()
	}

	l.mu.Lock()
	callbacks := l.queue.drain()
	l.mu.Unlock()
	now := l.clock.Now()
	for _, cb := range callbacks {
		cb(now)
	}
	return nil
}
