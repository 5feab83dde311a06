package animation

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a Scheduler.
//
//	         Start()            Pause()
//	Stopped ────────► Running ─────────► Paused
//	                     ▲                  │
//	                     └──────────────────┘
//	                           Resume()
//
// Close() moves any state to Closed.
type State int

const (
	// StateStopped means Start has not been called.
	StateStopped State = iota
	// StateRunning means a frame is requested at all times.
	StateRunning
	// StatePaused means frames are cancelled and timeline time is frozen.
	StatePaused
	// StateClosed means the scheduler has been torn down.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configures a Scheduler.
type Options struct {
	// Clock is read on Start, Pause, Resume and when animations are
	// compiled. Defaults to SystemClock.
	Clock Clock
	// Frames delivers frames. Defaults to a FrameLoop on Clock, which the
	// caller must Run (see Scheduler.Frames).
	Frames FrameSource
}

type frameCallback struct {
	id int
	fn func(time.Time)
}

// Scheduler is the registry of running animations and the frame loop that
// drives them. Each frame it updates then draws every registered element and
// drops the finished ones. At most one animation is registered per target.
//
// A Scheduler is not safe for concurrent use; all calls must come from the
// goroutine that delivers its frames.
type Scheduler struct {
	clock  Clock
	frames FrameSource
	state  State

	frameID    FrameID
	lastUpdate time.Time
	delta      time.Duration
	pauseStart time.Time
	paused     time.Duration

	entries map[Styler]*Element
	order   []Styler

	callbacks      []frameCallback
	nextCallbackID int
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(opts Options) *Scheduler {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	frames := opts.Frames
	if frames == nil {
		frames = NewFrameLoop(DefaultFrameInterval, clock)
	}
	return &Scheduler{
		clock:   clock,
		frames:  frames,
		entries: make(map[Styler]*Element),
	}
}

// Start records the current time and requests the first frame. It has no
// effect unless the scheduler is stopped.
func (s *Scheduler) Start() {
	if s.state != StateStopped {
		return
	}
	s.state = StateRunning
	s.lastUpdate = s.clock.Now()
	s.frameID = s.frames.RequestFrame(s.frame)
	tracer().Debugf("animation: scheduler started")
}

// Pause freezes every animation: the pending frame is cancelled and the
// timeline stops. It has no effect unless the scheduler is running.
func (s *Scheduler) Pause() {
	if s.state != StateRunning {
		return
	}
	s.state = StatePaused
	s.pauseStart = s.clock.Now()
	s.frames.CancelFrame(s.frameID)
	tracer().Debugf("animation: scheduler paused")
}

// Resume restarts frames. The time spent paused is added to the paused
// total, which is subtracted from every elapsed-time computation, so
// animations continue exactly where they stopped. It has no effect unless
// the scheduler is paused.
func (s *Scheduler) Resume() {
	if s.state != StatePaused {
		return
	}
	now := s.clock.Now()
	s.paused += now.Sub(s.pauseStart)
	s.lastUpdate = now
	s.state = StateRunning
	s.frameID = s.frames.RequestFrame(s.frame)
	tracer().Debugf("animation: scheduler resumed, paused total %v", s.paused)
}

// SetVisible pauses when the host becomes hidden and resumes when it becomes
// visible again, so a hidden page does not turn into a jump in progress.
func (s *Scheduler) SetVisible(visible bool) {
	if visible {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Close cancels the pending frame and drops every animation and frame
// callback. A closed scheduler cannot be restarted.
func (s *Scheduler) Close() {
	if s.state == StateClosed {
		return
	}
	if s.state == StateRunning {
		s.frames.CancelFrame(s.frameID)
	}
	s.state = StateClosed
	s.entries = make(map[Styler]*Element)
	s.order = nil
	s.callbacks = nil
}

// Enqueue registers e under its target, replacing any animation already
// registered for that target.
func (s *Scheduler) Enqueue(e *Element) {
	target := e.Target()
	if _, ok := s.entries[target]; ok {
		s.remove(target)
	}
	s.entries[target] = e
	s.order = append(s.order, target)
}

// Lookup returns the animation registered for target.
func (s *Scheduler) Lookup(target Styler) (*Element, bool) {
	e, ok := s.entries[target]
	return e, ok
}

// Len returns the number of registered animations.
func (s *Scheduler) Len() int { return len(s.entries) }

// Entries returns the registered animations in registration order.
func (s *Scheduler) Entries() []*Element {
	out := make([]*Element, 0, len(s.order))
	for _, target := range s.order {
		out = append(out, s.entries[target])
	}
	return out
}

// OnFrame registers fn to run at the start of every frame with the frame
// timestamp. Returns an unsubscribe function.
func (s *Scheduler) OnFrame(fn func(now time.Time)) func() {
	id := s.nextCallbackID
	s.nextCallbackID++
	s.callbacks = append(s.callbacks, frameCallback{id: id, fn: fn})
	return func() {
		for i, cb := range s.callbacks {
			if cb.id == id {
				s.callbacks = append(s.callbacks[:i:i], s.callbacks[i+1:]...)
				return
			}
		}
	}
}

// State returns the lifecycle state.
func (s *Scheduler) State() State { return s.state }

// Delta returns the time between the last two frames.
func (s *Scheduler) Delta() time.Duration { return s.delta }

// PausedTotal returns the accumulated paused time.
func (s *Scheduler) PausedTotal() time.Duration { return s.paused }

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() Clock { return s.clock }

// Frames returns the scheduler's frame source.
func (s *Scheduler) Frames() FrameSource { return s.frames }

// TimelineNow returns the current time with paused time removed. While
// paused the timeline stays at the moment the pause began.
func (s *Scheduler) TimelineNow() time.Time {
	now := s.clock.Now()
	if s.state == StatePaused {
		now = s.pauseStart
	}
	return now.Add(-s.paused)
}

func (s *Scheduler) frame(now time.Time) {
	s.frameID = s.frames.RequestFrame(s.frame)

	callbacks := make([]frameCallback, len(s.callbacks))
	copy(callbacks, s.callbacks)
	for _, cb := range callbacks {
		cb.fn(now)
	}

	s.delta = now.Sub(s.lastUpdate)
	s.lastUpdate = now

	if len(s.entries) == 0 {
		return
	}

	ts := now.Add(-s.paused)
	for _, e := range s.Entries() {
		e.Update(ts)
		e.Draw()
		if e.Finished() {
			// A callback may already have registered a new animation for
			// this target; only drop the entry if it is still e.
			if current, ok := s.entries[e.Target()]; ok && current == e {
				s.remove(e.Target())
			}
		}
	}
}

func (s *Scheduler) remove(target Styler) {
	delete(s.entries, target)
	for i, t := range s.order {
		if t == target {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
