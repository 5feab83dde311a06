package animation

// Timeline chains animations on one scheduler:
//
//	err := s.Timeline().
//		Add(animation.Params{Target: logo, Props: ...}).
//		Add(animation.Params{Target: menu, Props: ...}).
//		Err()
//
// The first failing Add is recorded and later Adds are skipped.
type Timeline struct {
	s        *Scheduler
	elements []*Element
	err      error
}

// Timeline returns an empty chain on s.
func (s *Scheduler) Timeline() *Timeline {
	return &Timeline{s: s}
}

// Add compiles and registers p.
func (t *Timeline) Add(p Params) *Timeline {
	if t.err != nil {
		return t
	}
	e, err := t.s.Animate(p)
	if err != nil {
		t.err = err
		return t
	}
	t.elements = append(t.elements, e)
	return t
}

// Elements returns the elements registered so far.
func (t *Timeline) Elements() []*Element {
	return t.elements
}

// Err returns the first error.
func (t *Timeline) Err() error {
	return t.err
}
