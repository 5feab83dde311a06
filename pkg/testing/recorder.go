package testing

import "time"

// StyleWrite is one style write seen by a Recorder.
type StyleWrite struct {
	// Frame is the tester frame number, starting at 1.
	Frame    int
	At       time.Duration
	Property string
	Value    string
}

// Recorder is an animation target that records every style write.
type Recorder struct {
	name   string
	tester *Tester
	writes []StyleWrite
	last   map[string]string
}

// NewRecorder returns a recorder that is not attached to a tester; its
// writes carry frame 0 and time 0.
func NewRecorder(name string) *Recorder {
	return &Recorder{name: name, last: make(map[string]string)}
}

// SetStyle implements animation.Styler.
func (r *Recorder) SetStyle(property, value string) {
	w := StyleWrite{Property: property, Value: value}
	if r.tester != nil {
		w.Frame = r.tester.frame
		w.At = r.tester.Elapsed()
	}
	r.writes = append(r.writes, w)
	r.last[property] = value
}

// Name returns the recorder's name.
func (r *Recorder) Name() string { return r.name }

// Last returns the most recent value written to property.
func (r *Recorder) Last(property string) string {
	return r.last[property]
}

// Writes returns all writes in order.
func (r *Recorder) Writes() []StyleWrite {
	out := make([]StyleWrite, len(r.writes))
	copy(out, r.writes)
	return out
}

// Values returns the values written to property in order.
func (r *Recorder) Values(property string) []string {
	var out []string
	for _, w := range r.writes {
		if w.Property == property {
			out = append(out, w.Value)
		}
	}
	return out
}

// Count returns the number of writes.
func (r *Recorder) Count() int {
	return len(r.writes)
}

// Reset forgets all writes.
func (r *Recorder) Reset() {
	r.writes = nil
	r.last = make(map[string]string)
}
