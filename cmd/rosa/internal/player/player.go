// Package player plays a resolved scene against a document offline: time
// is stepped frame by frame, so the output does not depend on the machine.
package player

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/go-drift/rosa/cmd/rosa/internal/scene"
	"github.com/go-drift/rosa/pkg/animation"
	"github.com/go-drift/rosa/pkg/dom"
	"github.com/go-drift/rosa/pkg/errors"
)

// MaxLength bounds playback of scenes without an explicit length.
const MaxLength = 10 * time.Minute

// Options configures a Player.
type Options struct {
	// Trace receives one line per style write when set.
	Trace io.Writer
	// Record keeps a copy of every target's styles after each frame.
	Record bool
	// Seed seeds the random stagger pattern.
	Seed uint64
}

// Target is an animated element and the styles last written to it.
type Target struct {
	Label   string
	Element *dom.Element
	styles  map[string]string
	player  *Player
}

// SetStyle forwards to the element and records the write.
func (t *Target) SetStyle(property, value string) {
	t.Element.SetStyle(property, value)
	t.styles[property] = value
	t.player.writes++
	if t.player.opts.Trace != nil {
		fmt.Fprintf(t.player.opts.Trace, "frame %4d  %7.3fs  %-16s %s: %s\n",
			t.player.frame, t.player.now.Seconds(), t.Label, property, value)
	}
}

// Style returns the last value written to property.
func (t *Target) Style(property string) string {
	return t.styles[property]
}

// Frame is the recorded state of every target after one frame.
type Frame struct {
	Index  int
	At     time.Duration
	Styles []TargetStyle
}

// TargetStyle is one target's styles in a Frame.
type TargetStyle struct {
	Label     string
	Transform string
	Opacity   string
}

// Stats summarizes a playback.
type Stats struct {
	Frames   int
	Length   time.Duration
	Writes   int
	Cues     int
	Targets  int
	Finished int
}

// Player plays one scene once.
type Player struct {
	doc       *dom.Document
	scene     *scene.Resolved
	opts      Options
	stepper   *animation.Stepper
	scheduler *animation.Scheduler
	rng       *rand.Rand

	targets  []*Target
	byNode   map[*dom.Element]*Target
	frames   []Frame
	frame    int
	now      time.Duration
	writes   int
	finished int
}

// New prepares a playback of r against doc.
func New(doc *dom.Document, r *scene.Resolved, opts Options) *Player {
	stepper := animation.NewStepper(time.Time{})
	return &Player{
		doc:       doc,
		scene:     r,
		opts:      opts,
		stepper:   stepper,
		scheduler: animation.NewScheduler(animation.Options{Clock: stepper, Frames: stepper}),
		rng:       rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
		byNode:    make(map[*dom.Element]*Target),
	}
}

// Scheduler returns the scheduler driving the playback.
func (p *Player) Scheduler() *animation.Scheduler { return p.scheduler }

// Targets returns every animated target in first-use order.
func (p *Player) Targets() []*Target { return p.targets }

// Frames returns the recorded frames (Options.Record).
func (p *Player) Frames() []Frame { return p.frames }

// Run plays the scene to its end. Without an explicit length the scene
// ends Tail after the last animation settles.
func (p *Player) Run() (Stats, error) {
	interval := p.scene.FrameInterval()
	cues := p.scene.Cues
	pauses := p.scene.Pauses
	nextCue, nextPause := 0, 0
	settledAt := time.Duration(-1)

	p.scheduler.Start()
	defer p.scheduler.Close()
	for {
		for nextCue < len(cues) && cues[nextCue].At <= p.now {
			if err := p.bind(cues[nextCue]); err != nil {
				return p.stats(), err
			}
			nextCue++
		}
		for nextPause < len(pauses) && pauses[nextPause].At <= p.now {
			p.hide(pauses[nextPause].For)
			nextPause++
		}

		p.frame++
		p.stepper.Frame()
		p.record()

		if p.scene.Length > 0 {
			if p.now >= p.scene.Length {
				break
			}
		} else {
			idle := nextCue == len(cues) && p.scheduler.Len() == 0
			if idle && settledAt < 0 {
				settledAt = p.now
			}
			if !idle {
				settledAt = -1
			}
			if settledAt >= 0 && p.now >= settledAt+scene.Tail {
				break
			}
			if p.now >= MaxLength {
				return p.stats(), &errors.Error{
					Op:   "player.Run",
					Kind: errors.KindRender,
					Err:  fmt.Errorf("scene did not settle within %v", MaxLength),
				}
			}
		}
		p.stepper.Skip(interval)
		p.now += interval
	}
	return p.stats(), nil
}

// hide simulates the page being hidden for d: no frames are delivered and
// the scheduler is paused meanwhile.
func (p *Player) hide(d time.Duration) {
	p.scheduler.SetVisible(false)
	p.stepper.Skip(d)
	p.now += d
	p.scheduler.SetVisible(true)
	if p.opts.Trace != nil {
		fmt.Fprintf(p.opts.Trace, "hidden for %v\n", d)
	}
}

// bind resolves the cue's selector and compiles the animation for every
// matched element, or for every non-blank span when the cue splits text.
func (p *Player) bind(cue scene.Cue) error {
	elements, err := p.doc.QueryAll(cue.Selector)
	if err != nil {
		return err
	}
	if cue.Split != "" {
		mode, err := dom.ParseSplitMode(cue.Split)
		if err != nil {
			return err
		}
		var spans []*dom.Element
		for _, el := range elements {
			for _, span := range el.SplitText(mode) {
				// Whitespace spans stay in the text but take no stagger slot.
				if span.NormalizedText() != "" {
					spans = append(spans, span)
				}
			}
		}
		elements = spans
	}
	targets := make([]animation.Styler, len(elements))
	for i, el := range elements {
		label := cue.Selector
		if len(elements) > 1 {
			label += "[" + strconv.Itoa(i) + "]"
		}
		targets[i] = p.target(el, label)
	}
	params := cue.Params
	params.OnFinish = func() { p.finished++ }
	if _, err := p.scheduler.Stagger(targets, params, cue.Pattern, cue.Step, p.rng); err != nil {
		return err
	}
	return nil
}

func (p *Player) target(el *dom.Element, label string) *Target {
	if t, ok := p.byNode[el]; ok {
		return t
	}
	t := &Target{Label: label, Element: el, styles: make(map[string]string), player: p}
	p.byNode[el] = t
	p.targets = append(p.targets, t)
	return t
}

func (p *Player) record() {
	if !p.opts.Record {
		return
	}
	f := Frame{Index: p.frame, At: p.now, Styles: make([]TargetStyle, len(p.targets))}
	for i, t := range p.targets {
		f.Styles[i] = TargetStyle{Label: t.Label, Transform: t.styles["transform"], Opacity: t.styles["opacity"]}
	}
	p.frames = append(p.frames, f)
}

func (p *Player) stats() Stats {
	return Stats{
		Frames:   p.frame,
		Length:   p.now,
		Writes:   p.writes,
		Cues:     len(p.scene.Cues),
		Targets:  len(p.targets),
		Finished: p.finished,
	}
}
