package scene

import (
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/rosa/pkg/animation"
)

// FPSEnv overrides the scene's fps; --fps overrides it in turn.
const FPSEnv = "ROSA_FPS"

// Tail is the time played after the last animation when the scene has no
// explicit length.
const Tail = 500 * time.Millisecond

// Resolved is a scene with durations, enums and the effective frame rate.
type Resolved struct {
	Version string
	FPS     int
	// Length is the explicit length, or 0 when it depends on the targets.
	Length time.Duration
	Pauses []Window
	Cues   []Cue
}

// Window is a resolved pause.
type Window struct {
	At, For time.Duration
}

// Cue is a resolved animation. Params has no target; the player binds one
// per matched element.
type Cue struct {
	At       time.Duration
	Selector string
	Split    string
	Pattern  animation.Pattern
	Step     time.Duration
	Params   animation.Params
}

// Resolve converts s. fps, when positive, wins over ROSA_FPS and the file.
func (s *Scene) Resolve(fps int) (*Resolved, error) {
	effective := s.FPS
	if env := strings.TrimSpace(os.Getenv(FPSEnv)); env != "" {
		n, err := strconv.Atoi(env)
		if err != nil {
			return nil, configError(err)
		}
		effective = n
	}
	if fps > 0 {
		effective = fps
	}
	if err := validateFPS(effective); err != nil {
		return nil, configError(err)
	}

	r := &Resolved{
		Version: s.Version,
		FPS:     effective,
		Length:  seconds(s.Length),
	}
	for _, p := range s.Pauses {
		r.Pauses = append(r.Pauses, Window{At: seconds(p.At), For: seconds(p.For)})
	}
	sort.SliceStable(r.Pauses, func(i, j int) bool { return r.Pauses[i].At < r.Pauses[j].At })

	for _, a := range s.Animations {
		cue := Cue{
			At:       seconds(a.At),
			Selector: a.Target,
			Split:    a.Split,
		}
		if a.Stagger != nil {
			cue.Pattern, _ = animation.ParsePattern(a.Stagger.Pattern)
			cue.Step = seconds(a.Stagger.Step)
		}
		direction, _ := animation.ParseDirection(a.Direction)
		cue.Params = animation.Params{
			Duration:  optional(a.Duration),
			Delay:     seconds(a.Delay),
			Ease:      a.Ease,
			Direction: direction,
			Opacity:   a.Opacity,
			Props:     make(map[string]animation.Prop, len(a.Props)),
		}
		for name, p := range a.Props {
			prop := animation.FromTo(p.From, p.To)
			if p.Timed() {
				d, _ := animation.ParseDirection(p.Direction)
				prop = prop.With(animation.Timing{
					Duration:  optional(p.Duration),
					Delay:     optional(p.Delay),
					Ease:      p.Ease,
					Direction: d,
				})
			}
			cue.Params.Props[name] = prop
		}
		r.Cues = append(r.Cues, cue)
	}
	sort.SliceStable(r.Cues, func(i, j int) bool { return r.Cues[i].At < r.Cues[j].At })
	return r, nil
}

// FrameInterval returns the time between two frames.
func (r *Resolved) FrameInterval() time.Duration {
	return time.Second / time.Duration(r.FPS)
}

// End returns the scene time at which the cue's last property settles when
// it animates n targets.
func (c Cue) End(n int) time.Duration {
	duration := animation.DefaultDuration
	if c.Params.Duration != nil {
		duration = *c.Params.Duration
	}
	longest := c.Params.Delay + duration
	for _, p := range c.Params.Props {
		if p.Timing == nil {
			continue
		}
		d, delay := duration, c.Params.Delay
		if p.Timing.Duration != nil {
			d = *p.Timing.Duration
		}
		if p.Timing.Delay != nil {
			delay = *p.Timing.Delay
		}
		longest = max(longest, delay+d)
	}
	var spread time.Duration
	if n > 1 {
		for _, d := range animation.StaggerDelays(n, c.Step, c.Pattern, nil) {
			spread = max(spread, d)
		}
		if c.Pattern == animation.StaggerRandom {
			spread = time.Duration(n) * c.Step
		}
	}
	return c.At + spread + longest
}

// optional converts a field the file may leave out.
func optional(s *float64) *time.Duration {
	if s == nil {
		return nil
	}
	return animation.Dur(seconds(*s))
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
