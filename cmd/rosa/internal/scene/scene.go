// Package scene loads rosa scene files: a YAML list of animations to play
// against an HTML page, with their timing.
package scene

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/rosa/pkg/animation"
	rerrors "github.com/go-drift/rosa/pkg/errors"
)

// SchemaVersion is the scene format version written by this tool. Scene
// files must share its major version.
const SchemaVersion = "v1.0.0"

// DefaultFPS is the playback rate when neither the scene, ROSA_FPS nor
// --fps set one.
const DefaultFPS = 60

// MaxFPS bounds the playback rate.
const MaxFPS = 240

// Scene is the content of a scene file.
type Scene struct {
	Version    string      `yaml:"version,omitempty"`
	FPS        int         `yaml:"fps,omitempty"`
	Length     float64     `yaml:"length,omitempty"`
	Pauses     []Pause     `yaml:"pauses,omitempty"`
	Animations []Animation `yaml:"animations"`
}

// Pause hides the page at At seconds for For seconds. Animations must
// continue where they stopped.
type Pause struct {
	At  float64 `yaml:"at"`
	For float64 `yaml:"for"`
}

// Animation is one animation cue. Times are in seconds.
type Animation struct {
	// At is the scene time at which the animation is compiled.
	At     float64 `yaml:"at,omitempty"`
	Target string  `yaml:"target"`
	// Split replaces the text of each target by letter or word spans and
	// animates the spans instead.
	Split   string   `yaml:"split,omitempty"`
	Stagger *Stagger `yaml:"stagger,omitempty"`
	// Duration is nil when the file leaves it out; 0 is kept.
	Duration  *float64        `yaml:"duration,omitempty"`
	Delay     float64         `yaml:"delay,omitempty"`
	Ease      string          `yaml:"ease,omitempty"`
	Direction string          `yaml:"direction,omitempty"`
	Opacity   bool            `yaml:"opacity,omitempty"`
	Props     map[string]Prop `yaml:"props"`
}

// Stagger spreads the start of an animation over all matched targets.
type Stagger struct {
	Pattern string  `yaml:"pattern,omitempty"`
	Step    float64 `yaml:"step"`
}

// Prop is a from/to pair, written either as a sequence [from, to] or as a
// mapping. A mapping always gets its own clock; the timing fields it leaves
// out are inherited from the animation.
type Prop struct {
	From      any      `yaml:"from"`
	To        any      `yaml:"to"`
	Duration  *float64 `yaml:"duration,omitempty"`
	Delay     *float64 `yaml:"delay,omitempty"`
	Ease      string   `yaml:"ease,omitempty"`
	Direction string   `yaml:"direction,omitempty"`

	mapping bool
}

// UnmarshalYAML accepts both prop forms.
func (p *Prop) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var pair []any
		if err := node.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: prop needs [from, to], got %d value(s)", node.Line, len(pair))
		}
		*p = Prop{From: pair[0], To: pair[1]}
		return nil
	case yaml.MappingNode:
		type plain Prop
		var v plain
		if err := node.Decode(&v); err != nil {
			return err
		}
		*p = Prop(v)
		p.mapping = true
		return nil
	}
	return fmt.Errorf("line %d: prop must be [from, to] or a mapping", node.Line)
}

// Timed reports whether the prop was written as a mapping and so runs on
// its own clock.
func (p Prop) Timed() bool {
	return p.mapping
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError(fmt.Errorf("failed to read scene: %w", err))
	}
	return Parse(data)
}

// Parse decodes and validates a scene.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, configError(fmt.Errorf("failed to parse scene: %w", err))
	}
	if err := s.normalize(); err != nil {
		return nil, configError(err)
	}
	return &s, nil
}

func configError(err error) error {
	return &rerrors.Error{Op: "scene.Load", Kind: rerrors.KindConfig, Err: err}
}

// normalize trims strings, fills defaults and validates.
func (s *Scene) normalize() error {
	s.Version = strings.TrimSpace(s.Version)
	if s.Version == "" {
		s.Version = SchemaVersion
	}
	if !strings.HasPrefix(s.Version, "v") {
		s.Version = "v" + s.Version
	}
	if !semver.IsValid(s.Version) {
		return fmt.Errorf("invalid version %q", s.Version)
	}
	if semver.Major(s.Version) != semver.Major(SchemaVersion) {
		return fmt.Errorf("unsupported scene version %s (this tool reads %s.x)", s.Version, semver.Major(SchemaVersion))
	}

	if s.FPS == 0 {
		s.FPS = DefaultFPS
	}
	if err := validateFPS(s.FPS); err != nil {
		return err
	}
	if s.Length < 0 {
		return errors.New("length must not be negative")
	}
	for i, p := range s.Pauses {
		if p.At < 0 || p.For <= 0 {
			return fmt.Errorf("pauses[%d]: need at >= 0 and for > 0", i)
		}
	}
	if len(s.Animations) == 0 {
		return errors.New("scene has no animations")
	}
	for i := range s.Animations {
		if err := s.Animations[i].normalize(); err != nil {
			return fmt.Errorf("animations[%d]: %w", i, err)
		}
	}
	return nil
}

func validateFPS(fps int) error {
	if fps <= 0 || fps > MaxFPS {
		return fmt.Errorf("fps must be in 1..%d, got %d", MaxFPS, fps)
	}
	return nil
}

func (a *Animation) normalize() error {
	a.Target = strings.TrimSpace(a.Target)
	a.Ease = strings.TrimSpace(a.Ease)
	a.Direction = strings.TrimSpace(a.Direction)
	a.Split = strings.TrimSpace(a.Split)
	if a.Target == "" {
		return errors.New("target is required")
	}
	if a.At < 0 || negative(a.Duration) || a.Delay < 0 {
		return errors.New("at, duration and delay must not be negative")
	}
	if err := checkTiming(a.Ease, a.Direction); err != nil {
		return err
	}
	if a.Split != "" {
		if a.Split != "letter" && a.Split != "word" {
			return fmt.Errorf("split must be letter or word, got %q", a.Split)
		}
	}
	if a.Stagger != nil {
		if _, err := animation.ParsePattern(a.Stagger.Pattern); err != nil {
			return err
		}
		if a.Stagger.Step < 0 {
			return errors.New("stagger step must not be negative")
		}
	}
	if len(a.Props) == 0 {
		return errors.New("props are required")
	}
	for name, p := range a.Props {
		if p.From == nil || p.To == nil {
			return fmt.Errorf("props.%s: from and to are required", name)
		}
		if negative(p.Duration) || negative(p.Delay) {
			return fmt.Errorf("props.%s: duration and delay must not be negative", name)
		}
		if err := checkTiming(p.Ease, p.Direction); err != nil {
			return fmt.Errorf("props.%s: %w", name, err)
		}
	}
	return nil
}

func negative(v *float64) bool {
	return v != nil && *v < 0
}

func checkTiming(ease, direction string) error {
	if ease != "" {
		if _, ok := animation.LookupCurve(ease); !ok {
			return fmt.Errorf("unknown ease %q", ease)
		}
	}
	if _, err := animation.ParseDirection(direction); err != nil {
		return err
	}
	return nil
}
