package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/xlab/treeprint"

	"github.com/go-drift/rosa/cmd/rosa/internal/scene"
	"github.com/go-drift/rosa/pkg/animation"
	"github.com/go-drift/rosa/pkg/dom"
)

func init() {
	RegisterCommand(&Command{
		Name:  "inspect",
		Short: "Print a scene as a tree",
		Long: `Load and validate a scene file and print its pauses and animations as
a tree. With a page, selectors are resolved and every animation shows
how many elements it targets and when it ends.

Usage:
  rosa inspect intro.yaml
  rosa inspect intro.yaml page.html`,
		Usage: "rosa inspect <scene.yaml> [page.html]",
		Run:   runInspect,
	})
}

func runInspect(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("a scene file is required\n\nUsage: rosa inspect <scene.yaml> [page.html]")
	}
	s, err := scene.Load(args[0])
	if err != nil {
		return err
	}
	r, err := s.Resolve(0)
	if err != nil {
		return err
	}

	count := func(scene.Cue) (int, error) { return 1, nil }
	if len(args) == 2 {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		doc, err := dom.Parse(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[1], err)
		}
		count = func(c scene.Cue) (int, error) {
			elements, err := doc.QueryAll(c.Selector)
			if err != nil {
				return 0, err
			}
			n := len(elements)
			if c.Split != "" {
				mode, err := dom.ParseSplitMode(c.Split)
				if err != nil {
					return 0, err
				}
				n = 0
				for _, el := range elements {
					n += splitCount(el.NormalizedText(), mode)
				}
			}
			return n, nil
		}
	}

	tree, err := sceneTree(r, count)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, tree)
	return nil
}

// splitCount returns how many non-blank spans SplitText creates for text.
func splitCount(text string, mode dom.SplitMode) int {
	if mode == dom.SplitLetters {
		return len([]rune(strings.Join(strings.Fields(text), "")))
	}
	return len(strings.Fields(text))
}

// sceneTree renders r. count returns the number of targets of a cue.
func sceneTree(r *scene.Resolved, count func(scene.Cue) (int, error)) (string, error) {
	length := "auto"
	if r.Length > 0 {
		length = r.Length.String()
	}
	tree := treeprint.New()
	root := tree.AddBranch(fmt.Sprintf("scene %s (%d fps, length %s)", r.Version, r.FPS, length))

	if len(r.Pauses) > 0 {
		pauses := root.AddBranch("pauses")
		for _, p := range r.Pauses {
			pauses.AddNode(fmt.Sprintf("at %v for %v", p.At, p.For))
		}
	}

	animations := root.AddBranch("animations")
	var end time.Duration
	for _, c := range r.Cues {
		n, err := count(c)
		if err != nil {
			return "", err
		}
		cueEnd := c.End(n)
		end = max(end, cueEnd)

		label := fmt.Sprintf("at %v %s", c.At, c.Selector)
		if c.Split != "" {
			label += " (split " + c.Split + ")"
		}
		branch := animations.AddBranch(fmt.Sprintf("%s, %d target(s), ends %v", label, n, cueEnd))
		branch.AddNode(timingLabel(c.Params, nil))
		if c.Step > 0 {
			branch.AddNode(fmt.Sprintf("stagger %s every %v", c.Pattern, c.Step))
		}
		if c.Params.Opacity {
			branch.AddNode("writes opacity")
		}

		props := branch.AddBranch("props")
		names := make([]string, 0, len(c.Params.Props))
		for name := range c.Params.Props {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			p := c.Params.Props[name]
			line := fmt.Sprintf("%s: %s -> %s", name, valueLabel(p.From), valueLabel(p.To))
			if _, ok := animation.ParseProperty(name); !ok {
				line += " (ignored)"
			}
			if p.Timing == nil {
				props.AddNode(line)
				continue
			}
			props.AddBranch(line).AddNode(timingLabel(c.Params, p.Timing))
		}
	}
	if r.Length == 0 {
		root.AddNode(fmt.Sprintf("ends %v", end+scene.Tail))
	}
	return tree.String(), nil
}

// timingLabel describes the timing of params, or of a property with its own
// timing o, which inherits what it leaves out from params.
func timingLabel(params animation.Params, o *animation.Timing) string {
	duration := animation.DefaultDuration
	if params.Duration != nil {
		duration = *params.Duration
	}
	delay, ease, direction := params.Delay, params.Ease, params.Direction
	if o != nil {
		if o.Duration != nil {
			duration = *o.Duration
		}
		if o.Delay != nil {
			delay = *o.Delay
		}
		if o.Ease != "" {
			ease = o.Ease
		}
		if o.Direction != animation.DirectionDefault {
			direction = o.Direction
		}
	}
	if ease == "" {
		ease = animation.DefaultEase
	}
	if direction == animation.DirectionDefault {
		direction = animation.Normal
	}
	label := fmt.Sprintf("%v %s %s", duration, ease, direction)
	if delay > 0 {
		label += fmt.Sprintf(" after %v", delay)
	}
	return label
}

func valueLabel(raw any) string {
	v, err := animation.ParseValue(raw)
	if err != nil {
		return fmt.Sprintf("%v", raw)
	}
	return v.String()
}
