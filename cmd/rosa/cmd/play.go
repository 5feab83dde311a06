package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-drift/rosa/cmd/rosa/internal/player"
	"github.com/go-drift/rosa/cmd/rosa/internal/scene"
	"github.com/go-drift/rosa/pkg/dom"
)

func init() {
	RegisterCommand(&Command{
		Name:  "play",
		Short: "Play a scene against a page",
		Long: `Play a scene file against an HTML page, frame by frame, and write the
page with its final inline styles.

Flags:
  --fps N       Frame rate (default: scene fps, ROSA_FPS, then 60)
  --out FILE    Write the page to FILE instead of stdout
  --trace       Print every style write and a summary to stderr
  --seed N      Seed for the random stagger pattern

Usage:
  rosa play page.html intro.yaml
  rosa play page.html intro.yaml --fps 30 --trace --out final.html`,
		Usage: "rosa play <page.html> <scene.yaml> [--fps N] [--out FILE] [--trace] [--seed N]",
		Run:   runPlay,
	})
}

// playOptions holds the flags shared by play and preview.
type playOptions struct {
	page   string
	scene  string
	fps    int
	out    string
	trace  bool
	seed   uint64
	frames int
}

func parsePlayArgs(name string, args []string) (playOptions, error) {
	var opts playOptions
	var positional []string
	value := func(i int, flag string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		return args[i+1], nil
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		flag, inline, hasInline := strings.Cut(arg, "=")
		switch flag {
		case "--fps", "--out", "--seed", "--frames":
			v := inline
			if !hasInline {
				var err error
				if v, err = value(i, flag); err != nil {
					return opts, err
				}
				i++
			}
			if err := opts.set(flag, v); err != nil {
				return opts, err
			}
		case "--trace":
			opts.trace = true
		default:
			if strings.HasPrefix(arg, "--") {
				return opts, fmt.Errorf("unknown flag %s", arg)
			}
			positional = append(positional, arg)
		}
	}
	if len(positional) != 2 {
		return opts, fmt.Errorf("a page and a scene file are required\n\nUsage: rosa %s <page.html> <scene.yaml>", name)
	}
	opts.page, opts.scene = positional[0], positional[1]
	return opts, nil
}

func (o *playOptions) set(flag, v string) error {
	switch flag {
	case "--out":
		o.out = v
		return nil
	case "--seed":
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid --seed %q", v)
		}
		o.seed = n
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid %s %q: want a positive integer", flag, v)
	}
	if flag == "--fps" {
		o.fps = n
	} else {
		o.frames = n
	}
	return nil
}

// load reads the page and the scene and prepares a player.
func (o playOptions) load(record bool) (*dom.Document, *player.Player, error) {
	f, err := os.Open(o.page)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	doc, err := dom.Parse(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", o.page, err)
	}

	s, err := scene.Load(o.scene)
	if err != nil {
		return nil, nil, err
	}
	r, err := s.Resolve(o.fps)
	if err != nil {
		return nil, nil, err
	}

	var trace io.Writer
	if o.trace {
		trace = stderr
	}
	return doc, player.New(doc, r, player.Options{Trace: trace, Record: record, Seed: o.seed}), nil
}

func runPlay(args []string) error {
	opts, err := parsePlayArgs("play", args)
	if err != nil {
		return err
	}
	doc, p, err := opts.load(false)
	if err != nil {
		return err
	}
	stats, err := p.Run()
	if err != nil {
		return err
	}
	if opts.trace {
		fmt.Fprint(stderr, p.Summary())
		printStats(stderr, stats)
	}

	if opts.out == "" {
		return doc.Render(stdout)
	}
	out, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := doc.Render(out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	printStats(stdout, stats)
	fmt.Fprintf(stdout, "Wrote %s\n", opts.out)
	return nil
}

func printStats(w io.Writer, s player.Stats) {
	fmt.Fprintf(w, "%d frame(s) over %v, %d write(s), %d/%d target(s) finished\n",
		s.Frames, s.Length, s.Writes, s.Finished, s.Targets)
}
