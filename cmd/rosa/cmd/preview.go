package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/rosa/cmd/rosa/internal/player"
)

// defaultPreviewFrames is the number of filmstrip rows without --frames.
const defaultPreviewFrames = 12

func init() {
	RegisterCommand(&Command{
		Name:  "preview",
		Short: "Render a filmstrip PNG of a scene",
		Long: `Play a scene against a page and draw a filmstrip: one row per sampled
frame, one column per animated element. Each element is a box moved by
its translation, scaled and faded by its opacity.

Flags:
  --out FILE    PNG file to write (required)
  --frames N    Number of rows (default: 12)
  --fps N       Frame rate (default: scene fps, ROSA_FPS, then 60)
  --seed N      Seed for the random stagger pattern

Usage:
  rosa preview page.html intro.yaml --out strip.png --frames 8`,
		Usage: "rosa preview <page.html> <scene.yaml> --out strip.png [--frames N] [--fps N]",
		Run:   runPreview,
	})
}

func runPreview(args []string) error {
	opts, err := parsePlayArgs("preview", args)
	if err != nil {
		return err
	}
	if opts.out == "" {
		return fmt.Errorf("--out is required\n\nUsage: rosa preview <page.html> <scene.yaml> --out strip.png")
	}
	if opts.frames == 0 {
		opts.frames = defaultPreviewFrames
	}
	_, p, err := opts.load(true)
	if err != nil {
		return err
	}
	stats, err := p.Run()
	if err != nil {
		return err
	}

	out, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	if err := player.WritePNG(out, player.Sample(p.Frames(), opts.frames)); err != nil {
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
