package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/rosa/pkg/animation"
)

// curveSamples is the number of points printed for one curve.
const curveSamples = 11

func init() {
	RegisterCommand(&Command{
		Name:  "curves",
		Short: "List easing curves or sample one",
		Long: `Without a name, list every easing curve. With a name, print the curve
at 11 evenly spaced points from 0 to 1.

Usage:
  rosa curves
  rosa curves outCubic`,
		Usage: "rosa curves [name]",
		Run:   runCurves,
	})
}

func runCurves(args []string) error {
	if len(args) == 0 {
		for _, name := range animation.CurveNames() {
			if name == animation.DefaultEase {
				fmt.Fprintf(stdout, "%s (default)\n", name)
				continue
			}
			fmt.Fprintln(stdout, name)
		}
		return nil
	}
	name := args[0]
	if _, ok := animation.LookupCurve(name); !ok {
		return fmt.Errorf("unknown curve %q (run \"rosa curves\" for the list)", name)
	}
	for _, line := range sampleCurve(name) {
		fmt.Fprintln(stdout, line)
	}
	return nil
}

// sampleCurve evaluates the curve at curveSamples points and draws a bar
// per point. Overshooting curves extend past the 1.0 mark.
func sampleCurve(name string) []string {
	const width = 40
	lines := make([]string, curveSamples)
	for i := range lines {
		x := float64(i) / float64(curveSamples-1)
		y := animation.Ease(name, x)
		bar := int(y*width + 0.5)
		lines[i] = fmt.Sprintf("%.1f  %7.4f  |%s", x, y, strings.Repeat("#", max(bar, 0)))
	}
	return lines
}
