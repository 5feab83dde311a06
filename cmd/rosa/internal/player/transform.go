package player

import (
	"regexp"
	"strconv"
	"strings"
)

// Geometry is the 2D part of a composed transform.
type Geometry struct {
	TranslateX, TranslateY float64
	// PercentX and PercentY report whether the translation is relative to
	// the box size.
	PercentX, PercentY bool
	ScaleX, ScaleY     float64
	Opacity            float64
}

var (
	translateRE = regexp.MustCompile(`translate3d\(\s*([^,]+),\s*([^,]+),`)
	scaleRE     = regexp.MustCompile(`scale3d\(\s*([^,]+),\s*([^,]+),`)
)

// ParseGeometry reads the translation and scale of a transform written by
// the compositor. Missing parts are the identity; an empty opacity is 1.
func ParseGeometry(transform, opacity string) Geometry {
	g := Geometry{ScaleX: 1, ScaleY: 1, Opacity: 1}
	if m := translateRE.FindStringSubmatch(transform); m != nil {
		g.TranslateX, g.PercentX = length(m[1])
		g.TranslateY, g.PercentY = length(m[2])
	}
	if m := scaleRE.FindStringSubmatch(transform); m != nil {
		g.ScaleX = number(m[1], 1)
		g.ScaleY = number(m[2], 1)
	}
	if opacity != "" {
		g.Opacity = min(max(number(opacity, 1), 0), 1)
	}
	return g
}

func length(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		return number(strings.TrimSuffix(s, "%"), 0), true
	}
	return number(strings.TrimSuffix(s, "px"), 0), false
}

func number(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return f
}
