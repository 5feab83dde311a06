package animation

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/tanema/gween/ease"
)

// Curve transforms linear progress in [0, 1] into eased progress.
type Curve func(float64) float64

// DefaultEase is the curve used when no ease name is given.
const DefaultEase = "outCubic"

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// curves maps the ease vocabulary accepted in animation parameters to curves.
// The Penner family comes from gween, which works in float32 over
// (t, begin, change, duration); fromGween adapts it.
var curves = map[string]Curve{
	"linear": LinearCurve,

	"inSine":    fromGween(ease.InSine),
	"outSine":   fromGween(ease.OutSine),
	"inOutSine": fromGween(ease.InOutSine),

	"inQuad":    fromGween(ease.InQuad),
	"outQuad":   fromGween(ease.OutQuad),
	"inOutQuad": fromGween(ease.InOutQuad),

	"inCubic":    fromGween(ease.InCubic),
	"outCubic":   fromGween(ease.OutCubic),
	"inOutCubic": fromGween(ease.InOutCubic),

	"inQuart":    fromGween(ease.InQuart),
	"outQuart":   fromGween(ease.OutQuart),
	"inOutQuart": fromGween(ease.InOutQuart),

	"inQuint":    fromGween(ease.InQuint),
	"outQuint":   fromGween(ease.OutQuint),
	"inOutQuint": fromGween(ease.InOutQuint),

	"inExpo":    fromGween(ease.InExpo),
	"outExpo":   fromGween(ease.OutExpo),
	"inOutExpo": fromGween(ease.InOutExpo),

	"inCirc":    fromGween(ease.InCirc),
	"outCirc":   fromGween(ease.OutCirc),
	"inOutCirc": fromGween(ease.InOutCirc),

	"inElastic":    fromGween(ease.InElastic),
	"outElastic":   fromGween(ease.OutElastic),
	"inOutElastic": fromGween(ease.InOutElastic),

	"inBack":    fromGween(ease.InBack),
	"outBack":   fromGween(ease.OutBack),
	"inOutBack": fromGween(ease.InOutBack),

	"inBounce":    fromGween(ease.InBounce),
	"outBounce":   fromGween(ease.OutBounce),
	"inOutBounce": fromGween(ease.InOutBounce),
}

// fromGween wraps a gween easing function. Endpoints are pinned because
// float32 rounding would otherwise leave some curves a hair short of 1.
func fromGween(fn ease.TweenFunc) Curve {
	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}
		return widen(fn(float32(x), 0, 1, 1))
	}
}

// widen converts v to the float64 closest to its shortest decimal form, so
// 0.657 as float32 becomes 0.657 and not 0.6570000052452087.
func widen(v float32) float64 {
	f, err := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
	if err != nil {
		return float64(v)
	}
	return f
}

// LookupCurve returns the curve registered under name.
func LookupCurve(name string) (Curve, bool) {
	c, ok := curves[name]
	return c, ok
}

// Ease evaluates the named curve at x. Callers must pass a name from
// CurveNames; an unknown name panics.
func Ease(name string, x float64) float64 {
	c, ok := curves[name]
	if !ok {
		panic(fmt.Sprintf("animation: unknown ease %q", name))
	}
	return c(x)
}

// CurveNames returns the supported ease names in sorted order.
func CurveNames() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
