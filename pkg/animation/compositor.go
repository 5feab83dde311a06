package animation

import "strings"

// Compositor owns the tweens of one element and merges them into a single
// CSS transform and an opacity value. CSS allows one transform declaration
// per element, so every axis keeps its last-known value and only the axes
// with a live tween change.
type Compositor struct {
	tweens []*Tween

	translate   [3]Value
	scale       [3]float64
	rotateAxis  [3]bool
	rotateAngle Value
	skew        [2]Value
	opacity     string

	transform string
}

// NewCompositor creates a compositor holding tweens. A later tween for a
// property already present replaces the earlier one.
func NewCompositor(tweens ...*Tween) *Compositor {
	c := &Compositor{
		translate:   [3]Value{Px(0), Px(0), Px(0)},
		scale:       [3]float64{1, 1, 1},
		rotateAngle: Deg(0),
		skew:        [2]Value{Deg(0), Deg(0)},
	}
	for _, tw := range tweens {
		c.Add(tw)
	}
	c.build()
	return c
}

// Add inserts tw, replacing any tween for the same property in place.
func (c *Compositor) Add(tw *Tween) {
	for i, existing := range c.tweens {
		if existing.property == tw.property {
			c.tweens[i] = tw
			return
		}
	}
	c.tweens = append(c.tweens, tw)
}

// Remove drops tw. The axis it drove keeps its last value.
func (c *Compositor) Remove(tw *Tween) {
	for i, existing := range c.tweens {
		if existing == tw {
			c.tweens = append(c.tweens[:i], c.tweens[i+1:]...)
			return
		}
	}
}

// Lookup returns the live tween for p.
func (c *Compositor) Lookup(p Property) (*Tween, bool) {
	for _, tw := range c.tweens {
		if tw.property == p {
			return tw, true
		}
	}
	return nil, false
}

// Tweens returns a copy of the live tweens in insertion order.
func (c *Compositor) Tweens() []*Tween {
	out := make([]*Tween, len(c.tweens))
	copy(out, c.tweens)
	return out
}

// Len returns the number of live tweens.
func (c *Compositor) Len() int { return len(c.tweens) }

// Recompute folds the current tween values into the cached axes and
// rebuilds the transform and opacity strings.
func (c *Compositor) Recompute() {
	for _, tw := range c.tweens {
		axis := tw.property.Axis()
		switch tw.property.Group() {
		case GroupTranslate:
			c.translate[axis] = Value{Amount: tw.value, Unit: tw.unit}
		case GroupScale:
			c.scale[axis] = tw.value
		case GroupRotate:
			// rotate3d takes one angle; the most recent rotate tween sets it.
			c.rotateAxis[axis] = true
			c.rotateAngle = Value{Amount: tw.value, Unit: tw.unit}
		case GroupSkew:
			c.skew[axis] = Value{Amount: tw.value, Unit: tw.unit}
		case GroupOpacity:
			c.opacity = formatNumber(tw.value)
		}
	}
	c.build()
}

// Transform returns the composed transform, in the fixed order
// translate3d, scale3d, rotate3d, skew.
func (c *Compositor) Transform() string { return c.transform }

// Opacity returns the composed opacity, or "" if no opacity tween has run.
func (c *Compositor) Opacity() string { return c.opacity }

// inherit seeds the cached axes from prev, the compositor of the animation
// being replaced on the same element.
func (c *Compositor) inherit(prev *Compositor) {
	c.translate = prev.translate
	c.scale = prev.scale
	c.rotateAxis = prev.rotateAxis
	c.rotateAngle = prev.rotateAngle
	c.skew = prev.skew
	c.opacity = prev.opacity
	c.build()
}

func (c *Compositor) build() {
	var sb strings.Builder
	sb.WriteString("translate3d(")
	sb.WriteString(c.translate[0].String())
	sb.WriteString(", ")
	sb.WriteString(c.translate[1].String())
	sb.WriteString(", ")
	sb.WriteString(c.translate[2].String())
	sb.WriteString(") scale3d(")
	sb.WriteString(formatNumber(c.scale[0]))
	sb.WriteString(", ")
	sb.WriteString(formatNumber(c.scale[1]))
	sb.WriteString(", ")
	sb.WriteString(formatNumber(c.scale[2]))
	sb.WriteString(") rotate3d(")
	for _, on := range c.rotateAxis {
		if on {
			sb.WriteString("1,")
		} else {
			sb.WriteString("0,")
		}
	}
	sb.WriteString(c.rotateAngle.String())
	sb.WriteString(") skew(")
	sb.WriteString(c.skew[0].String())
	sb.WriteString(",")
	sb.WriteString(c.skew[1].String())
	sb.WriteString(")")
	c.transform = sb.String()
}
