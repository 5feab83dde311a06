package animation

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-drift/rosa/pkg/errors"
)

// Property is one animatable CSS quantity.
type Property int

const (
	TranslateX Property = iota
	TranslateY
	TranslateZ
	RotateX
	RotateY
	RotateZ
	ScaleX
	ScaleY
	ScaleZ
	SkewX
	SkewY
	Opacity

	numProperties
)

var propertyNames = [numProperties]string{
	TranslateX: "translateX",
	TranslateY: "translateY",
	TranslateZ: "translateZ",
	RotateX:    "rotateX",
	RotateY:    "rotateY",
	RotateZ:    "rotateZ",
	ScaleX:     "scaleX",
	ScaleY:     "scaleY",
	ScaleZ:     "scaleZ",
	SkewX:      "skewX",
	SkewY:      "skewY",
	Opacity:    "opacity",
}

// ParseProperty maps a parameter name such as "translateX" to its Property.
func ParseProperty(name string) (Property, bool) {
	for p, n := range propertyNames {
		if n == name {
			return Property(p), true
		}
	}
	return 0, false
}

// Properties returns the full vocabulary in declaration order.
func Properties() []Property {
	ps := make([]Property, numProperties)
	for i := range ps {
		ps[i] = Property(i)
	}
	return ps
}

func (p Property) String() string {
	if p < 0 || p >= numProperties {
		return fmt.Sprintf("Property(%d)", int(p))
	}
	return propertyNames[p]
}

// Group is the CSS function a property contributes to.
type Group int

const (
	GroupTranslate Group = iota
	GroupRotate
	GroupScale
	GroupSkew
	GroupOpacity
)

// Group returns the transform function (or opacity) that p belongs to.
func (p Property) Group() Group {
	switch p {
	case TranslateX, TranslateY, TranslateZ:
		return GroupTranslate
	case RotateX, RotateY, RotateZ:
		return GroupRotate
	case ScaleX, ScaleY, ScaleZ:
		return GroupScale
	case SkewX, SkewY:
		return GroupSkew
	case Opacity:
		return GroupOpacity
	}
	panic(fmt.Sprintf("animation: invalid property %d", int(p)))
}

// Axis returns 0, 1 or 2 for the X, Y and Z component of p. Opacity is 0.
func (p Property) Axis() int {
	switch p {
	case TranslateX, RotateX, ScaleX, SkewX, Opacity:
		return 0
	case TranslateY, RotateY, ScaleY, SkewY:
		return 1
	case TranslateZ, RotateZ, ScaleZ:
		return 2
	}
	panic(fmt.Sprintf("animation: invalid property %d", int(p)))
}

// Unit is the CSS unit attached to a tweened value.
type Unit int

const (
	UnitNone Unit = iota
	UnitPixel
	UnitPercent
	UnitDegree
)

func (u Unit) String() string {
	switch u {
	case UnitPixel:
		return "px"
	case UnitPercent:
		return "%"
	case UnitDegree:
		return "deg"
	default:
		return ""
	}
}

// Value is an amount with its unit.
type Value struct {
	Amount float64
	Unit   Unit
}

// Px returns a pixel value.
func Px(v float64) Value { return Value{Amount: v, Unit: UnitPixel} }

// Pct returns a percent value.
func Pct(v float64) Value { return Value{Amount: v, Unit: UnitPercent} }

// Deg returns a degree value.
func Deg(v float64) Value { return Value{Amount: v, Unit: UnitDegree} }

// Num returns a unitless value.
func Num(v float64) Value { return Value{Amount: v} }

func (v Value) String() string {
	return formatNumber(v.Amount) + v.Unit.String()
}

// ParseValue converts a loosely typed parameter value. Numbers are percent;
// strings mentioning "deg" are degrees; other strings are pixels. A Value is
// returned unchanged.
func ParseValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case Value:
		return v, nil
	case string:
		amount, ok := leadingFloat(v)
		if !ok {
			return Value{}, &errors.ParamError{Field: "value", Value: v, Reason: "no leading number"}
		}
		if strings.Contains(v, "deg") {
			return Deg(amount), nil
		}
		return Px(amount), nil
	case nil:
		return Value{}, &errors.ParamError{Field: "value", Value: v, Reason: "missing"}
	}
	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Pct(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Pct(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Pct(rv.Float()), nil
	}
	return Value{}, &errors.ParamError{Field: "value", Value: raw, Reason: fmt.Sprintf("unsupported type %T", raw)}
}

// leadingFloat parses the longest numeric prefix of s, like parseFloat.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	seenDigit, seenDot, seenExp := false, false, false
scan:
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case (c == '+' || c == '-') && (end == 0 || s[end-1] == 'e' || s[end-1] == 'E'):
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
		default:
			break scan
		}
		end++
	}
	for end > 0 {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return f, true
		}
		end--
	}
	return 0, false
}

// formatNumber writes v with at most four decimals and no trailing zeros.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
