// Package dom wraps an HTML document parsed with golang.org/x/net/html so
// that its elements can be resolved by CSS selector and animated.
//
// *Element implements animation.Styler: style writes go to the inline style
// attribute, which is parsed and re-serialized as a declaration list.
package dom

import "github.com/npillmayer/schuko/tracing"

// tracer traces to 'rosa.dom'.
func tracer() tracing.Trace {
	return tracing.Select("rosa.dom")
}
