package dom

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SplitMode selects the unit SplitText wraps in spans.
type SplitMode int

const (
	// SplitLetters wraps every character, spaces included.
	SplitLetters SplitMode = iota
	// SplitWords wraps every word and every run of whitespace.
	SplitWords
)

// ParseSplitMode maps "letter" and "word" to a SplitMode.
func ParseSplitMode(s string) (SplitMode, error) {
	switch {
	case strings.Contains(s, "letter"):
		return SplitLetters, nil
	case strings.Contains(s, "word"):
		return SplitWords, nil
	}
	return 0, fmt.Errorf("unknown split mode %q", s)
}

var whitespace = regexp.MustCompile(`\s+`)

// NormalizedText returns the text content with whitespace runs collapsed
// to one space and trimmed.
func (e *Element) NormalizedText() string {
	return strings.TrimSpace(whitespace.ReplaceAllString(e.Text(), " "))
}

// SplitText replaces the content of e by one span per letter or word of its
// normalized text and returns the spans, ready to be staggered.
func (e *Element) SplitText(mode SplitMode) []*Element {
	text := e.NormalizedText()
	var parts []string
	switch mode {
	case SplitLetters:
		for _, r := range text {
			parts = append(parts, string(r))
		}
	case SplitWords:
		parts = splitKeep(text)
	}
	e.clear()
	spans := make([]*Element, 0, len(parts))
	for _, part := range parts {
		span := &html.Node{Type: html.ElementNode, Data: "span", DataAtom: atom.Span}
		span.AppendChild(&html.Node{Type: html.TextNode, Data: part})
		e.node.AppendChild(span)
		spans = append(spans, e.doc.wrap(span))
	}
	tracer().Debugf("dom: split <%s> into %d span(s)", e.Tag(), len(spans))
	return spans
}

// splitKeep splits at whitespace runs, keeping each run as its own part.
func splitKeep(text string) []string {
	if text == "" {
		return nil
	}
	var parts []string
	last := 0
	for _, loc := range whitespace.FindAllStringIndex(text, -1) {
		parts = append(parts, text[last:loc[0]], text[loc[0]:loc[1]])
		last = loc[1]
	}
	return append(parts, text[last:])
}
