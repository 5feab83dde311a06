package dom

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-drift/rosa/pkg/animation"
	"github.com/go-drift/rosa/pkg/errors"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><head><title>t</title></head>
<body>
  <header class="top bar">
    <h1 id="logo" style="color: red">Rosa</h1>
    <nav><a class="item">one</a> <a class="item">two</a> <a class="item">three</a></nav>
  </header>
  <p class="quote">  hello
     brave   world </p>
</body></html>`

func parsePage(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(page)
	require.NoError(t, err)
	return doc
}

var _ animation.Styler = (*Element)(nil)

func TestQuery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rosa.dom")
	defer teardown()

	doc := parsePage(t)
	logo, err := doc.Query("#logo")
	require.NoError(t, err)
	assert.Equal(t, "h1", logo.Tag())
	assert.Equal(t, "logo", logo.ID())
	assert.Equal(t, "Rosa", logo.Text())

	again, err := doc.Query("header h1")
	require.NoError(t, err)
	assert.Same(t, logo, again, "one wrapper per node")

	items, err := doc.QueryAll("nav .item")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "three", items[2].Text())

	header, err := doc.Query("header")
	require.NoError(t, err)
	assert.Len(t, header.Children(), 2)
	assert.Same(t, header, logo.Parent())
	nav, err := header.Query("nav")
	require.NoError(t, err)
	assert.Len(t, nav.Children(), 3)
	assert.Equal(t, "body", doc.Body().Tag())
}

func TestQueryErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rosa.dom")
	defer teardown()

	doc := parsePage(t)
	_, err := doc.Query("#missing")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindSelector))
	assert.ErrorIs(t, err, errors.ErrNoMatch)
	assert.Contains(t, err.Error(), `"#missing"`)

	_, err = doc.QueryAll("section")
	assert.ErrorIs(t, err, errors.ErrNoMatch)

	_, err = doc.Query("h1[")
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindSelector))
	assert.NotErrorIs(t, err, errors.ErrNoMatch)
}

func TestStyle(t *testing.T) {
	doc := parsePage(t)
	logo, err := doc.Query("#logo")
	require.NoError(t, err)
	assert.Equal(t, "red", logo.Style("color"))

	logo.SetStyle("transform", "translate3d(50px, 0px, 0px) scale3d(1, 2, 1) rotate3d(0,0,0,0deg) skew(0deg,0deg)")
	logo.SetStyle("opacity", "0.5")
	style, _ := logo.Attr("style")
	assert.Equal(t, "color: red; transform: translate3d(50px, 0px, 0px) scale3d(1, 2, 1) rotate3d(0,0,0,0deg) skew(0deg,0deg); opacity: 0.5;", style)

	logo.SetStyle("opacity", "1")
	logo.SetStyle("color", "")
	style, _ = logo.Attr("style")
	assert.Equal(t, "transform: translate3d(50px, 0px, 0px) scale3d(1, 2, 1) rotate3d(0,0,0,0deg) skew(0deg,0deg); opacity: 1;", style)

	logo.SetAttr("style", "opacity: 0")
	assert.Equal(t, "0", logo.Style("opacity"))
	assert.Equal(t, "", logo.Style("transform"))
}

func TestStyleOnBareElement(t *testing.T) {
	doc := parsePage(t)
	p, err := doc.Query("p")
	require.NoError(t, err)
	p.SetStyles([]string{"transform", "opacity"}, []string{"none", "0"})
	style, ok := p.Attr("style")
	assert.True(t, ok)
	assert.Equal(t, "transform: none; opacity: 0;", style)
	p.SetStyle("opacity", "1")
	assert.Equal(t, "1", p.Style("opacity"))
}

func TestClasses(t *testing.T) {
	doc := parsePage(t)
	header, err := doc.Query("header")
	require.NoError(t, err)
	assert.Equal(t, []string{"top", "bar"}, header.Classes())
	assert.True(t, header.HasClass("bar"))

	header.AddClass("open", "top")
	assert.Equal(t, []string{"top", "bar", "open"}, header.Classes())
	header.RemoveClass("top")
	assert.Equal(t, []string{"bar", "open"}, header.Classes())
	assert.False(t, header.ToggleClass("open"))
	assert.True(t, header.ToggleClass("closed"))
	header.ReplaceClass("closed", "open")
	assert.Equal(t, []string{"bar", "open"}, header.Classes())

	_, err = doc.Query("header.open")
	assert.NoError(t, err)
}

func TestSplitText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "rosa.dom")
	defer teardown()

	doc := parsePage(t)
	p, err := doc.Query(".quote")
	require.NoError(t, err)
	assert.Equal(t, "hello brave world", p.NormalizedText())

	words := p.SplitText(SplitWords)
	require.Len(t, words, 5)
	assert.Equal(t, "hello", words[0].Text())
	assert.Equal(t, " ", words[1].Text())
	assert.Equal(t, "world", words[4].Text())
	assert.Equal(t, "span", words[0].Tag())

	spans, err := p.QueryAll("span")
	require.NoError(t, err)
	assert.Len(t, spans, 5)

	letters := p.SplitText(SplitLetters)
	assert.Len(t, letters, len("hello brave world"))
	assert.Equal(t, "h", letters[0].Text())

	mode, err := ParseSplitMode("split-letter")
	require.NoError(t, err)
	assert.Equal(t, SplitLetters, mode)
	_, err = ParseSplitMode("line")
	assert.Error(t, err)
}

func TestInnerHTMLAndRender(t *testing.T) {
	doc := parsePage(t)
	nav, err := doc.Query("nav")
	require.NoError(t, err)

	require.NoError(t, nav.SetInnerHTML(`<a class="item">solo</a>`))
	inner, err := nav.InnerHTML()
	require.NoError(t, err)
	assert.Equal(t, `<a class="item">solo</a>`, inner)
	items, err := doc.QueryAll(".item")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	nav.SetText("a < b")
	assert.Equal(t, "a < b", nav.Text())

	var buf bytes.Buffer
	require.NoError(t, doc.Render(&buf))
	assert.Contains(t, buf.String(), `<nav>a &lt; b</nav>`)
	assert.Contains(t, buf.String(), `<h1 id="logo" style="color: red">Rosa</h1>`)
}

func TestAnimateElement(t *testing.T) {
	doc := parsePage(t)
	logo, err := doc.Query("#logo")
	require.NoError(t, err)

	stepper := animation.NewStepper(time.Time{})
	s := animation.NewScheduler(animation.Options{Clock: stepper, Frames: stepper})
	s.Start()
	_, err = s.Animate(animation.Params{
		Target: logo,
		Ease:   "linear",
		Props:  map[string]animation.Prop{"opacity": animation.FromTo(0, 1)},
	})
	require.NoError(t, err)
	stepper.Advance(animation.DefaultDuration / 2)
	assert.Equal(t, "0.5", logo.Style("opacity"))
	assert.Equal(t, "red", logo.Style("color"))
}
