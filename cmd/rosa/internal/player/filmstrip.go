package player

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/rosa/pkg/errors"
)

// Filmstrip layout, in pixels.
const (
	CellWidth    = 160
	CellHeight   = 96
	LabelWidth   = 72
	BoxWidth     = 48
	BoxHeight    = 24
	headerLines  = 1
	headerHeight = 20
)

var (
	background = color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
	gridColor  = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	inkColor   = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	boxColor   = color.NRGBA{R: 0xd9, G: 0x3f, B: 0x6a, A: 0xff}
)

// Sample picks n frames spread evenly over frames, always including the
// first and the last.
func Sample(frames []Frame, n int) []Frame {
	if n <= 0 || len(frames) == 0 {
		return nil
	}
	if n >= len(frames) {
		return frames
	}
	if n == 1 {
		return frames[len(frames)-1:]
	}
	out := make([]Frame, n)
	for i := range out {
		j := int(math.Round(float64(i) * float64(len(frames)-1) / float64(n-1)))
		out[i] = frames[j]
	}
	return out
}

// Filmstrip draws one row per frame and one column per target. Each
// target is a box moved by its translation, scaled and faded, and the
// header row names the targets.
func Filmstrip(frames []Frame) *image.NRGBA {
	cols := 0
	for _, f := range frames {
		cols = max(cols, len(f.Styles))
	}
	width := LabelWidth + max(cols, 1)*CellWidth
	height := headerLines*headerHeight + len(frames)*CellHeight
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	text := func(x, y int, s string) {
		d := &font.Drawer{Dst: img, Src: image.NewUniform(inkColor), Face: face, Dot: fixed.P(x, y)}
		d.DrawString(s)
	}

	if len(frames) > 0 {
		for c, st := range frames[len(frames)-1].Styles {
			text(LabelWidth+c*CellWidth+4, 14, clip(st.Label, CellWidth-8, face))
		}
	}
	for r, f := range frames {
		top := headerLines*headerHeight + r*CellHeight
		hline(img, top, gridColor)
		text(4, top+CellHeight/2+4, fmt.Sprintf("%.2fs", f.At.Seconds()))
		for c, st := range f.Styles {
			left := LabelWidth + c*CellWidth
			vline(img, left, top, top+CellHeight, gridColor)
			drawBox(img, image.Rect(left, top, left+CellWidth, top+CellHeight), ParseGeometry(st.Transform, st.Opacity))
		}
	}
	return img
}

// drawBox draws a box centered in cell and transformed by g, clipped to
// the cell.
func drawBox(img *image.NRGBA, cell image.Rectangle, g Geometry) {
	dx, dy := g.TranslateX, g.TranslateY
	if g.PercentX {
		dx = dx / 100 * BoxWidth
	}
	if g.PercentY {
		dy = dy / 100 * BoxHeight
	}
	w := float64(BoxWidth) * math.Abs(g.ScaleX)
	h := float64(BoxHeight) * math.Abs(g.ScaleY)
	cx := float64(cell.Min.X+cell.Max.X)/2 + dx
	cy := float64(cell.Min.Y+cell.Max.Y)/2 + dy
	box := image.Rect(
		int(math.Round(cx-w/2)), int(math.Round(cy-h/2)),
		int(math.Round(cx+w/2)), int(math.Round(cy+h/2)),
	).Intersect(cell.Inset(1))
	if box.Empty() {
		return
	}
	c := boxColor
	c.A = uint8(math.Round(g.Opacity * 255))
	draw.Draw(img, box, image.NewUniform(c), image.Point{}, draw.Over)
}

func hline(img *image.NRGBA, y int, c color.Color) {
	for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
		img.Set(x, y, c)
	}
}

func vline(img *image.NRGBA, x, y0, y1 int, c color.Color) {
	for y := y0; y < y1; y++ {
		img.Set(x, y, c)
	}
}

// clip shortens s until it fits in width pixels.
func clip(s string, width int, face font.Face) string {
	for len(s) > 0 && font.MeasureString(face, s).Ceil() > width {
		s = s[:len(s)-1]
	}
	return s
}

// WritePNG encodes the filmstrip of frames.
func WritePNG(w io.Writer, frames []Frame) error {
	if err := png.Encode(w, Filmstrip(frames)); err != nil {
		return &errors.Error{Op: "player.WritePNG", Kind: errors.KindRender, Err: err}
	}
	return nil
}
