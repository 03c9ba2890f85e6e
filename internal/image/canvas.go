package image

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Canvas is the drawing capability the compositor renders onto. It follows
// the retained path model of a 2D canvas: build a path, then fill or clip.
type Canvas interface {
	PathBuilder
	BeginPath()
	ClosePath()

	Width() int
	Height() int

	Push()
	Pop()
	Clip()
	Fill()
	SetColor(c color.Color)

	// Clear resets every pixel to transparent, ignoring any clip.
	Clear()
	FillRect(x, y, w, h float64)
	// DrawImage draws img scaled to w×h with its top-left corner at (x, y).
	DrawImage(img image.Image, x, y, w, h float64)

	SetFontFace(face font.Face)
	MeasureString(s string) float64
	// DrawString draws s anchored at (x, y); ax and ay select the anchor
	// within the text box as in gg.DrawStringAnchored. Text wider than a
	// positive maxWidth is compressed horizontally to fit.
	DrawString(s string, x, y, ax, ay, maxWidth float64)
	// StrokeString draws an outline of the given width around s.
	StrokeString(s string, x, y, ax, ay, maxWidth, lineWidth float64)

	Image() image.Image
}

// maxResampleFactor bounds the pre-scaled image size, in canvas areas.
const maxResampleFactor = 4

type ggCanvas struct {
	*gg.Context
	processor *Processor
}

// NewCanvas returns a transparent width×height canvas backed by gg.
func NewCanvas(width, height int, processor *Processor) Canvas {
	if processor == nil {
		processor = NewProcessor()
	}
	return &ggCanvas{
		Context:   gg.NewContext(width, height),
		processor: processor,
	}
}

func (c *ggCanvas) BeginPath() {
	c.Context.ClearPath()
}

func (c *ggCanvas) Clear() {
	c.Context.Push()
	c.Context.SetColor(color.Transparent)
	c.Context.Clear()
	c.Context.Pop()
}

func (c *ggCanvas) FillRect(x, y, w, h float64) {
	c.Context.DrawRectangle(x, y, w, h)
	c.Context.Fill()
}

// DrawImage resamples through the processor while the scaled image stays
// within a few canvases in size. Larger targets are drawn through the
// transform matrix instead, so only pixels that land on the canvas are
// sampled and memory does not grow with the draw size.
func (c *ggCanvas) DrawImage(img image.Image, x, y, w, h float64) {
	if !(w >= 0.5 && h >= 0.5) {
		return
	}

	if w*h <= maxResampleFactor*float64(c.Width()*c.Height()) {
		if scaled := c.processor.Resize(img, w, h); scaled != nil {
			c.Context.DrawImage(scaled, int(math.Round(x)), int(math.Round(y)))
		}
		return
	}

	b := img.Bounds()
	if b.Empty() {
		return
	}
	c.Context.Push()
	c.Context.Translate(x, y)
	c.Context.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	c.Context.DrawImage(img, -b.Min.X, -b.Min.Y)
	c.Context.Pop()
}

func (c *ggCanvas) MeasureString(s string) float64 {
	w, _ := c.Context.MeasureString(s)
	return w
}

func (c *ggCanvas) DrawString(s string, x, y, ax, ay, maxWidth float64) {
	c.withMaxWidth(s, x, maxWidth, func() {
		c.Context.DrawStringAnchored(s, x, y, ax, ay)
	})
}

func (c *ggCanvas) StrokeString(s string, x, y, ax, ay, maxWidth, lineWidth float64) {
	n := int(math.Ceil(lineWidth / 2))
	c.withMaxWidth(s, x, maxWidth, func() {
		for dy := -n; dy <= n; dy++ {
			for dx := -n; dx <= n; dx++ {
				if dx*dx+dy*dy > n*n {
					continue
				}
				c.Context.DrawStringAnchored(s, x+float64(dx), y+float64(dy), ax, ay)
			}
		}
	})
}

func (c *ggCanvas) withMaxWidth(s string, x, maxWidth float64, draw func()) {
	w := c.MeasureString(s)
	if maxWidth <= 0 || w <= maxWidth {
		draw()
		return
	}
	c.Context.Push()
	c.Context.ScaleAbout(maxWidth/w, 1, x, 0)
	draw()
	c.Context.Pop()
}
