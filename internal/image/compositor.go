package image

import (
	"fmt"

	"schemecard/internal/config"
	"schemecard/internal/storage"
)

// Compositor layers the card: user image (or placeholder), template frame,
// name, description. It keeps no state between renders.
type Compositor struct {
	text *TextRenderer
}

func NewCompositor(fonts *FontBook) *Compositor {
	return &Compositor{text: NewTextRenderer(fonts)}
}

// Render fully redraws canvas from state. Identical inputs produce identical
// pixels.
func (c *Compositor) Render(state *storage.ApplicationState, cfg config.CardConfig, canvas Canvas) error {
	canvas.Clear()

	if state.UserImage != nil {
		c.drawUserImage(canvas, state, cfg)
	} else if err := c.drawPlaceholder(canvas, cfg); err != nil {
		return fmt.Errorf("placeholder: %w", err)
	}

	if state.CardTemplate != nil {
		canvas.DrawImage(state.CardTemplate, 0, 0, float64(cfg.Width), float64(cfg.Height))
	}

	if state.CardName != "" {
		if err := c.text.DrawTitle(canvas, state.CardName, cfg.NamePosition); err != nil {
			return fmt.Errorf("card name: %w", err)
		}
	}

	if state.CardDescription != "" {
		if err := c.text.DrawParagraph(canvas, state.CardDescription, cfg.DescPosition); err != nil {
			return fmt.Errorf("card description: %w", err)
		}
	}

	return nil
}

func (c *Compositor) drawUserImage(canvas Canvas, state *storage.ApplicationState, cfg config.CardConfig) {
	area := cfg.ImageArea
	b := state.UserImage.Bounds()
	p := ComputeCoverPlacement(
		Size{Width: float64(b.Dx()), Height: float64(b.Dy())},
		area,
		state.ImageZoom,
		state.ImageOffsetX,
		state.ImageOffsetY,
	)

	canvas.Push()
	defer canvas.Pop()

	clipToArea(canvas, area)

	// Transparent regions of the upload show the backdrop.
	canvas.SetColor(config.ParseHexColor(cfg.ImageBackdrop))
	canvas.FillRect(area.X, area.Y, area.Width, area.Height)

	canvas.DrawImage(state.UserImage, p.DrawX, p.DrawY, p.DrawWidth, p.DrawHeight)
}

func (c *Compositor) drawPlaceholder(canvas Canvas, cfg config.CardConfig) error {
	area := cfg.ImageArea

	canvas.Push()
	defer canvas.Pop()

	canvas.BeginPath()
	RoundedRectPath(canvas, area.X, area.Y, area.Width, area.Height, area.BorderRadius)
	canvas.ClosePath()
	canvas.SetColor(config.ParseHexColor(cfg.PlaceholderFill))
	canvas.Fill()

	if cfg.PlaceholderCaption == "" {
		return nil
	}
	return c.text.DrawCentered(canvas, cfg.PlaceholderCaption,
		area.X+area.Width/2, area.Y+area.Height/2,
		cfg.PlaceholderFontFamily, cfg.PlaceholderFontSize, cfg.PlaceholderText)
}

func clipToArea(canvas Canvas, area config.Rectangle) {
	canvas.BeginPath()
	RoundedRectPath(canvas, area.X, area.Y, area.Width, area.Height, area.BorderRadius)
	canvas.ClosePath()
	canvas.Clip()
}
