package image

import (
	"strings"

	"schemecard/internal/config"
)

// Vertical anchors for gg.DrawStringAnchored: 0.5 centers the text box on y,
// 1 puts the top of the text box at y.
const (
	baselineMiddle = 0.5
	baselineTop    = 1.0
)

type TextRenderer struct {
	fonts *FontBook
}

func NewTextRenderer(fonts *FontBook) *TextRenderer {
	return &TextRenderer{fonts: fonts}
}

// DrawTitle renders text upper-cased on a single line centered vertically on
// cfg.Y, with the outline painted first so the fill sits on top of it.
func (tr *TextRenderer) DrawTitle(c Canvas, text string, cfg config.TextConfig) error {
	face, err := tr.fonts.Face(cfg.FontFamily, cfg.FontSize)
	if err != nil {
		return err
	}

	text = strings.ToUpper(text)
	ax := cfg.Align.Anchor()

	c.Push()
	defer c.Pop()
	c.SetFontFace(face)

	if cfg.HasStroke() {
		c.SetColor(config.ParseHexColor(cfg.StrokeColor))
		c.StrokeString(text, cfg.X, cfg.Y, ax, baselineMiddle, cfg.MaxWidth, cfg.StrokeWidth)
	}

	c.SetColor(config.ParseHexColor(cfg.Color))
	c.DrawString(text, cfg.X, cfg.Y, ax, baselineMiddle, cfg.MaxWidth)
	return nil
}

// DrawParagraph word-wraps text to cfg.MaxWidth and draws at most
// cfg.EffectiveMaxLines() lines stacked downwards from cfg.Y.
func (tr *TextRenderer) DrawParagraph(c Canvas, text string, cfg config.TextConfig) error {
	face, err := tr.fonts.Face(cfg.FontFamily, cfg.FontSize)
	if err != nil {
		return err
	}

	c.Push()
	defer c.Pop()
	c.SetFontFace(face)
	c.SetColor(config.ParseHexColor(cfg.Color))

	lines := LimitLines(WrapText(text, cfg.MaxWidth, c.MeasureString), cfg.EffectiveMaxLines())
	lineHeight := cfg.EffectiveLineHeight()
	ax := cfg.Align.Anchor()

	for i, line := range lines {
		c.DrawString(line, cfg.X, cfg.Y+float64(i)*lineHeight, ax, baselineTop, cfg.MaxWidth)
	}
	return nil
}

func (tr *TextRenderer) DrawCentered(c Canvas, text string, x, y float64, family string, size float64, color string) error {
	face, err := tr.fonts.Face(family, size)
	if err != nil {
		return err
	}

	c.Push()
	defer c.Pop()
	c.SetFontFace(face)
	c.SetColor(config.ParseHexColor(color))
	c.DrawString(text, x, y, 0.5, baselineMiddle, 0)
	return nil
}
