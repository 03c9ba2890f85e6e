package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Align mirrors the horizontal alignment keywords of a 2D canvas text API.
type Align string

const (
	AlignStart  Align = "start"
	AlignEnd    Align = "end"
	AlignLeft   Align = "left"
	AlignRight  Align = "right"
	AlignCenter Align = "center"
)

// Anchor returns the horizontal anchor in [0,1] for left-to-right text:
// 0 puts the anchor point at the left edge of the text, 1 at the right edge.
func (a Align) Anchor() float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignEnd, AlignRight:
		return 1
	default:
		return 0
	}
}

// Rectangle is an axis-aligned area in canvas pixels. A BorderRadius above
// min(Width,Height)/2 is accepted and simply produces overlapping corners.
type Rectangle struct {
	X            float64 `yaml:"x" validate:"gte=0"`
	Y            float64 `yaml:"y" validate:"gte=0"`
	Width        float64 `yaml:"width" validate:"gt=0"`
	Height       float64 `yaml:"height" validate:"gt=0"`
	BorderRadius float64 `yaml:"border_radius" validate:"gte=0"`
}

// TextConfig positions one text element. Zero values of the optional fields
// select the defaults: no stroke, 1.3×FontSize line height, 3 lines.
type TextConfig struct {
	X           float64 `yaml:"x" validate:"gte=0"`
	Y           float64 `yaml:"y" validate:"gte=0"`
	MaxWidth    float64 `yaml:"max_width" validate:"gte=0"`
	FontSize    float64 `yaml:"font_size" validate:"gt=0"`
	FontFamily  string  `yaml:"font_family" validate:"required"`
	Color       string  `yaml:"color" validate:"required,cardcolor"`
	StrokeColor string  `yaml:"stroke_color" validate:"omitempty,cardcolor"`
	StrokeWidth float64 `yaml:"stroke_width" validate:"gte=0"`
	LineHeight  float64 `yaml:"line_height" validate:"gte=0"`
	MaxLines    int     `yaml:"max_lines" validate:"gte=0"`
	Align       Align   `yaml:"align" validate:"required,oneof=start end left right center"`
}

const (
	defaultLineHeightFactor = 1.3
	defaultMaxLines         = 3
)

func (t TextConfig) EffectiveLineHeight() float64 {
	if t.LineHeight > 0 {
		return t.LineHeight
	}
	return t.FontSize * defaultLineHeightFactor
}

func (t TextConfig) EffectiveMaxLines() int {
	if t.MaxLines > 0 {
		return t.MaxLines
	}
	return defaultMaxLines
}

func (t TextConfig) HasStroke() bool {
	return t.StrokeColor != "" && t.StrokeWidth > 0
}

// CardConfig is the fixed card layout. It is loaded once at startup and
// treated as read-only afterwards.
type CardConfig struct {
	Width  int `yaml:"width" validate:"gt=0"`
	Height int `yaml:"height" validate:"gt=0"`

	ImageArea    Rectangle  `yaml:"image_area"`
	NamePosition TextConfig `yaml:"name_position"`
	DescPosition TextConfig `yaml:"desc_position"`

	ImageBackdrop         string  `yaml:"image_backdrop" validate:"required,cardcolor"`
	PlaceholderFill       string  `yaml:"placeholder_fill" validate:"required,cardcolor"`
	PlaceholderText       string  `yaml:"placeholder_text" validate:"required,cardcolor"`
	PlaceholderCaption    string  `yaml:"placeholder_caption"`
	PlaceholderFontSize   float64 `yaml:"placeholder_font_size" validate:"gt=0"`
	PlaceholderFontFamily string  `yaml:"placeholder_font_family" validate:"required"`
}

const (
	FamilyTitle = "Grandarena"
	FamilyBody  = "Poppins"
)

// DefaultCardConfig is the canonical 744×1039 layout with the taller image
// area used by the zoom/pan editor.
func DefaultCardConfig() CardConfig {
	return CardConfig{
		Width:  744,
		Height: 1039,
		ImageArea: Rectangle{
			X: 28, Y: 28, Width: 688, Height: 620, BorderRadius: 20,
		},
		NamePosition: TextConfig{
			X:           372,
			Y:           720,
			MaxWidth:    650,
			FontSize:    52,
			FontFamily:  FamilyTitle,
			Color:       "#000000",
			StrokeColor: "#FFFFFF",
			StrokeWidth: 6,
			Align:       AlignCenter,
		},
		DescPosition: TextConfig{
			X:          372,
			Y:          800,
			MaxWidth:   620,
			FontSize:   32,
			FontFamily: FamilyBody,
			Color:      "#000000",
			LineHeight: 42,
			MaxLines:   3,
			Align:      AlignCenter,
		},
		ImageBackdrop:         "#72BEFF",
		PlaceholderFill:       "#72BEFF",
		PlaceholderText:       "#FFFFFFB3",
		PlaceholderCaption:    "Upload your image",
		PlaceholderFontSize:   24,
		PlaceholderFontFamily: FamilyBody,
	}
}

// LegacyCardConfig is the earlier layout with a 520px image area and the
// text block moved up accordingly.
func LegacyCardConfig() CardConfig {
	c := DefaultCardConfig()
	c.ImageArea.Height = 520
	c.NamePosition.Y = 640
	c.DescPosition.Y = 720
	c.ImageBackdrop = "#E8E8E8"
	c.PlaceholderFill = "#E8E8E8"
	c.PlaceholderText = "#999999"
	return c
}

// LoadLayout reads a YAML layout file on top of base. Fields missing from the
// file keep the values of base.
func LoadLayout(path string, base CardConfig) (CardConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CardConfig{}, err
	}

	card := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&card); err != nil {
		return CardConfig{}, fmt.Errorf("decode yaml: %w", err)
	}

	if err := card.Validate(); err != nil {
		return CardConfig{}, err
	}
	return card, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("cardcolor", func(fl validator.FieldLevel) bool {
		_, err := parseHex(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks that every geometric field is non-negative and that the
// image area lies inside the canvas.
func (c CardConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}

	a := c.ImageArea
	if a.X+a.Width > float64(c.Width) || a.Y+a.Height > float64(c.Height) {
		return fmt.Errorf("invalid layout: image area %gx%g at (%g,%g) exceeds canvas %dx%d",
			a.Width, a.Height, a.X, a.Y, c.Width, c.Height)
	}
	return nil
}
