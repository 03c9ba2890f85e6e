package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
)

const jpegQuality = 92

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format int

const (
	JPEG Format = iota
	PNG
)

// ParseFormat accepts "jpg", "jpeg" and "png", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jpg", "jpeg":
		return JPEG, nil
	case "png":
		return PNG, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) String() string {
	switch f {
	case JPEG:
		return "JPEG"
	case PNG:
		return "PNG"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

func (f Format) Extension() string {
	if f == PNG {
		return "png"
	}
	return "jpg"
}

func (f Format) MIMEType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/jpeg"
}

// Encode serializes src. JPEG has no alpha channel, so the card is first
// flattened onto an opaque white sheet of the same size. PNG keeps alpha.
func Encode(src image.Image, f Format) ([]byte, error) {
	if src == nil {
		return nil, errors.New("nothing to encode")
	}

	var buf bytes.Buffer
	switch f {
	case JPEG:
		b := src.Bounds()
		sheet := imaging.New(b.Dx(), b.Dy(), color.White)
		sheet = imaging.Overlay(sheet, src, image.Pt(0, 0), 1.0)
		if err := imaging.Encode(&buf, sheet, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	case PNG:
		if err := imaging.Encode(&buf, imaging.Clone(src), imaging.PNG); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	return buf.Bytes(), nil
}
