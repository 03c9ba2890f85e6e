package config

import (
	"fmt"
	"image/color"
	"strconv"
)

var fallbackColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// ParseHexColor accepts #RGB, #RGBA, #RRGGBB and #RRGGBBAA. Anything else
// yields opaque mid-gray.
func ParseHexColor(s string) color.NRGBA {
	c, err := parseHex(s)
	if err != nil {
		return fallbackColor
	}
	return c
}

func parseHex(s string) (color.NRGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("color %q: missing #", s)
	}
	digits := s[1:]

	switch len(digits) {
	case 3, 4:
		expanded := make([]byte, 0, len(digits)*2)
		for i := 0; i < len(digits); i++ {
			expanded = append(expanded, digits[i], digits[i])
		}
		digits = string(expanded)
	case 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("color %q: bad length", s)
	}

	var ch [4]uint8
	ch[3] = 0xff
	for i := 0; i*2 < len(digits); i++ {
		v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
