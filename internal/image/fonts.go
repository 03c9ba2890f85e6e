package image

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"schemecard/internal/config"
)

type faceKey struct {
	family string
	size   float64
}

// FontBook maps font family names to parsed fonts and caches faces per size.
// Families that were never registered fall back to the Go fonts.
type FontBook struct {
	mu      sync.Mutex
	fonts   map[string]*opentype.Font
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

func NewFontBook() (*FontBook, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse fallback font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse fallback bold font: %w", err)
	}

	return &FontBook{
		fonts:   make(map[string]*opentype.Font),
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// Register parses data and makes it available under family, replacing any
// cached faces of that family.
func (b *FontBook) Register(family string, data []byte) error {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.fonts[family] = parsed
	for k := range b.faces {
		if k.family == family {
			delete(b.faces, k)
		}
	}
	return nil
}

func (b *FontBook) Has(family string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.fonts[family]
	return ok
}

// Face returns a face of family at size pixels.
func (b *FontBook) Face(family string, size float64) (font.Face, error) {
	key := faceKey{family: family, size: size}

	b.mu.Lock()
	defer b.mu.Unlock()

	if face, ok := b.faces[key]; ok {
		return face, nil
	}

	parsed, ok := b.fonts[family]
	if !ok {
		parsed = b.regular
		if family == config.FamilyTitle {
			parsed = b.bold
		}
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s face at %.1fpx: %w", family, size, err)
	}
	b.faces[key] = face
	return face, nil
}
