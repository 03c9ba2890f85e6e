package image

import (
	"image"
	"math"
	"reflect"
	"sync"

	"github.com/nfnt/resize"
)

const maxCachedResizes = 8

type resizeKey struct {
	src           uintptr
	width, height uint
}

type resizeEntry struct {
	src    image.Image
	scaled image.Image
}

// Processor scales source images to their draw size. Results are cached per
// source image and target size so that repeated renders of the same state
// do not resample again.
type Processor struct {
	mu    sync.Mutex
	cache map[resizeKey]resizeEntry
}

func NewProcessor() *Processor {
	return &Processor{
		cache: make(map[resizeKey]resizeEntry),
	}
}

// Resize returns img scaled to the rounded width and height, or nil when
// either rounds to zero.
func (p *Processor) Resize(img image.Image, width, height float64) image.Image {
	if !(width >= 0.5 && height >= 0.5) {
		return nil
	}
	w := uint(math.Round(width))
	h := uint(math.Round(height))

	b := img.Bounds()
	if uint(b.Dx()) == w && uint(b.Dy()) == h {
		return img
	}

	ptr, ok := identity(img)
	if !ok {
		return resize.Resize(w, h, img, resize.Lanczos3)
	}

	key := resizeKey{src: ptr, width: w, height: h}

	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.cache[key]; ok && e.src == img {
		return e.scaled
	}

	scaled := resize.Resize(w, h, img, resize.Lanczos3)
	if len(p.cache) >= maxCachedResizes {
		clear(p.cache)
	}
	p.cache[key] = resizeEntry{src: img, scaled: scaled}
	return scaled
}

func identity(img image.Image) (uintptr, bool) {
	v := reflect.ValueOf(img)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return 0, false
	}
	return v.Pointer(), true
}
