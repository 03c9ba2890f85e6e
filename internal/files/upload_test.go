package files

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

// encodePNG encodes an opaque red w×h PNG.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// TestValidateUpload checks size and content sniffing.
func TestValidateUpload(t *testing.T) {
	pngData := encodePNG(t, 4, 3)

	tests := []struct {
		name     string
		data     []byte
		limit    int64
		wantMIME string
		wantErr  error
	}{
		{"png within limit", pngData, 1 << 20, "image/png", nil},
		{"png over limit", pngData, int64(len(pngData) - 1), "", ErrTooLarge},
		{"plain text", []byte("definitely not a picture"), 1 << 20, "", ErrNotImage},
		{"empty", nil, 1 << 20, "", ErrNotImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUpload(tt.data, tt.limit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.wantMIME {
				t.Errorf("mime = %q, want %q", got, tt.wantMIME)
			}
		})
	}
}

// TestValidateUploadExactLimit accepts a file of exactly the limit.
func TestValidateUploadExactLimit(t *testing.T) {
	data := encodePNG(t, 2, 2)
	if _, err := ValidateUpload(data, int64(len(data))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestDecodeUpload decodes PNG and JPEG payloads.
func TestDecodeUpload(t *testing.T) {
	img, err := DecodeUpload(encodePNG(t, 5, 7))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 7 {
		t.Errorf("png size = %dx%d, want 5x7", b.Dx(), b.Dy())
	}

	var buf bytes.Buffer
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	if err := jpeg.Encode(&buf, src, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	img, err = DecodeUpload(buf.Bytes())
	if err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("jpeg size = %dx%d, want 8x6", b.Dx(), b.Dy())
	}
}

// TestDecodeUploadCorrupt reports ErrDecode for a truncated image.
func TestDecodeUploadCorrupt(t *testing.T) {
	data := encodePNG(t, 10, 10)
	_, err := DecodeUpload(data[:len(data)/2])
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("err = %v, want ErrDecode", err)
	}
	if !strings.Contains(err.Error(), "decoded") {
		t.Errorf("error message %q does not describe decoding", err)
	}
}
