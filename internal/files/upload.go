package files

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrNotImage = errors.New("upload is not an image")
	ErrTooLarge = errors.New("upload exceeds the size limit")
	ErrDecode   = errors.New("upload could not be decoded")
)

// ValidateUpload checks the size limit and sniffs the content type. It
// returns the detected MIME type.
func ValidateUpload(data []byte, maxFileSize int64) (string, error) {
	if int64(len(data)) > maxFileSize {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), maxFileSize)
	}

	mime := mimetype.Detect(data).String()
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}
	return mime, nil
}

// DecodeUpload decodes data, applying any EXIF orientation. Images without
// pixels are rejected since they cannot be cover-fitted.
func DecodeUpload(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	return img, nil
}
