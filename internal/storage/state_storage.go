package storage

import "image"

const (
	DefaultZoom = 1.0
	MinZoom     = 1.0
)

// ApplicationState is everything a render depends on besides the layout.
// It has a single writer; callers that share it across goroutines must
// serialize access themselves.
type ApplicationState struct {
	CardTemplate image.Image
	UserImage    image.Image

	CardName        string
	CardDescription string

	ImageZoom    float64
	ImageOffsetX float64
	ImageOffsetY float64
}

func NewApplicationState() *ApplicationState {
	return &ApplicationState{ImageZoom: DefaultZoom}
}

// SetTemplate installs the decorative frame. It is called once by the asset
// loader.
func (s *ApplicationState) SetTemplate(img image.Image) {
	s.CardTemplate = img
}

// ReplaceUserImage swaps in a new upload and resets zoom and pan.
func (s *ApplicationState) ReplaceUserImage(img image.Image) {
	s.UserImage = img
	s.ResetAdjustments()
}

func (s *ApplicationState) ResetAdjustments() {
	s.ImageZoom = DefaultZoom
	s.ImageOffsetX = 0
	s.ImageOffsetY = 0
}

// Snapshot returns a copy of the state. Images are shared, not cloned.
func (s *ApplicationState) Snapshot() ApplicationState {
	return *s
}
