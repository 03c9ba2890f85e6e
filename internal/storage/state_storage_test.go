package storage

import (
	"image"
	"testing"
)

// TestNewApplicationStateDefaults starts empty at zoom 1 and no pan.
func TestNewApplicationStateDefaults(t *testing.T) {
	s := NewApplicationState()
	if s.ImageZoom != DefaultZoom || s.ImageOffsetX != 0 || s.ImageOffsetY != 0 {
		t.Fatalf("unexpected adjustments: zoom=%v x=%v y=%v", s.ImageZoom, s.ImageOffsetX, s.ImageOffsetY)
	}
	if s.CardTemplate != nil || s.UserImage != nil || s.CardName != "" || s.CardDescription != "" {
		t.Fatalf("expected empty state, got %+v", s)
	}
}

// TestReplaceUserImageResetsAdjustments resets zoom and pan but keeps the text.
func TestReplaceUserImageResetsAdjustments(t *testing.T) {
	s := NewApplicationState()
	s.ImageZoom, s.ImageOffsetX, s.ImageOffsetY = 2.5, 40, -12
	s.CardName = "kept"

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	s.ReplaceUserImage(img)

	if s.UserImage != img {
		t.Fatalf("user image not replaced")
	}
	if s.ImageZoom != DefaultZoom || s.ImageOffsetX != 0 || s.ImageOffsetY != 0 {
		t.Fatalf("adjustments not reset: zoom=%v x=%v y=%v", s.ImageZoom, s.ImageOffsetX, s.ImageOffsetY)
	}
	if s.CardName != "kept" {
		t.Fatalf("text fields must survive a new upload")
	}
}

// TestSnapshotIsACopy is unaffected by later mutations.
func TestSnapshotIsACopy(t *testing.T) {
	s := NewApplicationState()
	s.CardName = "before"
	snap := s.Snapshot()

	s.CardName = "after"
	s.ImageOffsetX = 5

	if snap.CardName != "before" || snap.ImageOffsetX != 0 {
		t.Fatalf("snapshot changed with the state: %+v", snap)
	}
	if snap == s.Snapshot() {
		t.Fatalf("expected snapshots to differ after mutation")
	}
}
