package handlers

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"schemecard/internal/config"
	"schemecard/internal/files"
	"schemecard/internal/services"
	"schemecard/internal/shell"
)

// fakeShell records every reply.
type fakeShell struct {
	messages []string
}

func (f *fakeShell) Start(context.Context, func(context.Context, string) error) error { return nil }

func (f *fakeShell) SendText(_ context.Context, text string) error {
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeShell) last() string {
	if len(f.messages) == 0 {
		return ""
	}
	return f.messages[len(f.messages)-1]
}

// newTestHandler wires a handler to a real editor and a recording shell.
func newTestHandler(t *testing.T, maxFileSize int64) (*CommandHandler, *fakeShell, *services.EditorService) {
	t.Helper()
	cfg := &config.Config{
		OutputDir:        t.TempDir(),
		MaxFileSize:      maxFileSize,
		ExportResetDelay: time.Millisecond,
		Card:             config.DefaultCardConfig(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	editor, err := services.NewEditorService(cfg, &files.Assets{}, files.NewLocalFileManager(maxFileSize), logger)
	if err != nil {
		t.Fatalf("NewEditorService: %v", err)
	}
	t.Cleanup(editor.Close)

	sh := &fakeShell{}
	return NewCommandHandler(editor, sh, logger), sh, editor
}

// writePNG writes a transparent w×h PNG and returns its path.
func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestHandleCommandTextAndAdjustments drives the editor through commands.
func TestHandleCommandTextAndAdjustments(t *testing.T) {
	h, sh, editor := newTestHandler(t, 10<<20)
	ctx := context.Background()

	steps := []struct {
		line string
		want string
	}{
		{"name Fire Drake", "Name set (10 chars)"},
		{"desc Breathes fire.", "Description set (14 chars)"},
		{"zoom  2.5 ", "Zoom set to 2.5"},
		{"x -30", "Horizontal offset set to -30"},
		{"y 12", "Vertical offset set to 12"},
		{"pan 4 5", "Pan set to (4, 5)"},
	}
	for _, s := range steps {
		if err := h.HandleCommand(ctx, s.line); err != nil {
			t.Fatalf("%q: %v", s.line, err)
		}
		if !strings.Contains(sh.last(), s.want) {
			t.Errorf("%q replied %q, want it to contain %q", s.line, sh.last(), s.want)
		}
	}

	st := editor.Snapshot()
	if st.CardName != "Fire Drake" || st.CardDescription != "Breathes fire." {
		t.Errorf("text = %q / %q", st.CardName, st.CardDescription)
	}
	if st.ImageZoom != 2.5 || st.ImageOffsetX != 4 || st.ImageOffsetY != 5 {
		t.Errorf("adjustments = %v (%v,%v)", st.ImageZoom, st.ImageOffsetX, st.ImageOffsetY)
	}

	if err := h.HandleCommand(ctx, "reset"); err != nil {
		t.Fatal(err)
	}
	st = editor.Snapshot()
	if st.ImageZoom != 1 || st.ImageOffsetX != 0 || st.ImageOffsetY != 0 {
		t.Errorf("after reset = %v (%v,%v)", st.ImageZoom, st.ImageOffsetX, st.ImageOffsetY)
	}
}

// TestHandleCommandRejectsBadNumbers replies without touching state.
func TestHandleCommandRejectsBadNumbers(t *testing.T) {
	h, sh, editor := newTestHandler(t, 10<<20)
	ctx := context.Background()
	before := editor.Snapshot()

	for _, line := range []string{"zoom abc", "zoom 0.2", "x NaN", "pan 1", "pan a b"} {
		if err := h.HandleCommand(ctx, line); err != nil {
			t.Errorf("%q: unexpected error %v", line, err)
		}
		if !strings.HasPrefix(sh.last(), "❌") {
			t.Errorf("%q replied %q, want a rejection", line, sh.last())
		}
	}
	if editor.Snapshot() != before {
		t.Error("state changed after rejected input")
	}
}

// TestHandleCommandUpload reports success and rejections.
func TestHandleCommandUpload(t *testing.T) {
	h, sh, editor := newTestHandler(t, 10<<20)
	ctx := context.Background()

	if err := h.HandleCommand(ctx, "upload "+writePNG(t, 16, 9)); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.Contains(sh.last(), "Image loaded") {
		t.Errorf("reply = %q", sh.last())
	}
	if editor.Snapshot().UserImage == nil {
		t.Fatal("image not installed")
	}

	text := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(text, []byte("hello there"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := h.HandleCommand(ctx, "upload "+text); !errors.Is(err, files.ErrNotImage) {
		t.Errorf("err = %v, want ErrNotImage", err)
	}
	if sh.last() != "❌ Please choose an image file." {
		t.Errorf("reply = %q", sh.last())
	}

	if err := h.HandleCommand(ctx, "upload"); err != nil {
		t.Errorf("missing path: %v", err)
	}
}

// TestHandleCommandUploadTooLarge rejects files over the limit.
func TestHandleCommandUploadTooLarge(t *testing.T) {
	h, sh, editor := newTestHandler(t, 16)
	ctx := context.Background()

	err := h.HandleCommand(ctx, "upload "+writePNG(t, 200, 200))
	if !errors.Is(err, files.ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
	if sh.last() != "❌ That file is too large." {
		t.Errorf("reply = %q", sh.last())
	}
	if editor.Snapshot().UserImage != nil {
		t.Error("oversized upload was installed")
	}
}

// TestHandleCommandExport saves a file and reports its path.
func TestHandleCommandExport(t *testing.T) {
	h, sh, _ := newTestHandler(t, 10<<20)
	ctx := context.Background()

	if err := h.HandleCommand(ctx, "name Fire & Ice!!"); err != nil {
		t.Fatal(err)
	}
	if err := h.HandleCommand(ctx, "export png"); err != nil {
		t.Fatalf("export: %v", err)
	}

	reply := sh.last()
	path, ok := strings.CutPrefix(reply, "✅ Saved ")
	if !ok {
		t.Fatalf("reply = %q", reply)
	}
	if !strings.HasPrefix(filepath.Base(path), "fire-ice-") || !strings.HasSuffix(path, ".png") {
		t.Errorf("path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}

	if err := h.HandleCommand(ctx, "export gif"); err != nil {
		t.Errorf("bad format: %v", err)
	}
	if !strings.Contains(sh.last(), "jpg or png") {
		t.Errorf("reply = %q", sh.last())
	}
}

// TestHandleCommandStateAndMisc covers state, help, unknown and quit.
func TestHandleCommandStateAndMisc(t *testing.T) {
	h, sh, _ := newTestHandler(t, 10<<20)
	ctx := context.Background()

	_ = h.HandleCommand(ctx, "name Dragon")
	_ = h.HandleCommand(ctx, "state")
	if !strings.Contains(sh.last(), `"Dragon" (6 chars)`) || !strings.Contains(sh.last(), "image:       none") {
		t.Errorf("state = %q", sh.last())
	}

	_ = h.HandleCommand(ctx, "HELP")
	if !strings.Contains(sh.last(), "export jpg|png") {
		t.Errorf("help = %q", sh.last())
	}

	_ = h.HandleCommand(ctx, "fly away")
	if !strings.Contains(sh.last(), "Unknown command") {
		t.Errorf("unknown = %q", sh.last())
	}

	if err := h.HandleCommand(ctx, "quit"); !errors.Is(err, shell.ErrStop) {
		t.Errorf("quit: err = %v, want ErrStop", err)
	}
}

// TestHandleCommandKeepsTextVerbatim stores names and descriptions exactly as typed.
func TestHandleCommandKeepsTextVerbatim(t *testing.T) {
	h, sh, editor := newTestHandler(t, 10<<20)
	ctx := context.Background()

	steps := []struct {
		line string
		want string
	}{
		{"name  Fire Drake ", "Name set (12 chars)"},
		{"  desc   two  spaces  ", "Description set (15 chars)"},
	}
	for _, s := range steps {
		if err := h.HandleCommand(ctx, s.line); err != nil {
			t.Fatalf("%q: %v", s.line, err)
		}
		if !strings.Contains(sh.last(), s.want) {
			t.Errorf("%q replied %q, want it to contain %q", s.line, sh.last(), s.want)
		}
	}

	st := editor.Snapshot()
	if st.CardName != " Fire Drake " {
		t.Errorf("name = %q, want %q", st.CardName, " Fire Drake ")
	}
	if st.CardDescription != "  two  spaces  " {
		t.Errorf("description = %q, want %q", st.CardDescription, "  two  spaces  ")
	}

	if err := h.HandleCommand(ctx, "name "); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sh.last(), "Name cleared") || editor.Snapshot().CardName != "" {
		t.Errorf("name not cleared: reply %q, name %q", sh.last(), editor.Snapshot().CardName)
	}
}

// TestHandleCommandAcceptsHugeZoom renders a zoomed-in photo without exhausting memory.
func TestHandleCommandAcceptsHugeZoom(t *testing.T) {
	h, sh, editor := newTestHandler(t, 10<<20)
	ctx := context.Background()

	if err := h.HandleCommand(ctx, "upload "+writePNG(t, 40, 40)); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if err := h.HandleCommand(ctx, "zoom 1000000"); err != nil {
		t.Fatalf("zoom: %v", err)
	}
	if !strings.Contains(sh.last(), "Zoom set to 1e+06") {
		t.Errorf("reply = %q", sh.last())
	}
	if got := editor.Snapshot().ImageZoom; got != 1e6 {
		t.Errorf("zoom = %v", got)
	}
}
