package services

import (
	"context"
	"errors"
	"fmt"
	stdimage "image"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"schemecard/internal/config"
	"schemecard/internal/export"
	"schemecard/internal/files"
	"schemecard/internal/image"
	"schemecard/internal/storage"
)

var (
	ErrInvalidZoom   = errors.New("zoom must be a number of at least 1")
	ErrInvalidOffset = errors.New("offset must be a finite number")
	ErrExportBusy    = errors.New("export already in progress")
)

// EditorService owns the application state and the card canvas. Every
// mutation re-renders the whole card before returning.
type EditorService struct {
	mu sync.Mutex

	card        config.CardConfig
	state       *storage.ApplicationState
	compositor  *image.Compositor
	canvas      image.Canvas
	fileManager files.FileManager
	maxFileSize int64
	outputDir   string
	indicators  map[export.Format]*export.Indicator
	logger      *slog.Logger

	now func() time.Time
}

func NewEditorService(
	cfg *config.Config,
	assets *files.Assets,
	fileManager files.FileManager,
	logger *slog.Logger,
) (*EditorService, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	fonts, err := image.NewFontBook()
	if err != nil {
		return nil, err
	}

	state := storage.NewApplicationState()
	if assets != nil {
		for _, f := range assets.Fonts {
			if err := fonts.Register(f.Family, f.Data); err != nil {
				logger.Warn("font rejected, using fallback", "family", f.Family, "error", err)
			}
		}
		state.SetTemplate(assets.Template)
	}

	s := &EditorService{
		card:        cfg.Card,
		state:       state,
		compositor:  image.NewCompositor(fonts),
		canvas:      image.NewCanvas(cfg.Card.Width, cfg.Card.Height, image.NewProcessor()),
		fileManager: fileManager,
		maxFileSize: cfg.MaxFileSize,
		outputDir:   cfg.OutputDir,
		indicators: map[export.Format]*export.Indicator{
			export.JPEG: export.NewIndicator(cfg.ExportResetDelay),
			export.PNG:  export.NewIndicator(cfg.ExportResetDelay),
		},
		logger: logger,
		now:    time.Now,
	}

	if err := s.Render(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *EditorService) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked()
}

func (s *EditorService) renderLocked() error {
	start := time.Now()
	if err := s.compositor.Render(s.state, s.card, s.canvas); err != nil {
		s.logger.Error("render failed", "error", err)
		return fmt.Errorf("render: %w", err)
	}
	s.logger.Debug("card rendered", "took", time.Since(start))
	return nil
}

func (s *EditorService) mutate(fn func(*storage.ApplicationState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
	return s.renderLocked()
}

// Upload reads ref through the file manager and installs it as the user
// image. A rejected upload leaves the state as it was.
func (s *EditorService) Upload(ctx context.Context, ref string) error {
	data, err := s.fileManager.ReadUpload(ctx, ref)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	return s.UploadBytes(data)
}

func (s *EditorService) UploadBytes(data []byte) error {
	mime, err := files.ValidateUpload(data, s.maxFileSize)
	if err != nil {
		return err
	}

	img, err := files.DecodeUpload(data)
	if err != nil {
		return err
	}

	b := img.Bounds()
	s.logger.Info("image uploaded", "mime", mime, "bytes", len(data), "width", b.Dx(), "height", b.Dy())

	return s.mutate(func(st *storage.ApplicationState) {
		st.ReplaceUserImage(img)
	})
}

func (s *EditorService) SetName(name string) error {
	return s.mutate(func(st *storage.ApplicationState) {
		st.CardName = name
	})
}

func (s *EditorService) SetDescription(desc string) error {
	return s.mutate(func(st *storage.ApplicationState) {
		st.CardDescription = desc
	})
}

func (s *EditorService) SetZoom(zoom float64) error {
	if math.IsNaN(zoom) || math.IsInf(zoom, 0) || zoom < storage.MinZoom {
		return fmt.Errorf("%w: got %v", ErrInvalidZoom, zoom)
	}
	return s.mutate(func(st *storage.ApplicationState) {
		st.ImageZoom = zoom
	})
}

func (s *EditorService) SetOffsetX(x float64) error {
	if !finite(x) {
		return fmt.Errorf("%w: got %v", ErrInvalidOffset, x)
	}
	return s.mutate(func(st *storage.ApplicationState) {
		st.ImageOffsetX = x
	})
}

func (s *EditorService) SetOffsetY(y float64) error {
	if !finite(y) {
		return fmt.Errorf("%w: got %v", ErrInvalidOffset, y)
	}
	return s.mutate(func(st *storage.ApplicationState) {
		st.ImageOffsetY = y
	})
}

func (s *EditorService) SetPan(x, y float64) error {
	if !finite(x) || !finite(y) {
		return fmt.Errorf("%w: got (%v, %v)", ErrInvalidOffset, x, y)
	}
	return s.mutate(func(st *storage.ApplicationState) {
		st.ImageOffsetX = x
		st.ImageOffsetY = y
	})
}

func (s *EditorService) ResetAdjustments() error {
	return s.mutate(func(st *storage.ApplicationState) {
		st.ResetAdjustments()
	})
}

func (s *EditorService) Snapshot() storage.ApplicationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// Image returns a copy of the current card.
func (s *EditorService) Image() stdimage.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	return imaging.Clone(s.canvas.Image())
}

func (s *EditorService) ExportStatus(f export.Format) export.Status {
	if ind, ok := s.indicators[f]; ok {
		return ind.Status()
	}
	return export.StatusReady
}

func (s *EditorService) ExportBytes(f export.Format) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return export.Encode(s.canvas.Image(), f)
}

// Preview is the current card as PNG.
func (s *EditorService) Preview() ([]byte, error) {
	return s.ExportBytes(export.PNG)
}

// Export encodes the card and writes it to the output directory, returning
// the file path. Nothing is left behind when encoding or writing fails.
func (s *EditorService) Export(f export.Format) (path string, err error) {
	ind, ok := s.indicators[f]
	if !ok {
		return "", fmt.Errorf("%w: %v", export.ErrUnsupportedFormat, f)
	}
	if !ind.TryStart() {
		return "", ErrExportBusy
	}
	defer func() { ind.Finish(err) }()

	data, err := s.ExportBytes(f)
	if err != nil {
		s.logger.Error("export encode failed", "format", f, "error", err)
		return "", err
	}

	name := s.Snapshot().CardName
	path = filepath.Join(s.outputDir, export.Filename(name, f, s.now()))
	if err := writeFileAtomic(path, data); err != nil {
		s.logger.Error("export write failed", "path", path, "error", err)
		return "", fmt.Errorf("write export: %w", err)
	}

	s.logger.Info("card exported", "path", path, "bytes", len(data))
	return path, nil
}

// Close cancels pending indicator reverts.
func (s *EditorService) Close() {
	for _, ind := range s.indicators {
		ind.Stop()
	}
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
