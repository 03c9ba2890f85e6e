package mobile

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"schemecard/internal/config"
	"schemecard/internal/export"
	"schemecard/internal/files"
	"schemecard/internal/logging"
	"schemecard/internal/services"
)

// CardEditor exposes the editor to gomobile bindings. Methods take and
// return only strings, numbers and byte slices.
type CardEditor struct {
	mu     sync.Mutex
	editor *services.EditorService
}

func NewCardEditor() *CardEditor {
	return &CardEditor{}
}

// Start loads assets from assetsDir and prepares a blank card. Exports
// written with ExportFile go to outputDir.
func (ce *CardEditor) Start(assetsDir, outputDir string) string {
	ce.mu.Lock()
	defer ce.mu.Unlock()

	if ce.editor != nil {
		return "Editor already started"
	}

	logger := logging.New(os.Stderr, os.Getenv("LOG_LEVEL"), false)

	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Sprintf("Error loading config: %v", err)
	}
	cfg.AssetsDir = assetsDir
	cfg.OutputDir = outputDir

	assets := files.NewAssetLoader(
		cfg.AssetsDir,
		cfg.TemplateFile,
		map[string]string{
			config.FamilyTitle: cfg.TitleFontFile,
			config.FamilyBody:  cfg.BodyFontFile,
		},
		logger,
	).Load()

	editor, err := services.NewEditorService(cfg, assets, files.NewLocalFileManager(cfg.MaxFileSize), logger)
	if err != nil {
		return fmt.Sprintf("Error creating editor: %v", err)
	}
	ce.editor = editor

	return "Editor started"
}

func (ce *CardEditor) Stop() {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	if ce.editor != nil {
		ce.editor.Close()
		ce.editor = nil
	}
}

// UploadImage installs raw image bytes. It returns an empty string on
// success, otherwise a message for the user.
func (ce *CardEditor) UploadImage(data []byte) string {
	return ce.run(func(e *services.EditorService) error { return e.UploadBytes(data) })
}

func (ce *CardEditor) SetName(name string) string {
	return ce.run(func(e *services.EditorService) error { return e.SetName(name) })
}

func (ce *CardEditor) SetDescription(desc string) string {
	return ce.run(func(e *services.EditorService) error { return e.SetDescription(desc) })
}

func (ce *CardEditor) SetZoom(zoom float64) string {
	return ce.run(func(e *services.EditorService) error { return e.SetZoom(zoom) })
}

func (ce *CardEditor) SetPan(x, y float64) string {
	return ce.run(func(e *services.EditorService) error { return e.SetPan(x, y) })
}

func (ce *CardEditor) Reset() string {
	return ce.run(func(e *services.EditorService) error { return e.ResetAdjustments() })
}

// Preview returns the current card as PNG, or nil before Start.
func (ce *CardEditor) Preview() []byte {
	e := ce.current()
	if e == nil {
		return nil
	}
	data, err := e.Preview()
	if err != nil {
		return nil
	}
	return data
}

// ExportBytes encodes the card as "jpg" or "png".
func (ce *CardEditor) ExportBytes(format string) []byte {
	e := ce.current()
	if e == nil {
		return nil
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil
	}
	data, err := e.ExportBytes(f)
	if err != nil {
		return nil
	}
	return data
}

// ExportFile saves the card to the output directory and returns the path,
// or an empty string on failure.
func (ce *CardEditor) ExportFile(format string) string {
	e := ce.current()
	if e == nil {
		return ""
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return ""
	}
	path, err := e.Export(f)
	if err != nil {
		return ""
	}
	return path
}

// ExportStatus is one of ready, preparing, done or failed.
func (ce *CardEditor) ExportStatus(format string) string {
	e := ce.current()
	f, err := export.ParseFormat(format)
	if e == nil || err != nil {
		return export.StatusReady.String()
	}
	return e.ExportStatus(f).String()
}

func (ce *CardEditor) current() *services.EditorService {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	return ce.editor
}

func (ce *CardEditor) run(fn func(*services.EditorService) error) string {
	e := ce.current()
	if e == nil {
		return "Editor not started"
	}
	if err := fn(e); err != nil {
		return userMessage(err)
	}
	return ""
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, files.ErrNotImage):
		return "Please choose an image file"
	case errors.Is(err, files.ErrTooLarge):
		return "That file is too large"
	case errors.Is(err, files.ErrDecode):
		return "Could not read that image"
	case errors.Is(err, services.ErrInvalidZoom):
		return "Zoom must be at least 1"
	case errors.Is(err, services.ErrInvalidOffset):
		return "Offsets must be finite numbers"
	}
	return fmt.Sprintf("Error: %v", err)
}
