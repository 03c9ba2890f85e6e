package files

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

type fontSpec struct {
	family string
	path   string
}

type AssetLoader struct {
	templatePath string
	fonts        []fontSpec
	logger       *slog.Logger
}

func NewAssetLoader(assetsDir, templateFile string, fonts map[string]string, logger *slog.Logger) *AssetLoader {
	specs := make([]fontSpec, 0, len(fonts))
	for family, file := range fonts {
		specs = append(specs, fontSpec{family: family, path: filepath.Join(assetsDir, file)})
	}

	return &AssetLoader{
		templatePath: filepath.Join(assetsDir, templateFile),
		fonts:        specs,
		logger:       logger,
	}
}

func openImage(path string) (image.Image, error) {
	return imaging.Open(path)
}

// Load reads the fonts and the template concurrently and waits for both.
// Failures are logged and leave the corresponding field empty.
func (l *AssetLoader) Load() *Assets {
	assets := &Assets{}

	var g errgroup.Group
	g.Go(func() error {
		fonts, err := l.loadFonts()
		if err != nil {
			l.logger.Warn("font loading failed, using fallback fonts", "error", err)
			return nil
		}
		assets.Fonts = fonts
		l.logger.Info("fonts loaded", "count", len(fonts))
		return nil
	})
	g.Go(func() error {
		tpl, err := openImage(l.templatePath)
		if err != nil {
			l.logger.Warn("template not loaded, rendering without frame", "path", l.templatePath, "error", err)
			return nil
		}
		assets.Template = tpl
		b := tpl.Bounds()
		l.logger.Info("template loaded", "width", b.Dx(), "height", b.Dy())
		return nil
	})
	_ = g.Wait()

	return assets
}

// loadFonts is all-or-nothing: if any font fails, none are returned.
func (l *AssetLoader) loadFonts() ([]FontAsset, error) {
	out := make([]FontAsset, len(l.fonts))

	var g errgroup.Group
	for i, spec := range l.fonts {
		g.Go(func() error {
			data, err := os.ReadFile(spec.path)
			if err != nil {
				return fmt.Errorf("read font %s: %w", spec.family, err)
			}
			out[i] = FontAsset{Family: spec.family, Data: data}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
