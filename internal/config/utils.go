package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	LayoutCanonical = "canonical"
	LayoutLegacy    = "legacy"
)

func Load(logger *slog.Logger) (*Config, error) {
	cfg := &Config{
		AssetsDir:     getEnv(logger, "ASSETS_DIR", "./assets", parseString),
		TemplateFile:  getEnv(logger, "TEMPLATE_FILE", "images/card-template.png", parseString),
		TitleFontFile: getEnv(logger, "TITLE_FONT_FILE", "fonts/grand-arena.otf", parseString),
		BodyFontFile:  getEnv(logger, "BODY_FONT_FILE", "fonts/Poppins-Regular.otf", parseString),
		OutputDir:     getEnv(logger, "OUTPUT_DIR", ".", parseString),
		LayoutFile:    getEnv(logger, "LAYOUT_FILE", "", parseString),
		LayoutVariant: getEnv(logger, "CARD_LAYOUT", LayoutCanonical, parseVariant),

		MaxFileSize:      getEnv(logger, "MAX_FILE_SIZE", int64(10*1024*1024), parseInt),
		ExportResetDelay: getEnv(logger, "EXPORT_RESET_DELAY", 2*time.Second, time.ParseDuration),
	}

	base := DefaultCardConfig()
	if cfg.LayoutVariant == LayoutLegacy {
		base = LegacyCardConfig()
	}

	if cfg.LayoutFile == "" {
		cfg.Card = base
		return cfg, nil
	}

	card, err := LoadLayout(cfg.LayoutFile, base)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", cfg.LayoutFile, err)
	}
	cfg.Card = card
	logger.Info("card layout loaded", "file", cfg.LayoutFile, "variant", cfg.LayoutVariant)
	return cfg, nil
}

func getEnv[T any](logger *slog.Logger, key string, defaultValue T, parser func(string) (T, error)) T {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}

	parsed, err := parser(val)
	if err != nil {
		logger.Warn("invalid environment value, using default",
			"key", key, "value", val, "default", defaultValue)
		return defaultValue
	}

	return parsed
}

func parseString(val string) (string, error) {
	return val, nil
}

func parseInt(val string) (int64, error) {
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}

func parseVariant(val string) (string, error) {
	switch val {
	case LayoutCanonical, LayoutLegacy:
		return val, nil
	}
	return "", fmt.Errorf("unknown layout variant %q", val)
}
