package config

import "time"

type Config struct {
	AssetsDir     string `yaml:"assets_dir"`
	TemplateFile  string `yaml:"template_file"`
	TitleFontFile string `yaml:"title_font_file"`
	BodyFontFile  string `yaml:"body_font_file"`
	OutputDir     string `yaml:"output_dir"`
	LayoutFile    string `yaml:"layout_file"`
	LayoutVariant string `yaml:"layout_variant"`

	MaxFileSize      int64         `yaml:"max_file_size"`
	ExportResetDelay time.Duration `yaml:"export_reset_delay"`

	Card CardConfig `yaml:"card"`
}
