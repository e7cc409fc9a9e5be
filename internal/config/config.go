// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Viewer      ViewerConfig      `yaml:"viewer"`
	Interaction InteractionConfig `yaml:"interaction"`
	Audio       AudioConfig       `yaml:"audio"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ViewerConfig holds display and rendering settings.
type ViewerConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
	Background string `yaml:"background"` // clear color, named or hex
	Model      string `yaml:"model"`      // model opened at startup

	// ScreenshotFormat is "png" or "bmp".
	ScreenshotFormat string `yaml:"screenshot_format"`
}

// InteractionConfig holds mesh interactivity settings.
type InteractionConfig struct {
	// Meshes is a comma-separated allow-list of interactive mesh names.
	// Empty makes every mesh interactive.
	Meshes      string `yaml:"meshes"`
	HoverColor  string `yaml:"hover_color"`
	ClickColor  string `yaml:"click_color"`
	NormalColor string `yaml:"normal_color"`
	Debug       bool   `yaml:"debug"`
}

// AudioConfig holds feedback sound settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float32 `yaml:"master_volume"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			FPSLimit:         0,
			Background:       "#1E2430",
			ScreenshotFormat: "png",
		},
		Interaction: InteractionConfig{
			Meshes:      "",
			HoverColor:  "yellow",
			ClickColor:  "red",
			NormalColor: "white",
			Debug:       true,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
