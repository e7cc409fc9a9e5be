package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagModel      = flag.String("model", "", "Path to a glTF model to open")
	flagMeshes     = flag.String("meshes", "", "Comma-separated interactive mesh names (default: all)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagMute       = flag.Bool("mute", false, "Disable audio feedback")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Interaction.Debug = true
	}
	if *flagModel != "" {
		cfg.Viewer.Model = *flagModel
	}
	if *flagMeshes != "" {
		cfg.Interaction.Meshes = *flagMeshes
	}
	if *flagWindowed {
		cfg.Viewer.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Viewer.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Viewer.Height = *flagHeight
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
}
