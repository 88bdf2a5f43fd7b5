// Package config handles application configuration loading and management.
// Files may be YAML or TOML; the format is chosen by extension.
package config

import "github.com/Faultbox/rad-engine/pkg/platform"

// Config holds all application settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Scene   SceneConfig   `yaml:"scene" toml:"scene"`
	Assets  AssetsConfig  `yaml:"assets" toml:"assets"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
}

// SceneConfig holds settings for the demo scene.
type SceneConfig struct {
	ClearColour   [4]float32 `yaml:"clear_colour" toml:"clear_colour"`
	BaseColour    [3]float32 `yaml:"base_colour" toml:"base_colour"`
	LightColour   [3]float32 `yaml:"light_colour" toml:"light_colour"`
	Shading       bool       `yaml:"shading" toml:"shading"`
	RotationSpeed float32    `yaml:"rotation_speed" toml:"rotation_speed"` // radians per second
	CameraZ       float32    `yaml:"camera_z" toml:"camera_z"`
}

// AssetsConfig holds model file paths.
type AssetsConfig struct {
	Models []string `yaml:"models" toml:"models"` // OBJ files loaded at startup
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	win := platform.DefaultWindowOptions()
	return &Config{
		Window: WindowConfig{
			Title:      win.Title,
			Width:      win.Width,
			Height:     win.Height,
			Fullscreen: false,
			VSync:      false,
		},
		Scene: SceneConfig{
			ClearColour:   [4]float32{0, 0, 0.2, 1},
			BaseColour:    [3]float32{1, 1, 1},
			LightColour:   [3]float32{1, 1, 1},
			Shading:       true,
			RotationSpeed: 6,
			CameraZ:       3,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// WindowOptions returns the window settings in the form the application
// driver takes.
func (c *Config) WindowOptions() platform.WindowOptions {
	return platform.WindowOptions{
		Title:      c.Window.Title,
		Width:      c.Window.Width,
		Height:     c.Window.Height,
		Fullscreen: c.Window.Fullscreen,
		VSync:      c.Window.VSync,
	}
}
