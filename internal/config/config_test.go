package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Window defaults
	if cfg.Window.Width != 480 {
		t.Errorf("expected width 480, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 480 {
		t.Errorf("expected height 480, got %d", cfg.Window.Height)
	}
	if cfg.Window.Title != "Rad Engine Test" {
		t.Errorf("expected title 'Rad Engine Test', got %s", cfg.Window.Title)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Scene defaults
	if cfg.Scene.ClearColour != [4]float32{0, 0, 0.2, 1} {
		t.Errorf("unexpected clear colour %v", cfg.Scene.ClearColour)
	}
	if !cfg.Scene.Shading {
		t.Error("expected shading to be enabled by default")
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestWindowOptions(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = 1024
	cfg.Window.VSync = true

	opts := cfg.WindowOptions()
	if opts.Width != 1024 || opts.Height != 480 || !opts.VSync || opts.Title != cfg.Window.Title {
		t.Errorf("unexpected window options %+v", opts)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  title: "Spinning Monkey"
  width: 1920
  height: 1080
  fullscreen: true
  vsync: true

scene:
  clear_colour: [0.1, 0.2, 0.3, 1]
  shading: false
  rotation_speed: 2.5

assets:
  models:
    - models/monkey.obj
    - models/cube.obj

logging:
  level: "debug"
  log_file: "rad.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Title != "Spinning Monkey" {
		t.Errorf("expected title 'Spinning Monkey', got %s", cfg.Window.Title)
	}
	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Scene.ClearColour != [4]float32{0.1, 0.2, 0.3, 1} {
		t.Errorf("unexpected clear colour %v", cfg.Scene.ClearColour)
	}
	if cfg.Scene.Shading {
		t.Error("expected shading to be false")
	}
	if cfg.Scene.RotationSpeed != 2.5 {
		t.Errorf("expected rotation speed 2.5, got %f", cfg.Scene.RotationSpeed)
	}
	// Unset keys keep their defaults
	if cfg.Scene.CameraZ != 3 {
		t.Errorf("expected default camera z 3, got %f", cfg.Scene.CameraZ)
	}
	if len(cfg.Assets.Models) != 2 || cfg.Assets.Models[0] != "models/monkey.obj" {
		t.Errorf("unexpected models %v", cfg.Assets.Models)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "rad.log" {
		t.Errorf("expected log file 'rad.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromTOMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
[window]
title = "TOML Window"
width = 800

[scene]
base_colour = [1.0, 0.0, 0.0]

[assets]
models = ["a.obj"]

[logging]
level = "warn"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Title != "TOML Window" || cfg.Window.Width != 800 {
		t.Errorf("unexpected window %+v", cfg.Window)
	}
	if cfg.Window.Height != 480 {
		t.Errorf("expected default height 480, got %d", cfg.Window.Height)
	}
	if cfg.Scene.BaseColour != [3]float32{1, 0, 0} {
		t.Errorf("unexpected base colour %v", cfg.Scene.BaseColour)
	}
	if len(cfg.Assets.Models) != 1 || cfg.Assets.Models[0] != "a.obj" {
		t.Errorf("unexpected models %v", cfg.Assets.Models)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "invalid.yaml",
			content: `
window:
  width: not a number
  invalid syntax here
`,
		},
		{
			name:    "toml",
			file:    "invalid.toml",
			content: "[window\nwidth = ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			cfg := Default()
			if err := loadFromFile(cfg, configPath); err == nil {
				t.Error("expected error loading invalid config, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			cfg := Default()
			cfg.Window.Title = "Saved"
			cfg.Assets.Models = []string{"x.obj"}
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo failed: %v", err)
			}

			loaded := Default()
			if err := loadFromFile(loaded, path); err != nil {
				t.Fatalf("failed to reload: %v", err)
			}
			if loaded.Window.Title != "Saved" {
				t.Errorf("expected title 'Saved', got %s", loaded.Window.Title)
			}
			if len(loaded.Assets.Models) != 1 || loaded.Assets.Models[0] != "x.obj" {
				t.Errorf("unexpected models %v", loaded.Assets.Models)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// A TOML file in the current directory is found too
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[window]\nwidth = 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if filepath.Base(path) != "config.toml" {
		t.Errorf("expected to find config.toml, got %q", path)
	}

	// YAML wins when both exist
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	path = findConfigFile()
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("expected config.yaml to take priority, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "title flag",
			setup: func() { *flagTitle = "From Flag" },
			verify: func(cfg *Config) {
				if cfg.Window.Title != "From Flag" {
					t.Errorf("expected title 'From Flag', got %s", cfg.Window.Title)
				}
			},
			teardown: func() { *flagTitle = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name:  "vsync flag",
			setup: func() { *flagVSync = true },
			verify: func(cfg *Config) {
				if !cfg.Window.VSync {
					t.Error("expected vsync to be true with vsync flag")
				}
			},
			teardown: func() { *flagVSync = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Window.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Window.Width)
				}
				if cfg.Window.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}
