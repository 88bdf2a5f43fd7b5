package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

// restoreDefault puts the package back on the stderr logger after a test.
func restoreDefault(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { useDefault(os.Stderr) })
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(data)
}

func TestDefaultLoggerBeforeInit(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	useDefault(&buf)

	Info("engine ready")
	Debug("not shown")
	Sync()

	out := buf.String()
	if !strings.Contains(out, "engine ready") {
		t.Errorf("info message missing from default output: %q", out)
	}
	if strings.Contains(out, "not shown") {
		t.Errorf("default logger should drop debug messages: %q", out)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("default console output should be coloured: %q", out)
	}
}

func TestInitWriterIsPlain(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	InitWriter("info", &buf)

	Warn("low memory")
	Sync()

	out := buf.String()
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "low memory") {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("writer output should have no colour codes: %q", out)
	}
}

func TestLevelNames(t *testing.T) {
	restoreDefault(t)

	tests := []struct {
		level   string
		enabled zapcore.Level
		dropped zapcore.Level
	}{
		{"debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"info", zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", zapcore.ErrorLevel, zapcore.WarnLevel},
		{"verbose", zapcore.InfoLevel, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			InitWriter(tt.level, &buf)

			if !Log.Core().Enabled(tt.enabled) {
				t.Errorf("level %q should enable %s", tt.level, tt.enabled)
			}
			if Log.Core().Enabled(tt.dropped) {
				t.Errorf("level %q should drop %s", tt.level, tt.dropped)
			}
		})
	}
}

func TestSetLevelAppliesToEveryCore(t *testing.T) {
	restoreDefault(t)
	logFile := filepath.Join(t.TempDir(), "rad.log")

	if err := InitWithFileConfig("debug", FileConfig{Path: logFile, MaxSizeMB: 1}, true); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	Debug("before")
	SetLevel("error")
	Warn("after")

	if Log.Core().Enabled(zapcore.WarnLevel) {
		t.Error("no core should accept warnings after SetLevel(error)")
	}
	out := readLog(t, logFile)
	if !strings.Contains(out, "before") {
		t.Errorf("debug line missing before SetLevel: %q", out)
	}
	if strings.Contains(out, "after") {
		t.Errorf("warning written after SetLevel(error): %q", out)
	}
}

func TestSetLevelKeepsNamedLoggers(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	InitWriter("info", &buf)

	log := Named("sdl")
	log.Debug("hidden")
	SetLevel("debug")
	log.Debug("shown")
	Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("SetLevel did not reach a logger created before it")
	}
}

func TestNamedTagInFileOutput(t *testing.T) {
	restoreDefault(t)
	logFile := filepath.Join(t.TempDir(), "rad.log")

	if err := InitWithFileConfig("info", DefaultFileConfig(logFile), false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	Named("OpenGL4").Error("draw failed")

	out := readLog(t, logFile)
	for _, want := range []string{"ERROR", "OpenGL4", "draw failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("file output missing %q: %q", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("file output should have no colour codes: %q", out)
	}
}

func TestInitWritesLogFile(t *testing.T) {
	restoreDefault(t)
	logFile := filepath.Join(t.TempDir(), "logs", "rad.log")

	if err := Init("info", logFile); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	Sugar.Infof("loaded %d meshes", 3)

	if out := readLog(t, logFile); !strings.Contains(out, "loaded 3 meshes") {
		t.Errorf("log file missing message: %q", out)
	}
}
