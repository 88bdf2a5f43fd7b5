// Package main is a spinning-mesh demo for the Rad engine.
package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/rad-engine/internal/config"
	"github.com/Faultbox/rad-engine/internal/logger"
	"github.com/Faultbox/rad-engine/pkg/mesh"
	"github.com/Faultbox/rad-engine/pkg/rad"
	_ "github.com/Faultbox/rad-engine/pkg/rad/desktop"
)

//go:embed assets/cube.obj
var cubeOBJ string

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Rad Engine Demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	builders, err := loadModels(context.Background(), cfg.Assets.Models)
	if err != nil {
		logger.Fatal("failed to load models", zap.Error(err))
	}

	app := rad.NewWithWindow(cfg.WindowOptions())
	if err := setupScene(app, &cfg.Scene, builders); err != nil {
		logger.Fatal("failed to build scene", zap.Error(err))
	}

	app.Run()
}

// loadModels parses the configured OBJ files, or the built-in cube when
// none are configured.
func loadModels(ctx context.Context, paths []string) ([]*mesh.Builder, error) {
	if len(paths) == 0 {
		b, err := mesh.FromOBJ(cubeOBJ)
		if err != nil {
			return nil, err
		}
		return []*mesh.Builder{b}, nil
	}
	return mesh.LoadOBJFiles(ctx, paths...)
}
