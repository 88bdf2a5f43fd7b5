// Package desktop provides the SDL2 window and OpenGL 4.1 device backend.
// Importing it registers the backend used by rad.New:
//
//	import _ "github.com/Faultbox/rad-engine/pkg/rad/desktop"
package desktop

import (
	"fmt"

	"github.com/Faultbox/rad-engine/internal/engine/opengl"
	"github.com/Faultbox/rad-engine/internal/engine/window"
	"github.com/Faultbox/rad-engine/pkg/platform"
	"github.com/Faultbox/rad-engine/pkg/rad"
)

func init() {
	rad.RegisterBackend(Open)
}

// Open creates an SDL window with an OpenGL context and a device drawing
// to it. The caller's goroutine must stay on the main thread.
func Open(opts platform.WindowOptions) (rad.Platform, error) {
	win, err := window.New(opts)
	if err != nil {
		return rad.Platform{}, err
	}

	w, h := win.Size()
	dev, err := opengl.New(win.SwapBuffers, w, h)
	if err != nil {
		win.Close()
		return rad.Platform{}, fmt.Errorf("create OpenGL device: %w", err)
	}

	return rad.Platform{
		Window: win,
		Loop:   win,
		Device: dev,
		Close:  win.Close,
	}, nil
}
