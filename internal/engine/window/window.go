// Package window handles SDL2 window and OpenGL context creation, and runs
// the platform event loop on top of SDL's event queue.
package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/rad-engine/internal/engine/input"
	"github.com/Faultbox/rad-engine/internal/logger"
	"github.com/Faultbox/rad-engine/pkg/platform"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("window closed")

// waitTimeoutMs bounds how long a Wait control flow blocks, so redraws
// requested from outside an event still get delivered.
const waitTimeoutMs = 100

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	opts      platform.WindowOptions
	sdlWindow *sdl.Window
	glContext sdl.GLContext

	redrawPending bool
	log           *zap.Logger
}

// New creates a new window with OpenGL context.
func New(opts platform.WindowOptions) (*Window, error) {
	w := &Window{
		opts: opts,
		log:  logger.Named("sdl"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if opts.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		opts.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(opts.Width),
		int32(opts.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if opts.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		_ = sdl.GLSetSwapInterval(0)
	}

	w.log.Info("window created",
		zap.String("title", opts.Title),
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Bool("fullscreen", opts.Fullscreen),
		zap.Bool("vsync", opts.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
		w.glContext = nil
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
		w.sdlWindow = nil
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	if w.sdlWindow != nil {
		w.sdlWindow.GLSwap()
	}
}

// Size returns the drawable size in pixels, which differs from the window
// size on high-DPI displays.
func (w *Window) Size() (int, int) {
	if w.sdlWindow == nil {
		return w.opts.Width, w.opts.Height
	}
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// Title returns the window title.
func (w *Window) Title() string {
	return w.opts.Title
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.opts.Title = title
	if w.sdlWindow != nil {
		w.sdlWindow.SetTitle(title)
	}
}

// RequestRedraw schedules one RedrawRequested event.
func (w *Window) RequestRedraw() {
	w.redrawPending = true
}

// Run delivers events to handler until it exits. Each iteration drains the
// SDL queue, delivers a pending redraw, then sends AboutToWait.
func (w *Window) Run(handler platform.Handler) error {
	if w.sdlWindow == nil {
		return ErrClosed
	}

	ctl := &platform.Control{}
	deliver := func(ev platform.Event) bool {
		if ev.Kind == platform.EventResized {
			// Report the drawable size so the viewport matches on high-DPI.
			ev.Width, ev.Height = w.Size()
		}
		handler(ev, ctl)
		return ctl.Exiting()
	}
	drain := func(first sdl.Event) (bool, bool) {
		busy := false
		for event := first; event != nil; event = sdl.PollEvent() {
			busy = true
			ev, ok := input.Translate(event)
			if !ok {
				continue
			}
			if ev.Kind == platform.EventRedrawRequested {
				w.redrawPending = true
				continue
			}
			if deliver(ev) {
				return busy, true
			}
		}
		return busy, false
	}

	for {
		busy, exit := drain(sdl.PollEvent())
		if exit {
			return nil
		}

		if w.redrawPending {
			w.redrawPending = false
			busy = true
			if deliver(platform.Event{Kind: platform.EventRedrawRequested}) {
				return nil
			}
		}

		if deliver(platform.Event{Kind: platform.EventAboutToWait}) {
			return nil
		}

		switch ctl.Flow() {
		case platform.Wait:
			if !w.redrawPending {
				if _, exit := drain(sdl.WaitEventTimeout(waitTimeoutMs)); exit {
					return nil
				}
			}
		case platform.Poll:
			if !busy && !w.redrawPending {
				sdl.Delay(1)
			}
		}
	}
}

var (
	_ platform.Window    = (*Window)(nil)
	_ platform.EventLoop = (*Window)(nil)
)
