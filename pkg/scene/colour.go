// Package scene provides the components users attach to entities:
// transforms, cameras and lights, plus the per-frame baked snapshots the
// renderer builds from them.
package scene

import "github.com/go-gl/mathgl/mgl32"

// Colour is a linear RGB colour.
type Colour struct {
	R, G, B float32
}

// Common colours.
var (
	White       = Colour{1, 1, 1}
	Black       = Colour{0, 0, 0}
	Red         = Colour{1, 0, 0}
	Green       = Colour{0, 1, 0}
	Blue        = Colour{0, 0, 1}
	Transparent = Colour{0, 0, 0}
)

// Vec3 returns the colour as a shader vec3.
func (c Colour) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// RGBA is a colour with alpha, used for framebuffer clears.
type RGBA struct {
	R, G, B, A float32
}

// Array returns the colour as [r, g, b, a].
func (c RGBA) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}
