// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// DefaultVertexShader is the vertex shader for the default material.
//
//go:embed default.vert
var DefaultVertexShader string

// DefaultFragmentShader is the fragment shader for the default material.
//
//go:embed default.frag
var DefaultFragmentShader string
