// Package mesh turns model files into GPU vertex/index buffers.
package mesh

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/rad-engine/pkg/assets"
	"github.com/Faultbox/rad-engine/pkg/formats"
	"github.com/Faultbox/rad-engine/pkg/gpu"
)

// MaxImplicitVertices is the largest vertex count that can be drawn
// without explicit indices. Implicit indices are 16-bit.
const MaxImplicitVertices = math.MaxUint16 + 1

// ErrTooManyVertices is returned by Upload when a builder without indices
// has more vertices than 16-bit implicit indices can address.
var ErrTooManyVertices = errors.New("too many vertices for implicit 16-bit indices")

// Mesh is the component attached to drawable entities. It names uploaded
// buffers in the application's mesh registry.
type Mesh struct {
	Handle assets.Handle
}

// Builder holds CPU-side geometry. A nil Indices slice means the vertices
// form an implicit triangle list.
type Builder struct {
	Vertices []gpu.Vertex
	Indices  []uint16
}

// FromOBJ parses an OBJ document into a builder with one vertex per
// triangulated face corner. Faces without normals get a flat face normal.
func FromOBJ(text string) (*Builder, error) {
	obj, err := formats.ParseOBJ(text)
	if err != nil {
		return nil, fmt.Errorf("parse OBJ: %w", err)
	}
	return FromParsed(obj), nil
}

// FromParsed converts an already parsed OBJ document.
func FromParsed(obj *formats.OBJ) *Builder {
	tris := obj.Triangles()
	b := &Builder{Vertices: make([]gpu.Vertex, len(tris))}

	for i := 0; i+2 < len(tris); i += 3 {
		flat := faceNormal(tris[i].Position, tris[i+1].Position, tris[i+2].Position)
		for j := 0; j < 3; j++ {
			src := tris[i+j]
			n := src.Normal
			if n == ([3]float32{}) {
				n = flat
			}
			b.Vertices[i+j] = gpu.Vertex{Position: src.Position, Normal: n, UV: src.UV}
		}
	}
	return b
}

// FromOBJFile reads and parses an OBJ file.
func FromOBJFile(path string) (*Builder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	b, err := FromOBJ(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// LoadOBJFiles parses several OBJ files concurrently. Results are in the
// order of paths. Parsing is CPU only; call Upload on the GPU thread.
func LoadOBJFiles(ctx context.Context, paths ...string) ([]*Builder, error) {
	out := make([]*Builder, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := FromOBJFile(path)
			if err != nil {
				return err
			}
			out[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// TriangleCount returns the number of triangles the builder draws.
func (b *Builder) TriangleCount() int {
	if b.Indices != nil {
		return len(b.Indices) / 3
	}
	return len(b.Vertices) / 3
}

// Upload creates GPU buffers for the builder's geometry.
func (b *Builder) Upload(device gpu.Device) (gpu.Buffers, error) {
	if b.Indices == nil && len(b.Vertices) > MaxImplicitVertices {
		return nil, fmt.Errorf("%d vertices: %w", len(b.Vertices), ErrTooManyVertices)
	}
	buf, err := device.CreateMesh(b.Vertices, b.Indices, gpu.TrianglesList)
	if err != nil {
		return nil, fmt.Errorf("upload mesh: %w", err)
	}
	return buf, nil
}

func faceNormal(a, b, c [3]float32) [3]float32 {
	e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	l := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if l < 1e-8 {
		return [3]float32{}
	}
	return [3]float32{n[0] / l, n[1] / l, n[2] / l}
}
