package mesh

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Faultbox/rad-engine/pkg/formats"
	"github.com/Faultbox/rad-engine/pkg/gpu"
	"github.com/Faultbox/rad-engine/pkg/gpu/gputest"
)

const quadOBJ = `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`

func TestFromOBJ_Quad(t *testing.T) {
	b, err := FromOBJ(quadOBJ)
	if err != nil {
		t.Fatalf("FromOBJ failed: %v", err)
	}
	if len(b.Vertices) != 6 {
		t.Fatalf("expected 6 vertices, got %d", len(b.Vertices))
	}
	if b.Indices != nil {
		t.Error("indices should be absent")
	}
	if b.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", b.TriangleCount())
	}
	if b.Vertices[2].UV != [2]float32{1, 1} {
		t.Errorf("vertex 2 uv = %v", b.Vertices[2].UV)
	}
	// No normals in the file: counter-clockwise in XY faces +Z.
	for i, v := range b.Vertices {
		if v.Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d normal = %v, want flat +Z", i, v.Normal)
		}
	}
}

func TestFromOBJ_KeepsFileNormals(t *testing.T) {
	b, err := FromOBJ("v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 1 0 0\nf 1//1 2//1 3//1\n")
	if err != nil {
		t.Fatalf("FromOBJ failed: %v", err)
	}
	if b.Vertices[0].Normal != [3]float32{1, 0, 0} {
		t.Errorf("normal = %v, want file normal", b.Vertices[0].Normal)
	}
}

func TestFromOBJ_NoFaces(t *testing.T) {
	b, err := FromOBJ("v 0 0 0\n")
	if err != nil {
		t.Fatalf("FromOBJ failed: %v", err)
	}
	if len(b.Vertices) != 0 || b.Indices != nil {
		t.Errorf("expected empty builder, got %d vertices", len(b.Vertices))
	}

	dev := gputest.New()
	buf, err := b.Upload(dev)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if buf.VertexCount() != 0 || buf.IndexCount() != 0 {
		t.Errorf("expected empty buffers, got %d/%d", buf.VertexCount(), buf.IndexCount())
	}
}

func TestFromOBJ_Error(t *testing.T) {
	_, err := FromOBJ("f 1 2 3")
	if !errors.Is(err, formats.ErrInvalidOBJIndex) {
		t.Errorf("expected ErrInvalidOBJIndex, got %v", err)
	}
}

func TestFromParsed(t *testing.T) {
	obj, err := formats.ParseOBJ(quadOBJ)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if got := FromParsed(obj); len(got.Vertices) != 6 {
		t.Errorf("expected 6 vertices, got %d", len(got.Vertices))
	}
}

func TestUpload(t *testing.T) {
	b, err := FromOBJ(quadOBJ)
	if err != nil {
		t.Fatalf("FromOBJ failed: %v", err)
	}

	dev := gputest.New()
	buf, err := b.Upload(dev)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if buf.VertexCount() != 6 || buf.IndexCount() != 6 {
		t.Errorf("counts = %d/%d, want 6/6", buf.VertexCount(), buf.IndexCount())
	}
	if buf.Primitive() != gpu.TrianglesList {
		t.Errorf("primitive = %v, want triangles", buf.Primitive())
	}
	rec := dev.Meshes[0]
	for i, idx := range rec.Indices {
		if int(idx) != i {
			t.Errorf("implicit index %d = %d", i, idx)
		}
	}
}

func TestUpload_ExplicitIndices(t *testing.T) {
	b := &Builder{
		Vertices: make([]gpu.Vertex, 4),
		Indices:  []uint16{0, 1, 2, 0, 2, 3},
	}
	dev := gputest.New()
	buf, err := b.Upload(dev)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if buf.IndexCount() != 6 || buf.VertexCount() != 4 {
		t.Errorf("counts = %d/%d, want 4/6", buf.VertexCount(), buf.IndexCount())
	}
	if b.TriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", b.TriangleCount())
	}
}

func TestUpload_TooManyVertices(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder
		wantErr bool
	}{
		{"at limit", &Builder{Vertices: make([]gpu.Vertex, MaxImplicitVertices)}, false},
		{"over limit", &Builder{Vertices: make([]gpu.Vertex, MaxImplicitVertices+3)}, true},
		{"over limit with indices", &Builder{Vertices: make([]gpu.Vertex, MaxImplicitVertices+3), Indices: []uint16{0, 1, 2}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.Upload(gputest.New())
			if tt.wantErr && !errors.Is(err, ErrTooManyVertices) {
				t.Errorf("expected ErrTooManyVertices, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUpload_DeviceError(t *testing.T) {
	dev := gputest.New()
	dev.MeshErr = errors.New("out of memory")

	_, err := (&Builder{Vertices: make([]gpu.Vertex, 3)}).Upload(dev)
	if !errors.Is(err, dev.MeshErr) {
		t.Errorf("expected device error, got %v", err)
	}
}

func TestFromOBJFile(t *testing.T) {
	b, err := FromOBJFile(filepath.Join("testdata", "cube.obj"))
	if err != nil {
		t.Fatalf("FromOBJFile failed: %v", err)
	}
	if len(b.Vertices) != 36 {
		t.Errorf("expected 36 vertices, got %d", len(b.Vertices))
	}

	if _, err := FromOBJFile(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOBJFiles(t *testing.T) {
	cube := filepath.Join("testdata", "cube.obj")

	builders, err := LoadOBJFiles(context.Background(), cube, cube, cube)
	if err != nil {
		t.Fatalf("LoadOBJFiles failed: %v", err)
	}
	if len(builders) != 3 {
		t.Fatalf("expected 3 builders, got %d", len(builders))
	}
	for i, b := range builders {
		if b == nil || len(b.Vertices) != 36 {
			t.Errorf("builder %d not loaded", i)
		}
	}

	_, err = LoadOBJFiles(context.Background(), cube, filepath.Join("testdata", "broken.obj"))
	if !errors.Is(err, formats.ErrInvalidOBJIndex) {
		t.Errorf("expected ErrInvalidOBJIndex, got %v", err)
	}
}

func TestLoadOBJFiles_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadOBJFiles(ctx, filepath.Join("testdata", "cube.obj"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
