package formats

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrMalformedOBJ    = errors.New("malformed OBJ statement")
	ErrInvalidOBJIndex = errors.New("OBJ index out of range")
)

// OBJFaceVertex references one corner of a face. Indices are zero-based;
// -1 means the attribute was not given.
type OBJFaceVertex struct {
	Position int
	UV       int
	Normal   int
}

// OBJFace is a polygon with three or more corners.
type OBJFace struct {
	Corners  []OBJFaceVertex
	Object   string
	Material string
}

// OBJVertex is a fully resolved face corner.
type OBJVertex struct {
	Position [3]float32
	UV       [2]float32
	Normal   [3]float32
}

// OBJ represents a parsed Wavefront OBJ document.
type OBJ struct {
	Positions [][3]float32
	UVs       [][2]float32
	Normals   [][3]float32
	Faces     []OBJFace

	Objects      []string
	MaterialLibs []string
}

// ParseOBJ parses an OBJ document. Polygons are kept as written;
// Triangles fan-triangulates them.
func ParseOBJ(text string) (*OBJ, error) {
	obj := &OBJ{}

	var object, material string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			obj.Positions = append(obj.Positions, [3]float32{p[0], p[1], p[2]})

		case "vt":
			// The w component is optional and ignored; v defaults to 0.
			uv, err := parseFloats(fields[1:], 1)
			if err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
			var tc [2]float32
			tc[0] = uv[0]
			if len(uv) > 1 {
				tc[1] = uv[1]
			}
			obj.UVs = append(obj.UVs, tc)

		case "vn":
			n, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			obj.Normals = append(obj.Normals, [3]float32{n[0], n[1], n[2]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners: %w", lineNo, ErrMalformedOBJ)
			}
			face := OBJFace{
				Corners:  make([]OBJFaceVertex, 0, len(fields)-1),
				Object:   object,
				Material: material,
			}
			for _, ref := range fields[1:] {
				fv, err := obj.parseFaceVertex(ref)
				if err != nil {
					return nil, fmt.Errorf("line %d: face %q: %w", lineNo, ref, err)
				}
				face.Corners = append(face.Corners, fv)
			}
			obj.Faces = append(obj.Faces, face)

		case "o", "g":
			if len(fields) > 1 {
				object = strings.Join(fields[1:], " ")
				obj.Objects = append(obj.Objects, object)
			}

		case "usemtl":
			if len(fields) > 1 {
				material = fields[1]
			}

		case "mtllib":
			obj.MaterialLibs = append(obj.MaterialLibs, fields[1:]...)

		default:
			// s, l, p and vendor extensions are not needed for rendering.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	return obj, nil
}

// parseFaceVertex parses "v", "v/vt", "v//vn" or "v/vt/vn". Negative
// indices are relative to the elements defined so far.
func (o *OBJ) parseFaceVertex(ref string) (OBJFaceVertex, error) {
	parts := strings.Split(ref, "/")
	if len(parts) > 3 || parts[0] == "" {
		return OBJFaceVertex{}, ErrMalformedOBJ
	}

	fv := OBJFaceVertex{Position: -1, UV: -1, Normal: -1}
	var err error

	if fv.Position, err = resolveIndex(parts[0], len(o.Positions)); err != nil {
		return fv, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if fv.UV, err = resolveIndex(parts[1], len(o.UVs)); err != nil {
			return fv, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if fv.Normal, err = resolveIndex(parts[2], len(o.Normals)); err != nil {
			return fv, err
		}
	}
	return fv, nil
}

func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedOBJ, err)
	}
	switch {
	case n > 0 && n <= count:
		return n - 1, nil
	case n < 0 && -n <= count:
		return count + n, nil
	default:
		return 0, fmt.Errorf("%w: %d of %d", ErrInvalidOBJIndex, n, count)
	}
}

func parseFloats(fields []string, want int) ([]float32, error) {
	if len(fields) < want {
		return nil, fmt.Errorf("%w: need %d values, got %d", ErrMalformedOBJ, want, len(fields))
	}
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOBJ, err)
		}
		out = append(out, float32(v))
	}
	return out, nil
}

// TriangleCount returns the number of triangles after fan triangulation.
func (o *OBJ) TriangleCount() int {
	n := 0
	for _, f := range o.Faces {
		n += len(f.Corners) - 2
	}
	return n
}

// Triangles fan-triangulates every face and resolves each corner.
// Three OBJVertex values are returned per triangle. Missing UVs and normals
// are zero.
func (o *OBJ) Triangles() []OBJVertex {
	out := make([]OBJVertex, 0, o.TriangleCount()*3)
	for _, f := range o.Faces {
		for i := 1; i+1 < len(f.Corners); i++ {
			out = append(out,
				o.resolve(f.Corners[0]),
				o.resolve(f.Corners[i]),
				o.resolve(f.Corners[i+1]),
			)
		}
	}
	return out
}

func (o *OBJ) resolve(fv OBJFaceVertex) OBJVertex {
	var v OBJVertex
	v.Position = o.Positions[fv.Position]
	if fv.UV >= 0 {
		v.UV = o.UVs[fv.UV]
	}
	if fv.Normal >= 0 {
		v.Normal = o.Normals[fv.Normal]
	}
	return v
}

// Bounds returns the axis-aligned bounding box of all positions.
// ok is false when the document has no positions.
func (o *OBJ) Bounds() (lo, hi [3]float32, ok bool) {
	if len(o.Positions) == 0 {
		return lo, hi, false
	}
	lo, hi = o.Positions[0], o.Positions[0]
	for _, p := range o.Positions[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi, true
}
