package mesh

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Well-known attribute names. Any other name is carried as a custom
// channel.
const (
	AttribPosition = "position"
	AttribNormal   = "normal"
	AttribColor    = "color"
	AttribTexcoord = "texcoord"

	// AttribIndices is reserved. An attribute with this name is never
	// uploaded as per-vertex data.
	AttribIndices = "indices"
)

// MaxIndexedVertices is the most vertices 16-bit indices can address.
const MaxIndexedVertices = 1 << 16

var (
	ErrNoVertices      = errors.New("mesh has no vertices")
	ErrMissingPosition = errors.New("mesh has no position attribute")
	ErrAttributeLength = errors.New("attribute length differs from vertex count")
	ErrComponentCount  = errors.New("attribute components must be 2, 3 or 4")
	ErrHeterogeneous   = errors.New("attribute elements differ in component count")
	ErrIndexOutOfRange = errors.New("index out of vertex range")
	ErrTooManyVertices = errors.New("too many vertices for 16-bit indices")
	ErrDrawCountRange  = errors.New("draw count exceeds the index buffer")
	ErrNotPrepared     = errors.New("mesh is not prepared")
)

// VertexData is a structure-of-arrays vertex set. Every attribute holds one
// 2, 3 or 4 component vector per vertex. Indices holds one index list per
// sub-mesh, drawn with the material at the same position.
type VertexData struct {
	Attributes map[string][][]float32
	Indices    [][]uint16
}

// NewVertexData returns vertex data with the given positions.
func NewVertexData(positions [][]float32) *VertexData {
	return &VertexData{Attributes: map[string][][]float32{AttribPosition: positions}}
}

// Set stores an attribute and returns d for chaining.
func (d *VertexData) Set(name string, values [][]float32) *VertexData {
	if d.Attributes == nil {
		d.Attributes = make(map[string][][]float32)
	}
	d.Attributes[name] = values
	return d
}

// VertexCount is the number of positions.
func (d *VertexData) VertexCount() int {
	return len(d.Attributes[AttribPosition])
}

// Names returns the attribute names in canonical order: position, normal,
// color, texcoord, then the rest sorted.
func (d *VertexData) Names() []string {
	var out, rest []string
	for _, name := range []string{AttribPosition, AttribNormal, AttribColor, AttribTexcoord} {
		if _, ok := d.Attributes[name]; ok {
			out = append(out, name)
		}
	}
	for name := range d.Attributes {
		switch name {
		case AttribPosition, AttribNormal, AttribColor, AttribTexcoord, AttribIndices:
			continue
		}
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// Validate checks the data can be packed and indexed.
func (d *VertexData) Validate() error {
	positions, ok := d.Attributes[AttribPosition]
	if !ok {
		return ErrMissingPosition
	}
	n := len(positions)
	if n == 0 {
		return ErrNoVertices
	}

	for _, name := range d.Names() {
		values := d.Attributes[name]
		if len(values) != n {
			return fmt.Errorf("%w: %s has %d, want %d", ErrAttributeLength, name, len(values), n)
		}
		size := len(values[0])
		if size < 2 || size > 4 {
			return fmt.Errorf("%w: %s has %d", ErrComponentCount, name, size)
		}
		for i, v := range values {
			if len(v) != size {
				return fmt.Errorf("%w: %s[%d] has %d, want %d", ErrHeterogeneous, name, i, len(v), size)
			}
		}
	}

	if len(d.Indices) > 0 && n > MaxIndexedVertices {
		return fmt.Errorf("%w: %d", ErrTooManyVertices, n)
	}
	for s, list := range d.Indices {
		for i, idx := range list {
			if int(idx) >= n {
				return fmt.Errorf("%w: sub-mesh %d index %d is %d, vertex count %d", ErrIndexOutOfRange, s, i, idx, n)
			}
		}
	}
	return nil
}

// ComponentCount infers an attribute's size from its first element: 2
// without z, 3 without w, 4 otherwise.
func ComponentCount(values [][]float32) int {
	if len(values) == 0 {
		return 0
	}
	switch n := len(values[0]); {
	case n >= 4:
		return 4
	case n == 3:
		return 3
	default:
		return 2
	}
}

// Vec2s converts vectors to attribute data, one 2 component element each.
func Vec2s(vs ...mgl32.Vec2) [][]float32 {
	out := make([][]float32, len(vs))
	for i, v := range vs {
		out[i] = []float32{v[0], v[1]}
	}
	return out
}

// Vec3s is Vec2s for 3 component vectors.
func Vec3s(vs ...mgl32.Vec3) [][]float32 {
	out := make([][]float32, len(vs))
	for i, v := range vs {
		out[i] = []float32{v[0], v[1], v[2]}
	}
	return out
}

// Vec4s is Vec2s for 4 component vectors.
func Vec4s(vs ...mgl32.Vec4) [][]float32 {
	out := make([][]float32, len(vs))
	for i, v := range vs {
		out[i] = []float32{v[0], v[1], v[2], v[3]}
	}
	return out
}
