package mesh

import (
	"fmt"
	"strings"
)

const floatSize = 4

// Layout describes one interleaved vertex buffer.
type Layout struct {
	Attributes []string
	Components []int32
	// Offsets are byte offsets of each attribute inside a vertex.
	Offsets []int
	// Stride is the byte size of one vertex.
	Stride int32
}

// NewLayout lays out attributes in the given order, offsets accumulating
// from zero.
func NewLayout(d *VertexData, attributes []string) Layout {
	l := Layout{
		Attributes: append([]string(nil), attributes...),
		Components: make([]int32, len(attributes)),
		Offsets:    make([]int, len(attributes)),
	}
	offset := 0
	for i, name := range attributes {
		n := ComponentCount(d.Attributes[name])
		l.Components[i] = int32(n)
		l.Offsets[i] = offset
		offset += n * floatSize
	}
	l.Stride = int32(offset)
	return l
}

// FloatsPerVertex is Stride in floats.
func (l Layout) FloatsPerVertex() int { return int(l.Stride) / floatSize }

func (l Layout) String() string {
	parts := make([]string, len(l.Attributes))
	for i, name := range l.Attributes {
		parts[i] = fmt.Sprintf("%s:%d@%d", name, l.Components[i], l.Offsets[i])
	}
	return fmt.Sprintf("[%s] stride=%d", strings.Join(parts, " "), l.Stride)
}

// Interleave packs the laid out attributes vertex after vertex.
func Interleave(d *VertexData, l Layout) []float32 {
	n := d.VertexCount()
	out := make([]float32, 0, n*l.FloatsPerVertex())
	for v := 0; v < n; v++ {
		for i, name := range l.Attributes {
			out = append(out, d.Attributes[name][v][:l.Components[i]]...)
		}
	}
	return out
}
