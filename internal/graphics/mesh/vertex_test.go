package mesh

import (
	"errors"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func quadData() *VertexData {
	return NewVertexData(Vec3s(
		mgl32.Vec3{-1, -1, 0},
		mgl32.Vec3{1, -1, 0},
		mgl32.Vec3{-1, 1, 0},
		mgl32.Vec3{1, 1, 0},
	))
}

func TestComponentCount(t *testing.T) {
	tests := []struct {
		values [][]float32
		want   int
	}{
		{nil, 0},
		{[][]float32{{1, 2}}, 2},
		{[][]float32{{1, 2, 3}}, 3},
		{[][]float32{{1, 2, 3, 4}}, 4},
		// Only the first element counts.
		{[][]float32{{1, 2}, {1, 2, 3, 4}}, 2},
	}
	for _, tt := range tests {
		if got := ComponentCount(tt.values); got != tt.want {
			t.Errorf("ComponentCount(%v) = %d, want %d", tt.values, got, tt.want)
		}
	}
}

func TestNames(t *testing.T) {
	d := quadData()
	d.Set("weight", Vec2s(mgl32.Vec2{}, mgl32.Vec2{}, mgl32.Vec2{}, mgl32.Vec2{}))
	d.Set("bone", Vec2s(mgl32.Vec2{}, mgl32.Vec2{}, mgl32.Vec2{}, mgl32.Vec2{}))
	d.Set(AttribTexcoord, Vec2s(mgl32.Vec2{}, mgl32.Vec2{}, mgl32.Vec2{}, mgl32.Vec2{}))
	d.Set(AttribIndices, [][]float32{{0, 1, 2}})
	d.Set(AttribNormal, Vec3s(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}))

	want := []string{AttribPosition, AttribNormal, AttribTexcoord, "bone", "weight"}
	if got := d.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(d *VertexData)
		want   error
	}{
		{"valid", func(d *VertexData) {}, nil},
		{"no position", func(d *VertexData) { delete(d.Attributes, AttribPosition) }, ErrMissingPosition},
		{"empty position", func(d *VertexData) { d.Attributes[AttribPosition] = nil }, ErrNoVertices},
		{"short normal", func(d *VertexData) {
			d.Set(AttribNormal, Vec3s(mgl32.Vec3{0, 0, 1}))
		}, ErrAttributeLength},
		{"scalar channel", func(d *VertexData) {
			d.Set("weight", [][]float32{{1}, {1}, {1}, {1}})
		}, ErrComponentCount},
		{"mixed sizes", func(d *VertexData) {
			d.Attributes[AttribPosition][2] = []float32{0, 0}
		}, ErrHeterogeneous},
		{"index past end", func(d *VertexData) {
			d.Indices = [][]uint16{{0, 1, 2}, {2, 3, 4}}
		}, ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := quadData()
			tt.modify(d)
			err := d.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateIndexCeiling(t *testing.T) {
	positions := make([][]float32, MaxIndexedVertices+1)
	for i := range positions {
		positions[i] = []float32{0, 0, 0}
	}
	d := NewVertexData(positions)
	if err := d.Validate(); err != nil {
		t.Fatalf("non-indexed data has no ceiling: %v", err)
	}
	d.Indices = [][]uint16{{0, 1, 2}}
	if err := d.Validate(); !errors.Is(err, ErrTooManyVertices) {
		t.Fatalf("Validate = %v, want ErrTooManyVertices", err)
	}
}

func TestLayoutStride(t *testing.T) {
	d := quadData()
	d.Set(AttribColor, Vec4s(mgl32.Vec4{1, 0, 0, 1}, mgl32.Vec4{0, 1, 0, 1}, mgl32.Vec4{0, 0, 1, 1}, mgl32.Vec4{1, 1, 1, 1}))
	d.Set(AttribTexcoord, Vec2s(mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 1}))

	l := NewLayout(d, []string{AttribPosition, AttribColor, AttribTexcoord})
	if l.Stride != (3+4+2)*4 {
		t.Errorf("stride = %d, want 36", l.Stride)
	}
	if want := []int{0, 12, 28}; !reflect.DeepEqual(l.Offsets, want) {
		t.Errorf("offsets = %v, want %v", l.Offsets, want)
	}
	if want := []int32{3, 4, 2}; !reflect.DeepEqual(l.Components, want) {
		t.Errorf("components = %v, want %v", l.Components, want)
	}
}

func TestInterleave(t *testing.T) {
	d := NewVertexData([][]float32{{1, 2, 3}, {4, 5, 6}})
	d.Set(AttribTexcoord, [][]float32{{0.1, 0.2}, {0.3, 0.4}})

	// Program order decides the packing, not the order in the data.
	l := NewLayout(d, []string{AttribTexcoord, AttribPosition})
	got := Interleave(d, l)
	want := []float32{0.1, 0.2, 1, 2, 3, 0.3, 0.4, 4, 5, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Interleave = %v, want %v", got, want)
	}
	if len(got) != d.VertexCount()*l.FloatsPerVertex() {
		t.Errorf("length %d, want vertex count x floats per vertex", len(got))
	}
}
