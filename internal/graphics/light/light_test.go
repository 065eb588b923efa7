package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestEncodeKindInW(t *testing.T) {
	p := NewPoint(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 1, 1})
	if got := p.Encode(); got != (mgl32.Vec4{1, 2, 3, 1}) {
		t.Fatalf("point light encoded as %v", got)
	}

	d := NewDirectional(mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 1, 1})
	if got := d.Encode(); got != (mgl32.Vec4{0, 1, 0, 0}) {
		t.Fatalf("directional light encoded as %v", got)
	}
}

func TestOrDefault(t *testing.T) {
	got := OrDefault(nil)
	if len(got) != 1 {
		t.Fatalf("expected one default light, got %d", len(got))
	}
	if got[0].Kind != Point {
		t.Errorf("default light should be a point light, got %v", got[0].Kind)
	}

	lights := []Light{NewDirectional(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{1, 1, 1})}
	if got := OrDefault(lights); len(got) != 1 || got[0].Kind != Directional {
		t.Errorf("non-empty list must be returned unchanged, got %v", got)
	}
}

func TestDiffuseAlpha(t *testing.T) {
	l := NewPoint(mgl32.Vec3{}, mgl32.Vec3{0.5, 0.25, 0.125})
	if got := l.Diffuse(); got != (mgl32.Vec4{0.5, 0.25, 0.125, 1}) {
		t.Errorf("diffuse = %v", got)
	}
}

func TestSignature(t *testing.T) {
	lights := []Light{Default(), NewDirectional(mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 1, 1}), Default()}
	if got := Signature(lights); got != "PDP" {
		t.Errorf("Signature = %q, want PDP", got)
	}
	if got := Signature(nil); got != "" {
		t.Errorf("Signature(nil) = %q", got)
	}
}

func TestParseKind(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want Kind
	}{
		{"point", Point},
		{"directional", Directional},
	} {
		got, err := ParseKind(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseKind(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseKind("spot"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
