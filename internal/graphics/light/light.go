package light

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind discriminates the light variants.
type Kind int

const (
	Point Kind = iota
	Directional
)

func (k Kind) String() string {
	switch k {
	case Point:
		return "point"
	case Directional:
		return "directional"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps "point" and "directional" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "point":
		return Point, nil
	case "directional":
		return Directional, nil
	}
	return 0, fmt.Errorf("unknown light kind %q", s)
}

// Light is a tagged variant. Position is read for Point lights, Direction
// for Directional lights.
type Light struct {
	Kind      Kind
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Intensity mgl32.Vec3
}

// NewPoint returns a point light at position.
func NewPoint(position, intensity mgl32.Vec3) Light {
	return Light{Kind: Point, Position: position, Intensity: intensity}
}

// NewDirectional returns a light shining along direction.
func NewDirectional(direction, intensity mgl32.Vec3) Light {
	return Light{Kind: Directional, Direction: direction, Intensity: intensity}
}

// Default is the light shaded when a scene supplies none.
func Default() Light {
	return NewPoint(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{1, 1, 1})
}

// OrDefault returns lights, or a single Default light when lights is empty.
func OrDefault(lights []Light) []Light {
	if len(lights) == 0 {
		return []Light{Default()}
	}
	return lights
}

// Encode packs the light into the vector the shaders consume: xyz is the
// world position of a point light or the negated direction of a
// directional light, and w is 1 for point lights and 0 for directional
// ones.
func (l Light) Encode() mgl32.Vec4 {
	switch l.Kind {
	case Point:
		return l.Position.Vec4(1)
	case Directional:
		return l.Direction.Mul(-1).Vec4(0)
	}
	panic(fmt.Sprintf("light: unhandled kind %v", l.Kind))
}

// Diffuse returns the intensity with alpha forced to 1.
func (l Light) Diffuse() mgl32.Vec4 {
	return l.Intensity.Vec4(1)
}

// Signature describes the kinds of lights in order, one letter per light.
// Shader variants are specialized on it.
func Signature(lights []Light) string {
	b := make([]byte, len(lights))
	for i, l := range lights {
		switch l.Kind {
		case Point:
			b[i] = 'P'
		case Directional:
			b[i] = 'D'
		default:
			b[i] = '?'
		}
	}
	return string(b)
}
