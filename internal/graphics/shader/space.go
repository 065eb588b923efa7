package shader

import (
	"fmt"
	"strings"
)

// LightSpace is the coordinate space a lit program shades in. Light
// vectors must be uploaded in the same space.
type LightSpace int

const (
	// LightSpaceLocal shades in the mesh's model space.
	LightSpaceLocal LightSpace = iota
	// LightSpaceView shades in camera space. Positions and normals are
	// moved there by modelViewMatrix and invNormalMatrix.
	LightSpaceView
)

func (s LightSpace) String() string {
	switch s {
	case LightSpaceLocal:
		return "local"
	case LightSpaceView:
		return "view"
	default:
		return fmt.Sprintf("LightSpace(%d)", int(s))
	}
}

// ParseLightSpace accepts "local" or "view".
func ParseLightSpace(s string) (LightSpace, error) {
	switch strings.ToLower(s) {
	case "local", "":
		return LightSpaceLocal, nil
	case "view":
		return LightSpaceView, nil
	}
	return 0, fmt.Errorf("unknown light space %q", s)
}
