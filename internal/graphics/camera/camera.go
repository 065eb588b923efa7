package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera handles the view and projection matrices
type Camera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3

	AspectRatio float32
	FOV         float32 // vertical, degrees
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		Eye:       mgl32.Vec3{0, 0, 5},
		Center:    mgl32.Vec3{0, 0, 0},
		Up:        mgl32.Vec3{0, 1, 0},
		FOV:       60.0,
		NearPlane: 0.1,
		FarPlane:  1000.0,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio. Degenerate sizes are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// LookAt moves the camera to eye, facing center.
func (c *Camera) LookAt(eye, center mgl32.Vec3) {
	c.Eye = eye
	c.Center = center
}

// ViewMatrix is the right-handed look-at matrix.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Center, c.Up)
}

// ProjectionMatrix is the right-handed perspective matrix.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// EyePosition returns the world-space camera position.
func (c *Camera) EyePosition() mgl32.Vec3 {
	return c.Eye
}

// Orbit rotates the eye around Center by yaw radians about the up axis.
func (c *Camera) Orbit(yaw float32) {
	offset := c.Eye.Sub(c.Center)
	rot := mgl32.HomogRotate3D(yaw, c.Up.Normalize())
	c.Eye = c.Center.Add(rot.Mul4x1(offset.Vec4(0)).Vec3())
}
