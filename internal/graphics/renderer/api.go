package renderer

import (
	"glmesh/internal/graphics/camera"
	"glmesh/internal/graphics/device"
	"glmesh/internal/graphics/light"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Device device.Device
	// Camera is nil when the scene is drawn without one.
	Camera *camera.Camera
	Lights []light.Light
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext) error
	Dispose()
	SetViewport(width, height int)
}
