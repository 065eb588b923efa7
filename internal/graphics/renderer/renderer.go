package renderer

import (
	"errors"
	"fmt"
	"log/slog"

	"glmesh/internal/graphics/camera"
	"glmesh/internal/graphics/device"
	"glmesh/internal/graphics/light"
	"glmesh/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	dev         device.Device
	renderables []Renderable
	camera      *camera.Camera
	lights      []light.Light

	ClearColor mgl32.Vec4
}

// NewRenderer creates a new renderer with the given renderables. cam may
// be nil.
func NewRenderer(dev device.Device, cam *camera.Camera, rs ...Renderable) (*Renderer, error) {
	renderer := &Renderer{
		dev:         dev,
		renderables: rs,
		camera:      cam,
		ClearColor:  mgl32.Vec4{0.1, 0.1, 0.12, 1.0},
	}

	// Initialize all renderables
	for i, r := range rs {
		if err := r.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, fmt.Errorf("init renderable %d: %w", i, err)
		}
	}

	return renderer, nil
}

// SetLights replaces the scene lights.
func (r *Renderer) SetLights(lights ...light.Light) {
	r.lights = append([]light.Light(nil), lights...)
}

func (r *Renderer) Lights() []light.Light { return r.lights }

// Render clears the frame and renders every feature. A failing renderable
// is logged and skipped for this frame; the others still draw.
func (r *Renderer) Render(dt float64) error {
	defer profiling.Track("renderer.Render")()

	r.dev.Clear(r.ClearColor)

	ctx := RenderContext{
		Device: r.dev,
		Camera: r.camera,
		Lights: r.lights,
		DT:     dt,
		View:   mgl32.Ident4(),
		Proj:   mgl32.Ident4(),
	}
	if r.camera != nil {
		ctx.View = r.camera.ViewMatrix()
		ctx.Proj = r.camera.ProjectionMatrix()
	}

	var errs []error
	for i, renderable := range r.renderables {
		if err := renderable.Render(ctx); err != nil {
			slog.Error("renderable failed", "index", i, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// Camera returns the camera instance
func (r *Renderer) Camera() *camera.Camera {
	return r.camera
}

// UpdateViewport updates the viewport of the device, camera and renderables.
func (r *Renderer) UpdateViewport(width, height int) {
	r.dev.Viewport(width, height)
	if r.camera != nil {
		r.camera.SetViewport(width, height)
	}
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}
