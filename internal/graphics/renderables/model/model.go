package model

import (
	"fmt"
	"log/slog"

	"glmesh/internal/config"
	"glmesh/internal/graphics/light"
	"glmesh/internal/graphics/mesh"
	renderer "glmesh/internal/graphics/renderer"
	"glmesh/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Model renders one mesh placed in the scene. The mesh is prepared on the
// first frame and again whenever it turns dirty or the camera presence or
// light kinds it was specialized for change.
type Model struct {
	Name     string
	Position mgl32.Vec3
	Scale    float32
	Spin     float32 // radians per second about +y

	mesh  *mesh.Mesh
	angle float32

	prepared       bool
	preparedCamera bool
	preparedLights string
}

// NewModel wraps m at the origin.
func NewModel(name string, m *mesh.Mesh) *Model {
	return &Model{Name: name, Scale: 1, mesh: m}
}

func (m *Model) Mesh() *mesh.Mesh { return m.mesh }

// Transform is translation × rotation × scale.
func (m *Model) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(m.Position[0], m.Position[1], m.Position[2]).
		Mul4(mgl32.HomogRotate3DY(m.angle)).
		Mul4(mgl32.Scale3D(m.Scale, m.Scale, m.Scale))
}

// Init has nothing to do; the mesh needs the frame's camera and lights
// before it can be prepared.
func (m *Model) Init() error {
	return nil
}

// Render draws the mesh with the frame's camera and lights
func (m *Model) Render(ctx renderer.RenderContext) error {
	defer profiling.Track("model.Render")()

	m.angle += m.Spin * float32(ctx.DT)

	var cam mesh.Camera
	cameraPresent := ctx.Camera != nil && config.GetCameraEnabled()
	if cameraPresent {
		cam = ctx.Camera
	}

	space, err := mesh.ParseLightSpace(config.GetLightSpace())
	if err != nil {
		return fmt.Errorf("model %s: %w", m.Name, err)
	}
	m.mesh.SetLightSpace(space)

	signature := light.Signature(light.OrDefault(ctx.Lights))
	if err := m.prepare(cameraPresent, ctx.Lights, signature); err != nil {
		return fmt.Errorf("model %s: %w", m.Name, err)
	}

	func() {
		defer profiling.Track("mesh.Draw")()
		err = m.mesh.Draw(ctx.Lights, cam, m.Transform())
	}()
	if err != nil {
		return fmt.Errorf("model %s: %w", m.Name, err)
	}
	return nil
}

func (m *Model) prepare(cameraPresent bool, lights []light.Light, signature string) error {
	if m.prepared && !m.mesh.Dirty() && m.preparedCamera == cameraPresent && m.preparedLights == signature {
		return nil
	}
	defer profiling.Track("model.Prepare")()

	m.prepared = false
	if err := m.mesh.Prepare(cameraPresent, lights); err != nil {
		return err
	}
	m.prepared = true
	m.preparedCamera = cameraPresent
	m.preparedLights = signature
	slog.Debug("model prepared", "model", m.Name, "mesh", m.mesh, "camera", cameraPresent, "lights", signature)
	return nil
}

// Dispose releases the mesh's GPU resources
func (m *Model) Dispose() {
	m.mesh.Dispose()
	m.prepared = false
}

func (m *Model) SetViewport(width, height int) {}

var _ renderer.Renderable = (*Model)(nil)
