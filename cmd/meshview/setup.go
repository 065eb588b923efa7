package main

import (
	"fmt"
	"path/filepath"

	"glmesh/internal/config"
	"glmesh/internal/graphics/camera"
	"glmesh/internal/graphics/device"
	"glmesh/internal/graphics/material"
	"glmesh/internal/graphics/mesh"
	"glmesh/internal/graphics/renderables/model"
	renderer "glmesh/internal/graphics/renderer"
	"glmesh/internal/graphics/shader"
	"glmesh/internal/graphics/texture"
	"glmesh/internal/shapes"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func setupWindow(cfg config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Without vsync the FPS limiter paces frames
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return window, nil
}

// Scene holds everything built from a viewer config
type Scene struct {
	Renderer *renderer.Renderer
	Camera   *camera.Camera
	Models   []*model.Model
	Library  *shader.Library
	Textures *texture.Cache
}

// Dispose releases renderables, programs and textures
func (s *Scene) Dispose() {
	s.Renderer.Dispose()
	s.Library.Dispose()
	s.Textures.Dispose()
}

// setupScene builds the models of cfg. Texture paths are relative to dir.
func setupScene(dev device.Device, cfg config.Viewer, dir string, width, height int) (*Scene, error) {
	lib := shader.NewLibrary(dev)
	textures := texture.NewCache(dev)
	fallback := shader.NewSimple(lib)

	cam := camera.NewCamera(width, height)
	cam.LookAt(mgl32.Vec3(cfg.Camera.Eye), mgl32.Vec3(cfg.Camera.Center))
	cam.FOV = cfg.Camera.FOV

	s := &Scene{Camera: cam, Library: lib, Textures: textures}

	var rs []renderer.Renderable
	for i, mc := range cfg.Models {
		data, err := shapes.ByName(mc.Shape)
		if err != nil {
			return nil, fmt.Errorf("model %d: %w", i, err)
		}

		m := mesh.New(dev, fallback)
		m.SetVertices(data, device.Triangles)

		materials := make([]mesh.Material, 0, len(mc.Materials))
		for j, matc := range mc.Materials {
			mat, err := newMaterial(lib, textures, matc, dir)
			if err != nil {
				return nil, fmt.Errorf("model %d material %d: %w", i, j, err)
			}
			materials = append(materials, mat)
		}
		m.SetMaterials(materials...)

		name := mc.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d", mc.Shape, i)
		}
		mdl := model.NewModel(name, m)
		mdl.Position = mgl32.Vec3(mc.Position)
		mdl.Scale = mc.Scale
		mdl.Spin = mc.Spin

		s.Models = append(s.Models, mdl)
		rs = append(rs, mdl)
	}

	r, err := renderer.NewRenderer(dev, cam, rs...)
	if err != nil {
		return nil, err
	}
	lights, err := cfg.SceneLights()
	if err != nil {
		return nil, err
	}
	r.SetLights(lights...)
	s.Renderer = r
	return s, nil
}

func newMaterial(lib *shader.Library, textures *texture.Cache, cfg config.MaterialConfig, dir string) (*material.Material, error) {
	var sh shader.Shader
	switch cfg.Shader {
	case "simple":
		sh = shader.NewSimple(lib)
	case "decal":
		sh = shader.NewDecal(lib)
	case "phong":
		phong := shader.NewPhong(lib)
		if cfg.Power > 0 {
			phong.Power = cfg.Power
		}
		sh = phong
	default:
		return nil, fmt.Errorf("unknown shader %q", cfg.Shader)
	}

	mat := material.New(sh)
	mat.Name = cfg.Shader
	mat.SetDiffuseColor(mgl32.Vec4(cfg.Color))
	if cfg.Texture != "" {
		path := cfg.Texture
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		tex, err := textures.Get(path)
		if err != nil {
			return nil, err
		}
		mat.SetDiffuseTexture(tex)
	}
	return mat, nil
}
