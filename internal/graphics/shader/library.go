package shader

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"glmesh/internal/graphics/device"
	"glmesh/internal/graphics/light"

	"github.com/google/uuid"
)

var (
	// ErrCompile wraps shader compile and link failures.
	ErrCompile = errors.New("shader compilation failed")
	// ErrNoPosition is returned when the attribute set lacks positions.
	ErrNoPosition = errors.New("shader variant requires a position attribute")
)

// Library links shader variants on one device and caches them by
// specialization key: variant, canonical attribute set, camera presence
// and the kinds of the scene lights.
type Library struct {
	dev      device.Device
	programs map[string]*Program
}

// NewLibrary returns an empty program cache bound to dev.
func NewLibrary(dev device.Device) *Library {
	return &Library{
		dev:      dev,
		programs: make(map[string]*Program),
	}
}

func specializationKey(v *Variant, attributes []string, cameraPresent bool, lights string, space LightSpace) string {
	return fmt.Sprintf("%s|%s|camera=%t|lights=%s|space=%s", v.Name, strings.Join(attributes, ","), cameraPresent, lights, space)
}

// Program returns the local space program for the given specialization,
// linking it on first use.
func (l *Library) Program(v *Variant, attributes []string, cameraPresent bool, lights []light.Light) (*Program, error) {
	return l.ProgramIn(v, attributes, cameraPresent, lights, LightSpaceLocal)
}

// ProgramIn is Program for a lit variant shading in the given space.
// Unlit variants ignore space and always report LightSpaceLocal.
func (l *Library) ProgramIn(v *Variant, attributes []string, cameraPresent bool, lights []light.Light, space LightSpace) (*Program, error) {
	optimized := v.optimize(attributes)
	if len(optimized) == 0 || optimized[0] != AttribPosition {
		return nil, fmt.Errorf("%w (variant %s, attributes %v)", ErrNoPosition, v.Name, attributes)
	}

	var sig string
	if v.Lit {
		sig = light.Signature(lights)
	} else {
		space = LightSpaceLocal
	}
	key := specializationKey(v, optimized, cameraPresent, sig, space)
	if p, ok := l.programs[key]; ok {
		return p, nil
	}

	ctx := Context{Attributes: optimized, Camera: cameraPresent, Lights: len(sig), Space: space}
	p, err := l.link(v, ctx, key)
	if err != nil {
		return nil, err
	}
	l.programs[key] = p

	slog.Debug("shader program linked", "variant", v.Name, "attributes", optimized, "camera", cameraPresent, "lights", sig, "space", space)
	return p, nil
}

func (l *Library) link(v *Variant, ctx Context, key string) (*Program, error) {
	handle, err := l.dev.CreateProgram(vertexSource(ctx), fragmentSource(v, ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: variant %s: %v", ErrCompile, v.Name, err)
	}

	p := &Program{
		handle:     handle,
		identity:   uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String(),
		variant:    v.Name,
		key:        key,
		space:      ctx.Space,
		attributes: ctx.Attributes,
		attribs:    make(map[string]int32, len(ctx.Attributes)),
		uniforms:   make(map[string]int32),
	}

	for _, name := range ctx.Attributes {
		p.attribs[name] = l.dev.AttribLocation(handle, attribName(name))
	}

	for _, name := range []string{UniformModelViewProjection, UniformViewPosition, UniformModelView, UniformNormalMatrix} {
		p.uniforms[name] = l.dev.UniformLocation(handle, name)
	}
	for _, name := range v.Uniforms {
		loc := l.dev.UniformLocation(handle, name)
		p.uniforms[name] = loc
		if loc >= 0 {
			p.custom = append(p.custom, name)
		}
	}

	for i := 0; i < ctx.Lights; i++ {
		p.lights = append(p.lights, LightSlot{
			Position: l.dev.UniformLocation(handle, lightPositionName(i)),
			Diffuse:  l.dev.UniformLocation(handle, lightDiffuseName(i)),
		})
	}
	return p, nil
}

// Len is the number of linked programs.
func (l *Library) Len() int { return len(l.programs) }

// Dispose deletes every linked program.
func (l *Library) Dispose() {
	for key, p := range l.programs {
		l.dev.DeleteProgram(p.handle)
		delete(l.programs, key)
	}
}
