package shader

import (
	"fmt"
	"strings"
)

// Attribute names understood by the built-in variants.
const (
	AttribPosition = "position"
	AttribNormal   = "normal"
	AttribColor    = "color"
	AttribTexcoord = "texcoord"
)

// glslTypes declares each attribute at its widest size. The GL fills
// missing components, so 2, 3 or 4 component data binds to any of them.
var glslTypes = map[string]string{
	AttribPosition: "vec4",
	AttribNormal:   "vec3",
	AttribColor:    "vec4",
	AttribTexcoord: "vec2",
}

// Context is what a fragment builder knows about the program being
// generated.
type Context struct {
	Attributes []string
	Camera     bool
	Lights     int
	Space      LightSpace
}

// Has reports whether the attribute is part of the program.
func (c Context) Has(name string) bool {
	for _, a := range c.Attributes {
		if a == name {
			return true
		}
	}
	return false
}

// Builder emits a piece of GLSL for a context.
type Builder func(c Context) string

// Variant describes a family of shader programs. Programs are generated by
// running the Defines builders into the fragment declarations and the
// Shades builders into the fragment main body, in order.
type Variant struct {
	Name string
	// Accepts is the canonical attribute order. Requested attributes not
	// listed here are dropped.
	Accepts []string
	// Lit variants declare one light slot per scene light.
	Lit bool
	// Uniforms are variant-specific uniforms registered in material
	// uniform caches after linking.
	Uniforms []string
	Defines  []Builder
	Shades   []Builder
}

// optimize returns requested attributes in canonical order.
func (v *Variant) optimize(requested []string) []string {
	want := make(map[string]bool, len(requested))
	for _, name := range requested {
		want[name] = true
	}
	out := make([]string, 0, len(v.Accepts))
	for _, name := range v.Accepts {
		if want[name] {
			out = append(out, name)
		}
	}
	return out
}

func decalDefine(c Context) string {
	var b strings.Builder
	b.WriteString("uniform vec4 materialBaseColor;\n")
	if c.Has(AttribTexcoord) {
		b.WriteString("uniform sampler2D diffuseTexture;\n")
	}
	return b.String()
}

func decalShade(c Context) string {
	var b strings.Builder
	b.WriteString("  rt0 *= materialBaseColor;\n")
	if c.Has(AttribTexcoord) {
		b.WriteString("  rt0 *= texture(diffuseTexture, v_texcoord);\n")
	}
	return b.String()
}

func phongDefine(c Context) string {
	var eye string
	if c.Space == LightSpaceLocal {
		eye = "uniform vec3 viewPosition;\n"
	}
	return eye +
		"uniform vec4 Kd;\n" +
		"uniform vec4 Ks;\n" +
		"uniform vec4 Ka;\n" +
		"uniform float power;\n" +
		"uniform float efficiencyAmbient;\n" +
		"uniform float efficiencyDiffuse;\n" +
		"uniform float efficiencySpecular;\n"
}

// phongShade lights the decal colour. lightPosition[i].w is 1 for point
// lights and 0 for directional lights, so the surface position term drops
// out for the latter. In view space the eye sits at the origin.
func phongShade(c Context) string {
	if !c.Has(AttribNormal) || c.Lights == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("  vec4 surfaceColor = rt0;\n")
	b.WriteString("  rt0 = vec4(0.0, 0.0, 0.0, surfaceColor.a);\n")
	b.WriteString("  vec3 normal = normalize(v_normal);\n")
	b.WriteString("  rt0 += vec4(efficiencyAmbient, efficiencyAmbient, efficiencyAmbient, 1.0) * Ka * surfaceColor;\n")
	fmt.Fprintf(&b, "  for (int i = 0; i < %d; i++) {\n", c.Lights)
	b.WriteString("    vec3 light = normalize(lightPosition[i].xyz - v_position.xyz * lightPosition[i].w);\n")
	b.WriteString("    float diffuse = max(dot(light, normal), 0.0);\n")
	b.WriteString("    rt0 += vec4(efficiencyDiffuse, efficiencyDiffuse, efficiencyDiffuse, 1.0) * Kd * lightDiffuse[i] * vec4(diffuse, diffuse, diffuse, 1.0) * surfaceColor;\n")
	if c.Space == LightSpaceView {
		b.WriteString("    vec3 view = normalize(-v_position.xyz);\n")
	} else {
		b.WriteString("    vec3 view = normalize(viewPosition - v_position.xyz);\n")
	}
	b.WriteString("    vec3 reflected = reflect(-light, normal);\n")
	b.WriteString("    float specular = pow(max(dot(reflected, view), 0.0), power);\n")
	b.WriteString("    rt0 += vec4(efficiencySpecular, efficiencySpecular, efficiencySpecular, 1.0) * Ks * lightDiffuse[i] * vec4(specular, specular, specular, 0.0);\n")
	b.WriteString("  }\n")
	return b.String()
}

// Built-in variants.
var (
	SimpleVariant = &Variant{
		Name:    "simple",
		Accepts: []string{AttribPosition, AttribColor},
	}

	DecalVariant = &Variant{
		Name:     "decal",
		Accepts:  []string{AttribPosition, AttribColor, AttribTexcoord},
		Uniforms: []string{UniformBaseColor, UniformDiffuseTexture},
		Defines:  []Builder{decalDefine},
		Shades:   []Builder{decalShade},
	}

	PhongVariant = &Variant{
		Name:    "phong",
		Accepts: []string{AttribPosition, AttribNormal, AttribColor, AttribTexcoord},
		Lit:     true,
		Uniforms: []string{
			UniformBaseColor, UniformDiffuseTexture,
			"Ka", "Kd", "Ks", "power",
			"efficiencyAmbient", "efficiencyDiffuse", "efficiencySpecular",
		},
		Defines: []Builder{decalDefine, phongDefine},
		Shades:  []Builder{decalShade, phongShade},
	}
)
