package shader

import (
	"fmt"
	"strings"
)

const glslVersion = "#version 410 core\n"

func attribName(name string) string  { return "a_" + name }
func varyingName(name string) string { return "v_" + name }

func lightPositionName(i int) string { return fmt.Sprintf("lightPosition[%d]", i) }
func lightDiffuseName(i int) string  { return fmt.Sprintf("lightDiffuse[%d]", i) }

// vertexSource passes every attribute through as a varying. Input
// locations follow the canonical attribute order.
func vertexSource(c Context) string {
	var b strings.Builder
	b.WriteString(glslVersion)
	for i, name := range c.Attributes {
		fmt.Fprintf(&b, "layout(location = %d) in %s %s;\n", i, glslTypes[name], attribName(name))
	}
	if c.Camera {
		fmt.Fprintf(&b, "uniform mat4 %s;\n", UniformModelViewProjection)
	}
	view := c.Space == LightSpaceView
	if view {
		fmt.Fprintf(&b, "uniform mat4 %s;\n", UniformModelView)
		if c.Has(AttribNormal) {
			fmt.Fprintf(&b, "uniform mat3 %s;\n", UniformNormalMatrix)
		}
	}
	for _, name := range c.Attributes {
		fmt.Fprintf(&b, "out %s %s;\n", glslTypes[name], varyingName(name))
	}
	b.WriteString("void main() {\n")
	for _, name := range c.Attributes {
		switch {
		case view && name == AttribPosition:
			fmt.Fprintf(&b, "  %s = %s * %s;\n", varyingName(name), UniformModelView, attribName(name))
		case view && name == AttribNormal:
			fmt.Fprintf(&b, "  %s = %s * %s;\n", varyingName(name), UniformNormalMatrix, attribName(name))
		default:
			fmt.Fprintf(&b, "  %s = %s;\n", varyingName(name), attribName(name))
		}
	}
	if c.Camera {
		fmt.Fprintf(&b, "  gl_Position = %s * %s;\n", UniformModelViewProjection, attribName(AttribPosition))
	} else {
		fmt.Fprintf(&b, "  gl_Position = %s;\n", attribName(AttribPosition))
	}
	b.WriteString("}\n")
	return b.String()
}

func fragmentSource(v *Variant, c Context) string {
	var b strings.Builder
	b.WriteString(glslVersion)
	for _, name := range c.Attributes {
		fmt.Fprintf(&b, "in %s %s;\n", glslTypes[name], varyingName(name))
	}
	if v.Lit && c.Lights > 0 {
		fmt.Fprintf(&b, "uniform vec4 lightPosition[%d];\n", c.Lights)
		fmt.Fprintf(&b, "uniform vec4 lightDiffuse[%d];\n", c.Lights)
	}
	for _, define := range v.Defines {
		b.WriteString(define(c))
	}
	b.WriteString("out vec4 rt0;\n")
	b.WriteString("void main() {\n")
	b.WriteString("  rt0 = vec4(1.0);\n")
	if c.Has(AttribColor) {
		fmt.Fprintf(&b, "  rt0 *= %s;\n", varyingName(AttribColor))
	}
	for _, shade := range v.Shades {
		b.WriteString(shade(c))
	}
	b.WriteString("}\n")
	return b.String()
}
