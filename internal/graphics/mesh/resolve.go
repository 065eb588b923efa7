package mesh

// NeededAttributes returns the attributes a draw with material m uploads.
// Texture coordinates are kept only when m has a diffuse texture. The
// vertex data is left untouched so it can be shared between meshes.
func NeededAttributes(d *VertexData, m Material) []string {
	textured := m != nil && m.HasDiffuseTexture()
	var out []string
	for _, name := range d.Names() {
		if name == AttribTexcoord && !textured {
			continue
		}
		out = append(out, name)
	}
	return out
}
