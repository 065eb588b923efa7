// Package shapes builds procedural vertex data for the viewer and tests.
package shapes

import (
	"fmt"

	"glmesh/internal/graphics/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// Triangle is a single RGB triangle in the z=0 plane, no indices.
func Triangle() *mesh.VertexData {
	d := mesh.NewVertexData(mesh.Vec3s(
		mgl32.Vec3{-1, -1, 0},
		mgl32.Vec3{1, -1, 0},
		mgl32.Vec3{0, 1, 0},
	))
	d.Set(mesh.AttribColor, mesh.Vec4s(
		mgl32.Vec4{1, 0, 0, 1},
		mgl32.Vec4{0, 1, 0, 1},
		mgl32.Vec4{0, 0, 1, 1},
	))
	d.Set(mesh.AttribNormal, mesh.Vec3s(
		mgl32.Vec3{0, 0, 1},
		mgl32.Vec3{0, 0, 1},
		mgl32.Vec3{0, 0, 1},
	))
	return d
}

// Plane is a unit square in the xz plane facing +y.
func Plane() *mesh.VertexData {
	d := mesh.NewVertexData(mesh.Vec3s(
		mgl32.Vec3{-0.5, 0, 0.5},
		mgl32.Vec3{0.5, 0, 0.5},
		mgl32.Vec3{-0.5, 0, -0.5},
		mgl32.Vec3{0.5, 0, -0.5},
	))
	up := mgl32.Vec3{0, 1, 0}
	d.Set(mesh.AttribNormal, mesh.Vec3s(up, up, up, up))
	d.Set(mesh.AttribTexcoord, mesh.Vec2s(
		mgl32.Vec2{0, 0},
		mgl32.Vec2{1, 0},
		mgl32.Vec2{0, 1},
		mgl32.Vec2{1, 1},
	))
	d.Indices = [][]uint16{{0, 1, 2, 2, 1, 3}}
	return d
}

// cube faces: normal, then the u and v axes spanning the face.
var faces = [6][3]mgl32.Vec3{
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
}

// Cube is a unit cube with 24 vertices. With split set the first three
// faces and the last three are separate sub-meshes, one per material.
func Cube(split bool) *mesh.VertexData {
	var positions, normals []mgl32.Vec3
	var texcoords []mgl32.Vec2
	var colors []mgl32.Vec4
	var indices [][]uint16
	if split {
		indices = make([][]uint16, 2)
	} else {
		indices = make([][]uint16, 1)
	}

	for f, face := range faces {
		n, u, v := face[0], face[1], face[2]
		base := uint16(len(positions))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
			p := n.Add(u.Mul(c[0])).Add(v.Mul(c[1])).Mul(0.5)
			positions = append(positions, p)
			normals = append(normals, n)
			texcoords = append(texcoords, mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2})
			colors = append(colors, p.Add(mgl32.Vec3{0.5, 0.5, 0.5}).Vec4(1))
		}
		sub := 0
		if split && f >= 3 {
			sub = 1
		}
		indices[sub] = append(indices[sub], base, base+1, base+2, base+2, base+1, base+3)
	}

	d := mesh.NewVertexData(mesh.Vec3s(positions...))
	d.Set(mesh.AttribNormal, mesh.Vec3s(normals...))
	d.Set(mesh.AttribTexcoord, mesh.Vec2s(texcoords...))
	d.Set(mesh.AttribColor, mesh.Vec4s(colors...))
	d.Indices = indices
	return d
}

// ByName returns the shape the viewer config names.
func ByName(name string) (*mesh.VertexData, error) {
	switch name {
	case "triangle":
		return Triangle(), nil
	case "plane":
		return Plane(), nil
	case "cube":
		return Cube(false), nil
	case "split-cube":
		return Cube(true), nil
	}
	return nil, fmt.Errorf("unknown shape %q", name)
}
