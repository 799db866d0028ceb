package mesh

import (
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Cube returns a unit cube centred on the origin with per-face UVs and normals.
// Every face is wound counter-clockwise when seen from outside, so back-face
// culling with a CCW front face keeps exactly the visible faces.
//
// Returns:
//   - *Mesh: 24 vertices and 36 indices
func Cube() *Mesh {
	return &Mesh{
		Vertices: []Vertex{
			// front
			{Position: [3]float32{-0.5, -0.5, 0.5}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 0, 1}},
			{Position: [3]float32{0.5, -0.5, 0.5}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
			{Position: [3]float32{0.5, 0.5, 0.5}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 0, 1}},
			{Position: [3]float32{-0.5, 0.5, 0.5}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
			// back
			{Position: [3]float32{-0.5, -0.5, -0.5}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 0, -1}},
			{Position: [3]float32{0.5, -0.5, -0.5}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 0, -1}},
			{Position: [3]float32{0.5, 0.5, -0.5}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 0, -1}},
			{Position: [3]float32{-0.5, 0.5, -0.5}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 0, -1}},
			// left
			{Position: [3]float32{-0.5, -0.5, -0.5}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{-1, 0, 0}},
			{Position: [3]float32{-0.5, -0.5, 0.5}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{-1, 0, 0}},
			{Position: [3]float32{-0.5, 0.5, 0.5}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{-1, 0, 0}},
			{Position: [3]float32{-0.5, 0.5, -0.5}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{-1, 0, 0}},
			// right
			{Position: [3]float32{0.5, -0.5, -0.5}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{1, 0, 0}},
			{Position: [3]float32{0.5, -0.5, 0.5}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{1, 0, 0}},
			{Position: [3]float32{0.5, 0.5, 0.5}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{1, 0, 0}},
			{Position: [3]float32{0.5, 0.5, -0.5}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{1, 0, 0}},
			// top
			{Position: [3]float32{-0.5, 0.5, -0.5}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{0.5, 0.5, -0.5}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{0.5, 0.5, 0.5}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{-0.5, 0.5, 0.5}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, 1, 0}},
			// bottom
			{Position: [3]float32{-0.5, -0.5, -0.5}, TexCoord: [2]float32{0, 0}, Normal: [3]float32{0, -1, 0}},
			{Position: [3]float32{0.5, -0.5, -0.5}, TexCoord: [2]float32{1, 0}, Normal: [3]float32{0, -1, 0}},
			{Position: [3]float32{0.5, -0.5, 0.5}, TexCoord: [2]float32{1, 1}, Normal: [3]float32{0, -1, 0}},
			{Position: [3]float32{-0.5, -0.5, 0.5}, TexCoord: [2]float32{0, 1}, Normal: [3]float32{0, -1, 0}},
		},
		Indices: []uint32{
			0, 1, 2, 0, 2, 3, // front
			4, 6, 5, 4, 7, 6, // back
			8, 9, 10, 8, 10, 11, // left
			12, 14, 13, 12, 15, 14, // right
			16, 18, 17, 16, 19, 18, // top
			20, 21, 22, 20, 22, 23, // bottom
		},
	}
}

// VertexBytes serializes all vertices for a vertex buffer upload.
//
// Returns:
//   - []byte: len(Vertices) * 32 bytes
func (m *Mesh) VertexBytes() []byte {
	buf := make([]byte, 0, len(m.Vertices)*32)
	for i := range m.Vertices {
		buf = append(buf, m.Vertices[i].Marshal()...)
	}
	return buf
}

// IndexBytes serializes the indices as little-endian uint32 values.
//
// Returns:
//   - []byte: len(Indices) * 4 bytes
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// IndexCount returns the number of indices to draw.
//
// Returns:
//   - uint32: the index count
func (m *Mesh) IndexCount() uint32 {
	return uint32(len(m.Indices))
}

// Bounds returns a bounding sphere centred on the vertex AABB centre.
//
// Returns:
//   - mgl32.Vec3: the sphere centre in model space
//   - float32: the sphere radius, zero for an empty mesh
func (m *Mesh) Bounds() (mgl32.Vec3, float32) {
	if len(m.Vertices) == 0 {
		return mgl32.Vec3{}, 0
	}
	lo := mgl32.Vec3(m.Vertices[0].Position)
	hi := lo
	for _, v := range m.Vertices[1:] {
		for i := range 3 {
			lo[i] = min(lo[i], v.Position[i])
			hi[i] = max(hi[i], v.Position[i])
		}
	}
	center := lo.Add(hi).Mul(0.5)

	var radius float32
	for _, v := range m.Vertices {
		radius = max(radius, mgl32.Vec3(v.Position).Sub(center).Len())
	}
	return center, radius
}
