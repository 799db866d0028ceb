package mesh

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Vertex is the GPU-aligned representation of a single cube vertex.
// Matches the WGSL VertexInput struct in the cube shader.
// Size: 32 bytes (no padding required).
type Vertex struct {
	Position [3]float32 // offset  0: model-space position (12 bytes)
	TexCoord [2]float32 // offset 12: UV texture coordinate (8 bytes)
	Normal   [3]float32 // offset 20: face normal (12 bytes)
}

// Attribute byte offsets within a Vertex.
const (
	PositionOffset = 0
	TexCoordOffset = 12
	NormalOffset   = 20
)

// Size returns the size of the Vertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (v *Vertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the Vertex into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (v *Vertex) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(v.TexCoord[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(v.Normal[0]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(v.Normal[1]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(v.Normal[2]))
	return buf
}
