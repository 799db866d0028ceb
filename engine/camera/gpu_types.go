package camera

import (
	"unsafe"

	"github.com/Carmen-Shannon/loki-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Byte offsets of the GPUCameraUniform fields, for partial buffer writes.
const (
	ViewOffset       = 0
	ProjectionOffset = 64
)

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL Camera struct in the cube shader.
// Size: 128 bytes.
type GPUCameraUniform struct {
	View       mgl32.Mat4 // offset  0: world-to-camera (mat4x4<f32>)
	Projection mgl32.Mat4 // offset 64: camera-to-clip (mat4x4<f32>)
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	common.PutMat4(buf[ViewOffset:], g.View)
	common.PutMat4(buf[ProjectionOffset:], g.Projection)
	return buf
}
