package common

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Perspective writes a perspective projection matrix into out.
// Depth maps to the WebGPU clip range [0, 1], unlike mgl32.Perspective which targets
// the OpenGL [-1, 1] range. The matrix is stored in column-major order.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	for i := range 16 {
		out[i] = 0
	}

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
}

// PerspectiveMat4 is Perspective returning an mgl32.Mat4.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance
//   - far: far clipping plane distance
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func PerspectiveMat4(fovY, aspect, near, far float32) mgl32.Mat4 {
	var m mgl32.Mat4
	Perspective(m[:], fovY, aspect, near, far)
	return m
}

// PutMat4 writes a column-major 4x4 matrix into buf as 16 little-endian float32 values.
//
// Parameters:
//   - buf: destination (must be at least 64 bytes)
//   - m: the matrix to write
func PutMat4(buf []byte, m mgl32.Mat4) {
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(m[i]))
	}
}

// Mat4Bytes returns a column-major 4x4 matrix as 64 little-endian bytes for GPU upload.
//
// Parameters:
//   - m: the matrix to serialize
//
// Returns:
//   - []byte: the serialized matrix
func Mat4Bytes(m mgl32.Mat4) []byte {
	buf := make([]byte, 64)
	PutMat4(buf, m)
	return buf
}

// Clamp limits v to [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: v limited to the range
func Clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
