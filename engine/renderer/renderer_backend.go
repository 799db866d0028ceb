package renderer

import (
	"github.com/Carmen-Shannon/loki-go/common"
	"github.com/Carmen-Shannon/loki-go/engine/renderer/shader"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// Bind group 0 binding slots of the cube pipeline.
const (
	BindingCamera  = 0
	BindingModel   = 1
	BindingTexture = 2
	BindingSampler = 3
)

// RendererBackend is the GPU-facing half of the Renderer. The Renderer sequences resource
// creation and per-frame uploads; the backend owns the API objects.
type RendererBackend interface {
	// SetPresentMode sets the present mode used by the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the colour the frame is cleared to.
	//
	// Parameters:
	//   - color: RGBA in [0, 1]
	SetClearColor(color [4]float64)

	// ConfigureSurface (re)configures the swapchain and recreates size-dependent targets.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	//
	// Returns:
	//   - error: an error if a render target could not be created
	ConfigureSurface(width, height int) error

	// InitMesh uploads vertex and index data into GPU buffers.
	//
	// Parameters:
	//   - vertices: serialized vertex data
	//   - indices: serialized uint32 indices
	//   - indexCount: number of indices to draw
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMesh(vertices, indices []byte, indexCount uint32) error

	// InitUniforms creates the camera and model uniform buffers.
	//
	// Parameters:
	//   - cameraSize: camera uniform size in bytes
	//   - modelSize: model uniform size in bytes
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitUniforms(cameraSize, modelSize uint64) error

	// InitTexture uploads the cube texture and creates its sampler.
	//
	// Parameters:
	//   - texture: RGBA8 pixel data
	//   - sampler: sampler configuration
	//
	// Returns:
	//   - error: an error if texture or sampler creation fails
	InitTexture(texture common.TextureStagingData, sampler SamplerStagingData) error

	// InitPipeline compiles both shader stages, builds the bind group over the uniforms,
	// texture and sampler, and creates the render pipeline.
	//
	// Parameters:
	//   - vertex: the vertex stage
	//   - fragment: the fragment stage
	//
	// Returns:
	//   - error: an error if compilation or pipeline creation fails
	InitPipeline(vertex, fragment shader.Shader) error

	// WriteCamera writes bytes into the camera uniform buffer.
	//
	// Parameters:
	//   - offset: byte offset into the buffer
	//   - data: bytes to write
	WriteCamera(offset uint64, data []byte)

	// WriteModel writes the model matrix uniform.
	//
	// Parameters:
	//   - data: 64 bytes of column-major matrix data
	WriteModel(data []byte)

	// DrawFrame acquires the next surface texture, clears it, draws the mesh unless it was
	// culled and presents.
	//
	// Parameters:
	//   - drawMesh: false to only clear and present
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired or encoded
	DrawFrame(drawMesh bool) error

	// Release frees every GPU object owned by the backend.
	Release()
}
