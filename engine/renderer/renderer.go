package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/loki-go/common"
	"github.com/Carmen-Shannon/loki-go/engine/camera"
	"github.com/Carmen-Shannon/loki-go/engine/mesh"
	"github.com/Carmen-Shannon/loki-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultModelRotation is the cube's initial tilt about the X axis, in degrees.
const DefaultModelRotation float32 = -55

// SurfaceTarget is the window-side source of a WebGPU surface.
type SurfaceTarget interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width  int
	height int

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           [4]float64
	texture              common.TextureStagingData
	sampler              SamplerStagingData
	mesh                 *mesh.Mesh
	model                mgl32.Mat4

	// Last uploaded camera matrices, kept for culling. Culling is off until both arrive.
	view          mgl32.Mat4
	projection    mgl32.Mat4
	hasView       bool
	hasProjection bool
	boundsCenter  mgl32.Vec3
	boundsRadius  float32
}

// Renderer draws the textured cube from the camera's point of view.
//
// The Renderer owns the uniform layout: it knows where the view and projection live in the
// camera buffer, so callers only hand it matrices. Each upload is a queue write; nothing is
// drawn until Draw.
type Renderer interface {
	// UploadView writes the view matrix into the camera uniform.
	//
	// Parameters:
	//   - view: the world-to-camera matrix
	UploadView(view mgl32.Mat4)

	// UploadProjection writes the projection matrix into the camera uniform.
	//
	// Parameters:
	//   - projection: the camera-to-clip matrix
	UploadProjection(projection mgl32.Mat4)

	// UploadCamera writes the whole camera uniform.
	//
	// Parameters:
	//   - uniform: view and projection packed for the GPU
	UploadCamera(uniform camera.GPUCameraUniform)

	// UploadModel writes the model matrix uniform.
	//
	// Parameters:
	//   - model: the model-to-world matrix
	UploadModel(model mgl32.Mat4)

	// Resize configures the underlying backend to handle a new surface size.
	// Zero-sized surfaces (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	Resize(width, height int) error

	// Size returns the current surface size.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// Draw renders and presents one frame.
	//
	// Returns:
	//   - error: an error if the frame could not be rendered
	Draw() error

	// Release frees all GPU resources. The Renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given surface target and uploads the mesh, texture and
// initial uniforms. The surface descriptor is platform-specific and is typically obtained from
// Window.SurfaceDescriptor().
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - target: the surface source, usually the window
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready-to-draw renderer
//   - error: an error if any GPU resource could not be created
func NewRenderer(backendType RendererBackendType, target SurfaceTarget, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	var backend RendererBackend
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(target.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
		if err != nil {
			return nil, err
		}
		backend = b
	}

	if err := r.init(backend, target.Width(), target.Height()); err != nil {
		backend.Release()
		return nil, err
	}
	return r, nil
}

func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
		clearColor:  [4]float64{0.1, 0.1, 0.1, 1.0},
		texture:     common.CheckerTexture(256, 32, [4]byte{200, 140, 60, 255}, [4]byte{90, 60, 30, 255}),
		mesh:        mesh.Cube(),
		model:       mgl32.HomogRotate3DX(mgl32.DegToRad(DefaultModelRotation)),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	return r
}

// init drives the backend through resource creation in dependency order.
func (r *renderer) init(backend RendererBackend, width, height int) error {
	if !r.texture.Valid() {
		return fmt.Errorf("invalid texture: %dx%d with %d bytes", r.texture.Width, r.texture.Height, len(r.texture.Pixels))
	}

	r.backend = backend
	r.width, r.height = width, height
	r.boundsCenter, r.boundsRadius = r.mesh.Bounds()

	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)

	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to configure surface: %w", err)
	}
	if err := r.backend.InitMesh(r.mesh.VertexBytes(), r.mesh.IndexBytes(), r.mesh.IndexCount()); err != nil {
		return fmt.Errorf("failed to upload mesh: %w", err)
	}

	var uniform camera.GPUCameraUniform
	if err := r.backend.InitUniforms(uint64(uniform.Size()), 64); err != nil {
		return fmt.Errorf("failed to create uniform buffers: %w", err)
	}
	if err := r.backend.InitTexture(r.texture, r.sampler); err != nil {
		return fmt.Errorf("failed to upload texture: %w", err)
	}
	if err := r.backend.InitPipeline(shader.CubeVertex(), shader.CubeFragment()); err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	r.backend.WriteModel(common.Mat4Bytes(r.model))
	return nil
}

func (r *renderer) UploadView(view mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view, r.hasView = view, true
	r.backend.WriteCamera(camera.ViewOffset, common.Mat4Bytes(view))
}

func (r *renderer) UploadProjection(projection mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projection, r.hasProjection = projection, true
	r.backend.WriteCamera(camera.ProjectionOffset, common.Mat4Bytes(projection))
}

func (r *renderer) UploadCamera(uniform camera.GPUCameraUniform) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view, r.projection = uniform.View, uniform.Projection
	r.hasView, r.hasProjection = true, true
	r.backend.WriteCamera(0, uniform.Marshal())
}

func (r *renderer) UploadModel(model mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.model = model
	r.backend.WriteModel(common.Mat4Bytes(model))
}

func (r *renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width <= 0 || height <= 0 {
		return nil
	}
	if width == r.width && height == r.height {
		return nil
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("failed to resize surface to %dx%d: %w", width, height, err)
	}
	r.width, r.height = width, height
	return nil
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Draw() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.DrawFrame(r.meshVisible())
}

// meshVisible tests the model's bounding sphere against the camera frustum. Caller must
// hold the mutex.
func (r *renderer) meshVisible() bool {
	if !r.hasView || !r.hasProjection {
		return true
	}
	center := mgl32.TransformCoordinate(r.boundsCenter, r.model)
	scale := max(r.model.Col(0).Vec3().Len(), r.model.Col(1).Vec3().Len(), r.model.Col(2).Vec3().Len())
	frustum := common.ExtractFrustum(r.projection.Mul4(r.view))
	return frustum.IntersectsSphere(center, r.boundsRadius*scale)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
