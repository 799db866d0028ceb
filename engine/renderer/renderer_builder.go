package renderer

import (
	"github.com/Carmen-Shannon/loki-go/common"
	"github.com/Carmen-Shannon/loki-go/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count for the renderer.
// When not specified, the default is MSAA4x. Use MSAAOff to disable MSAA entirely.
//
// Parameters:
//   - count: the MSAASampleCount to use
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.msaa = count
	}
}

// WithForceSoftwareRenderer forces the WebGPU adapter request to use the fallback (software) adapter.
//
// Parameters:
//   - force: true to request the fallback adapter
//
// Returns:
//   - RendererBuilderOption: a function that applies the fallback adapter option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithClearColor sets the colour each frame is cleared to.
//
// Parameters:
//   - red, green, blue, alpha: colour components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that sets the clear colour
func WithClearColor(red, green, blue, alpha float64) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = [4]float64{red, green, blue, alpha}
	}
}

// WithTexture sets the texture mapped onto the cube. Defaults to a generated checkerboard.
//
// Parameters:
//   - texture: RGBA8 pixel data
//
// Returns:
//   - RendererBuilderOption: a function that sets the texture
func WithTexture(texture common.TextureStagingData) RendererBuilderOption {
	return func(r *renderer) {
		r.texture = texture
	}
}

// WithSampler overrides the texture sampler configuration.
//
// Parameters:
//   - sampler: the sampler settings
//
// Returns:
//   - RendererBuilderOption: a function that sets the sampler
func WithSampler(sampler SamplerStagingData) RendererBuilderOption {
	return func(r *renderer) {
		r.sampler = sampler
	}
}

// WithMesh replaces the default cube mesh.
//
// Parameters:
//   - m: the mesh to draw
//
// Returns:
//   - RendererBuilderOption: a function that sets the mesh
func WithMesh(m *mesh.Mesh) RendererBuilderOption {
	return func(r *renderer) {
		if m != nil {
			r.mesh = m
		}
	}
}

// WithModelMatrix sets the initial model matrix. Defaults to a -55 degree rotation about X.
//
// Parameters:
//   - model: the model-to-world matrix
//
// Returns:
//   - RendererBuilderOption: a function that sets the model matrix
func WithModelMatrix(model mgl32.Mat4) RendererBuilderOption {
	return func(r *renderer) {
		r.model = model
	}
}
