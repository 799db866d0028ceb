package shader

import (
	_ "embed"
)

// CubeSource is the WGSL source for the textured cube pipeline.
// Bindings: 0 camera uniform, 1 model matrix, 2 texture, 3 sampler.
//
//go:embed assets/cube.wgsl
var CubeSource string

// CubeVertex returns the vertex stage of the cube shader.
//
// Returns:
//   - Shader: the vertex shader (entry point vs_main)
func CubeVertex() Shader {
	return NewShader("cube.vs", ShaderTypeVertex, "vs_main", CubeSource)
}

// CubeFragment returns the fragment stage of the cube shader.
//
// Returns:
//   - Shader: the fragment shader (entry point fs_main)
func CubeFragment() Shader {
	return NewShader("cube.fs", ShaderTypeFragment, "fs_main", CubeSource)
}
