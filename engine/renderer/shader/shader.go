package shader

import (
	"fmt"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader entry point runs in.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// attribute returns the WGSL stage attribute that must precede the entry point.
func (t ShaderType) attribute() string {
	switch t {
	case ShaderTypeVertex:
		return "@vertex"
	case ShaderTypeFragment:
		return "@fragment"
	default:
		return ""
	}
}

// shader is the implementation of the Shader interface.
type shader struct {
	key        string
	source     string
	shaderType ShaderType
	entryPoint string
}

// Shader defines the interface for a WGSL shader stage: its key, source, stage and entry point,
// plus compilation into a GPU shader module.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as the GPU object label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// Type returns the pipeline stage of this shader.
	//
	// Returns:
	//   - ShaderType: vertex or fragment
	Type() ShaderType

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// Validate runs the checks that do not need a GPU device: the source must be non-empty,
	// declare the entry point with the stage attribute, and have balanced braces.
	//
	// Returns:
	//   - error: a *CompileError describing the first problem, or nil
	Validate() error

	// Compile validates the shader and creates a GPU shader module from it.
	//
	// Parameters:
	//   - device: the device to create the module on
	//
	// Returns:
	//   - *wgpu.ShaderModule: the compiled module
	//   - error: a *CompileError if validation or module creation fails
	Compile(device *wgpu.Device) (*wgpu.ShaderModule, error)
}

var _ Shader = &shader{}

// NewShader creates a Shader for one stage of a WGSL source.
//
// Parameters:
//   - key: unique identifier, used as the GPU label
//   - shaderType: the pipeline stage
//   - entryPoint: the entry point function name
//   - source: WGSL source code
//
// Returns:
//   - Shader: the new shader
func NewShader(key string, shaderType ShaderType, entryPoint, source string) Shader {
	return &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
		entryPoint: entryPoint,
	}
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Type() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Validate() error {
	if strings.TrimSpace(s.source) == "" {
		return s.compileError("empty shader source", nil)
	}
	if s.entryPoint == "" {
		return s.compileError("no entry point set", nil)
	}

	attr := s.shaderType.attribute()
	if attr == "" {
		return s.compileError(fmt.Sprintf("unsupported shader type %d", int(s.shaderType)), nil)
	}
	if !declaresEntryPoint(s.source, attr, s.entryPoint) {
		return s.compileError(fmt.Sprintf("entry point %q with %s attribute not found", s.entryPoint, attr), nil)
	}

	if depth := strings.Count(s.source, "{") - strings.Count(s.source, "}"); depth != 0 {
		return s.compileError(fmt.Sprintf("unbalanced braces (%+d)", depth), nil)
	}
	return nil
}

func (s *shader) Compile(device *wgpu.Device) (*wgpu.ShaderModule, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	})
	if err != nil {
		return nil, s.compileError(err.Error(), err)
	}
	return module, nil
}

func (s *shader) compileError(message string, cause error) *CompileError {
	return &CompileError{
		Key:     s.key,
		Type:    s.shaderType,
		Message: message,
		Err:     cause,
	}
}

// declaresEntryPoint reports whether source contains "fn <entry>(" with attr among the
// tokens directly preceding it.
func declaresEntryPoint(source, attr, entry string) bool {
	needle := "fn " + entry + "("
	idx := strings.Index(source, needle)
	if idx < 0 {
		return false
	}
	// the attribute may sit on the previous line or inline before fn
	prefix := source[:idx]
	if nl := strings.LastIndex(strings.TrimRight(prefix, " \t\r\n"), "\n"); nl >= 0 {
		prefix = prefix[nl:]
	}
	return strings.Contains(prefix, attr)
}
