package shader

import "fmt"

// CompileError reports a shader that failed validation or GPU module creation.
type CompileError struct {
	Key     string
	Type    ShaderType
	Message string
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader %q failed to compile: %s", e.Type, e.Key, e.Message)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}
