package engine

import (
	"github.com/Carmen-Shannon/loki-go/engine/camera"
	"github.com/Carmen-Shannon/loki-go/engine/clock"
	"github.com/Carmen-Shannon/loki-go/engine/input"
	"github.com/Carmen-Shannon/loki-go/engine/logger"
	"github.com/Carmen-Shannon/loki-go/engine/profiler"
	"github.com/Carmen-Shannon/loki-go/engine/renderer"
	"github.com/Carmen-Shannon/loki-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler sets a pre-configured profiler. By default one is created on Run that
// reports the engine clock.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window that drives the frame loop.
//
// Parameters:
//   - w: a created Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithCamera sets the camera updated each frame.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithClock sets the frame clock. Run resets it to the current time before the first frame.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(c *clock.Clock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}

// WithRenderer sets the rendering collaborator. Without one the loop runs headless.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithTimeSource replaces the wall clock read at the start of each frame.
//
// Parameters:
//   - now: returns monotonic time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTimeSource(now func() float64) EngineBuilderOption {
	return func(e *engine) {
		e.timeSource = now
	}
}

// WithInput sets the accumulator window events are routed to.
//
// Parameters:
//   - a: the input accumulator
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInput(a *input.Accumulator) EngineBuilderOption {
	return func(e *engine) {
		e.input = a
	}
}

// WithLogger sets the logger used for frame errors.
func WithLogger(l logger.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.log = l
	}
}
