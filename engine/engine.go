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

// engine implements the Engine interface.
// The whole frame runs on the window's thread inside the update callback.
type engine struct {
	window   window.Window
	camera   camera.Camera
	clock    *clock.Clock
	renderer renderer.Renderer
	input    *input.Accumulator
	log      logger.Logger

	// timeSource returns the monotonic wall clock in seconds. Defaults to the window's timer.
	timeSource func() float64

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(step float32)
	renderCallback func(deltaTime float32)

	// projectionDirty forces a projection upload on the next frame (first frame, resize).
	projectionDirty bool
	quit            bool
	frames          uint64
}

// Engine is the main entry point for the harness.
// It owns the frame loop: clock advance, fixed-step drain, camera update, uniform upload and draw.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the camera driven by the frame loop.
	Camera() camera.Camera

	// Clock returns the frame clock. Nil until Run starts unless one was supplied with WithClock.
	Clock() *clock.Clock

	// Renderer returns the rendering collaborator, or nil when running headless.
	Renderer() renderer.Renderer

	// Input returns the accumulator that window events are routed to.
	Input() *input.Accumulator

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called once per fixed step, after the camera's
	// fixed update.
	//
	// Parameters:
	//   - callback: function receiving the fixed step in seconds
	SetTickCallback(callback func(step float32))

	// SetRenderCallback registers the function called each frame after the draw.
	//
	// Parameters:
	//   - callback: function receiving the frame delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// Run starts the frame loop and blocks until the window closes.
	Run()

	// Quit closes the window, ending Run after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Missing collaborators get defaults: a default camera and WASD bindings.
// Window events are routed to the input accumulator and resizes to the camera and renderer.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		projectionDirty: true,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.camera == nil {
		e.camera = camera.NewCamera()
	}
	if e.input == nil {
		e.input = input.NewAccumulator(input.DefaultBindings())
	}
	if e.log == nil {
		e.log = logger.Default()
	}
	e.log = e.log.WithComponent("Engine")

	if e.window != nil {
		if e.timeSource == nil {
			e.timeSource = e.window.Time
		}
		e.window.SetInputSink(e.input)
		e.window.SetResizeCallback(e.resize)
		e.window.SetUpdateCallback(e.frame)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Clock() *clock.Clock {
	return e.clock
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Input() *input.Accumulator {
	return e.input
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickCallback(callback func(step float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// Run starts the clock at the current time and hands control to the window's message loop.
func (e *engine) Run() {
	if e.window == nil {
		e.log.Errorf("no window configured")
		return
	}
	e.start()
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	if e.quit {
		return
	}
	e.quit = true
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			e.log.Warningf("failed to close window: %v", err)
		}
	}
}

// start creates the clock and profiler if they were not supplied.
func (e *engine) start() {
	if e.clock == nil {
		e.clock = clock.NewClock(e.timeSource())
	} else {
		e.clock.Reset(e.timeSource())
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(e.clock, profiler.WithLogger(e.log))
	}
}

// frame runs one iteration of the loop. Events for this frame have already been polled.
func (e *engine) frame() {
	if e.quit {
		return
	}
	e.frames++
	e.clock.Advance(e.timeSource())

	step := float32(e.clock.FixedTimeStep())
	for e.clock.FixedStepDue() {
		e.camera.FixedUpdate(step)
		if e.tickCallback != nil {
			e.tickCallback(step)
		}
	}

	deltaTime := float32(e.clock.DeltaTime())
	if e.camera.Update(e.input.Snapshot(), deltaTime) {
		e.projectionDirty = true
	}

	if e.renderer != nil {
		if e.projectionDirty {
			e.renderer.UploadProjection(e.camera.ProjectionMatrix())
			e.projectionDirty = false
		}
		e.renderer.UploadView(e.camera.ViewMatrix())
		if err := e.renderer.Draw(); err != nil {
			e.log.Warningf("frame %d skipped: %v", e.frames, err)
		}
	}

	if e.renderCallback != nil {
		e.renderCallback(deltaTime)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

// resize updates the camera aspect ratio and the render surface. A zero size (minimized
// window) leaves both untouched.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.camera.SetAspect(float32(width) / float32(height))
	e.projectionDirty = true
	if e.renderer != nil {
		if err := e.renderer.Resize(width, height); err != nil {
			e.log.Errorf("%v", err)
		}
	}
}
