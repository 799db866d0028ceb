package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/loki-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// InputSink receives raw input events from the window.
// input.Accumulator satisfies it.
type InputSink interface {
	KeyDown(keyCode uint32)
	KeyUp(keyCode uint32)
	CursorMoved(x, y float64)
	Scrolled(dx, dy float64)

	// Recaptured marks a cursor discontinuity.
	Recaptured()

	// Release drops every held key.
	Release()
}

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetInputSink routes key, cursor and scroll events to sink.
	//
	// Parameters:
	//   - sink: the event receiver (or nil to drop input)
	SetInputSink(sink InputSink)

	// CursorCaptured reports whether the cursor is hidden and locked to the window.
	//
	// Returns:
	//   - bool: true while captured
	CursorCaptured() bool

	// SetCursorCaptured hides and locks the cursor, or releases it.
	// Any change raises Recaptured on the input sink.
	//
	// Parameters:
	//   - captured: the desired capture state
	SetCursorCaptured(captured bool)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Time returns the monotonic wall-clock time in seconds since the window system started.
	//
	// Returns:
	//   - float64: seconds
	Time() float64

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// resizable allows the user to resize the window.
	resizable bool

	// captured is the current cursor capture state.
	captured bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)

	// sink receives input events.
	sink InputSink
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "Voxel Engine",
		width:     800,
		height:    600,
		resizable: true,
		captured:  true,
	}
	for _, opt := range options {
		opt(w)
	}
	if w.width <= 0 || w.height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", w.width, w.height)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetInputSink(sink InputSink) {
	w.sink = sink
}

func (w *engineWindow) CursorCaptured() bool {
	return w.captured
}

func (w *engineWindow) SetCursorCaptured(captured bool) {
	if w.captured == captured {
		return
	}
	w.captured = captured
	platformSetCursorCaptured(w, captured)
	if w.sink != nil {
		w.sink.Recaptured()
	}
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) Time() float64 {
	return platformTime()
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// keyEvent dispatches a translated key action. Escape toggles cursor capture and is not
// forwarded to the sink.
func (w *engineWindow) keyEvent(keyCode uint32, pressed bool) {
	if keyCode == common.KeyEsc {
		if pressed {
			w.SetCursorCaptured(!w.captured)
		}
		return
	}
	if w.sink == nil {
		return
	}
	if pressed {
		w.sink.KeyDown(keyCode)
	} else {
		w.sink.KeyUp(keyCode)
	}
}

// focusEvent releases held keys when focus is lost so no movement sticks, and marks a
// cursor discontinuity when it comes back.
func (w *engineWindow) focusEvent(focused bool) {
	if w.sink == nil {
		return
	}
	if focused {
		w.sink.Recaptured()
		return
	}
	w.sink.Release()
}
