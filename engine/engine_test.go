package engine

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/loki-go/common"
	"github.com/Carmen-Shannon/loki-go/engine/camera"
	"github.com/Carmen-Shannon/loki-go/engine/logger"
	"github.com/Carmen-Shannon/loki-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

type events struct{ list []string }

func (ev *events) add(s string) { ev.list = append(ev.list, s) }

func (ev *events) take() []string {
	out := ev.list
	ev.list = nil
	return out
}

type fakeWindow struct {
	update  func()
	resize  func(width, height int)
	sink    window.InputSink
	frames  int
	closed  int
	running bool
}

func (w *fakeWindow) SetUpdateCallback(callback func())                  { w.update = callback }
func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.resize = callback }
func (w *fakeWindow) SetInputSink(sink window.InputSink)                 { w.sink = sink }
func (w *fakeWindow) CursorCaptured() bool                               { return true }
func (w *fakeWindow) SetCursorCaptured(bool)                             {}
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor         { return nil }
func (w *fakeWindow) Time() float64                                      { return 0 }
func (w *fakeWindow) IsRunning() bool                                    { return w.running }
func (w *fakeWindow) Width() int                                         { return 800 }
func (w *fakeWindow) Height() int                                        { return 600 }

func (w *fakeWindow) Close() error {
	w.closed++
	w.running = false
	return nil
}

func (w *fakeWindow) ProcessMessages() {
	for i := 0; i < w.frames && w.running; i++ {
		w.update()
	}
}

type fakeRenderer struct {
	ev         *events
	view       mgl32.Mat4
	projection mgl32.Mat4
	width      int
	height     int
	drawErr    error
}

func (r *fakeRenderer) UploadView(view mgl32.Mat4) {
	r.ev.add("view")
	r.view = view
}

func (r *fakeRenderer) UploadProjection(projection mgl32.Mat4) {
	r.ev.add("projection")
	r.projection = projection
}

func (r *fakeRenderer) UploadCamera(camera.GPUCameraUniform) { r.ev.add("camera") }
func (r *fakeRenderer) UploadModel(mgl32.Mat4)               { r.ev.add("model") }
func (r *fakeRenderer) Size() (int, int)                     { return r.width, r.height }
func (r *fakeRenderer) Release()                             { r.ev.add("release") }

func (r *fakeRenderer) Resize(width, height int) error {
	r.ev.add("resize")
	r.width, r.height = width, height
	return nil
}

func (r *fakeRenderer) Draw() error {
	r.ev.add("draw")
	return r.drawErr
}

type harness struct {
	e   *engine
	w   *fakeWindow
	r   *fakeRenderer
	ev  *events
	now float64
	log *bytes.Buffer
}

func newHarness(t *testing.T, options ...EngineBuilderOption) *harness {
	t.Helper()
	h := &harness{ev: &events{}, w: &fakeWindow{running: true}, log: &bytes.Buffer{}}
	h.r = &fakeRenderer{ev: h.ev}
	l := logger.NewLogger(logger.WithOutput(h.log), logger.WithFlags(0))

	base := []EngineBuilderOption{
		WithWindow(h.w),
		WithRenderer(h.r),
		WithLogger(l),
		WithTimeSource(func() float64 { return h.now }),
	}
	h.e = NewEngine(append(base, options...)...).(*engine)
	h.e.SetTickCallback(func(float32) { h.ev.add("tick") })
	h.e.SetRenderCallback(func(float32) { h.ev.add("render") })
	h.e.start()
	return h
}

// step advances the fake clock by dt and runs one frame through the window callback.
func (h *harness) step(dt float64) []string {
	h.now += dt
	h.w.update()
	return h.ev.take()
}

func TestFrameOrdering(t *testing.T) {
	h := newHarness(t)

	got := h.step(0.04)
	want := []string{"tick", "tick", "projection", "view", "draw", "render"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("first frame: expected %v, got %v", want, got)
	}

	got = h.step(0.01)
	want = []string{"view", "draw", "render"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("idle frame: expected %v, got %v", want, got)
	}
}

func TestZoomUploadsProjection(t *testing.T) {
	h := newHarness(t)
	h.step(0.01)

	h.w.sink.Scrolled(0, 5)
	got := h.step(0.01)
	if len(got) == 0 || got[0] != "projection" {
		t.Fatalf("expected a projection upload after scroll, got %v", got)
	}
	if h.r.projection != h.e.Camera().ProjectionMatrix() {
		t.Error("uploaded projection does not match the camera")
	}
	if h.e.Camera().Fov() != camera.DefaultFov-5 {
		t.Errorf("expected fov %v, got %v", camera.DefaultFov-5, h.e.Camera().Fov())
	}
}

func TestMovementReachesView(t *testing.T) {
	h := newHarness(t)
	h.step(0.01)

	h.w.sink.KeyDown(common.KeyW)
	h.step(0.1)

	pos := h.e.Camera().Position()
	if pos.Z() >= camera.DefaultPosition.Z() {
		t.Errorf("camera should move forward, z=%v", pos.Z())
	}
	if h.r.view != h.e.Camera().ViewMatrix() {
		t.Error("uploaded view does not match the camera")
	}
}

func TestResize(t *testing.T) {
	h := newHarness(t)
	h.step(0.01)

	h.w.resize(1600, 800)
	if got := h.ev.take(); !reflect.DeepEqual(got, []string{"resize"}) {
		t.Errorf("expected a surface resize, got %v", got)
	}
	if h.e.Camera().Aspect() != 2 {
		t.Errorf("expected aspect 2, got %v", h.e.Camera().Aspect())
	}
	if got := h.step(0.01); got[0] != "projection" {
		t.Errorf("resize should force a projection upload, got %v", got)
	}

	h.w.resize(0, 0)
	if got := h.ev.take(); len(got) != 0 {
		t.Errorf("minimized window should be ignored, got %v", got)
	}
	if h.e.Camera().Aspect() != 2 {
		t.Error("zero size must not change the aspect ratio")
	}
}

func TestDrawErrorSkipsFrame(t *testing.T) {
	h := newHarness(t)
	h.r.drawErr = errors.New("surface outdated")

	got := h.step(0.01)
	if got[len(got)-1] != "render" {
		t.Errorf("loop should continue after a draw error, got %v", got)
	}
	if !strings.Contains(h.log.String(), "[WARNING] [Engine] frame 1 skipped: surface outdated") {
		t.Errorf("expected a warning, got %q", h.log.String())
	}
}

func TestHeadless(t *testing.T) {
	ev := &events{}
	w := &fakeWindow{running: true, frames: 3}
	now := 0.0
	e := NewEngine(WithWindow(w), WithTimeSource(func() float64 { now += 0.02; return now }))
	e.SetRenderCallback(func(float32) { ev.add("render") })
	e.Run()

	if len(ev.take()) != 3 {
		t.Error("expected three frames without a renderer")
	}
	if e.Clock() == nil || e.Clock().FrameCount() == 0 {
		t.Error("Run should create and advance a clock")
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	h.e.SetRenderCallback(func(float32) { h.e.Quit() })
	h.w.frames = 10
	h.e.Run()

	if h.w.closed != 1 {
		t.Errorf("expected the window closed once, got %d", h.w.closed)
	}
	h.e.Quit()
	if h.w.closed != 1 {
		t.Error("second Quit should be a no-op")
	}
	if got := h.step(0.01); len(got) != 0 {
		t.Errorf("no frame should run after quit, got %v", got)
	}
}

func TestInputRouted(t *testing.T) {
	h := newHarness(t)
	if h.w.sink != window.InputSink(h.e.Input()) {
		t.Error("window events should reach the engine's accumulator")
	}
}
