package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/loki-go/common"
	"github.com/Carmen-Shannon/loki-go/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-4

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) < epsilon
}

func vecAlmostEqual(a, b mgl32.Vec3) bool {
	return almostEqual(a[0], b[0]) && almostEqual(a[1], b[1]) && almostEqual(a[2], b[2])
}

// primed returns a camera whose first cursor sample has been consumed at (0, 0).
func primed(options ...CameraBuilderOption) Camera {
	c := NewCamera(options...)
	c.Update(input.Snapshot{}, 0)
	return c
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	if c.Position() != DefaultPosition {
		t.Errorf("expected position %v, got %v", DefaultPosition, c.Position())
	}
	if c.Front() != DefaultFront {
		t.Errorf("expected front %v, got %v", DefaultFront, c.Front())
	}
	if c.Yaw() != DefaultYaw || c.Pitch() != DefaultPitch {
		t.Errorf("expected yaw/pitch (%v, %v), got (%v, %v)", DefaultYaw, DefaultPitch, c.Yaw(), c.Pitch())
	}
	if c.Fov() != DefaultFov || c.Mode() != ModeSpectator {
		t.Errorf("expected fov %v in spectator mode, got %v in %v", DefaultFov, c.Fov(), c.Mode())
	}

	want := mgl32.LookAtV(DefaultPosition, DefaultPosition.Add(DefaultFront), DefaultUp)
	if !c.ViewMatrix().ApproxEqual(want) {
		t.Errorf("unexpected initial view matrix %v", c.ViewMatrix())
	}
	proj := common.PerspectiveMat4(mgl32.DegToRad(DefaultFov), DefaultAspect, DefaultNear, DefaultFar)
	if !c.ProjectionMatrix().ApproxEqual(proj) {
		t.Errorf("unexpected initial projection matrix %v", c.ProjectionMatrix())
	}
}

func TestForwardMovement(t *testing.T) {
	c := NewCamera()
	c.Update(input.Snapshot{Forward: true}, 1)

	want := mgl32.Vec3{0, 0, -2}
	if !vecAlmostEqual(c.Position(), want) {
		t.Errorf("expected %v, got %v", want, c.Position())
	}
}

func TestStrafeAndOpposingKeys(t *testing.T) {
	testCases := []struct {
		name string
		in   input.Snapshot
		want mgl32.Vec3
	}{
		{name: "right", in: input.Snapshot{Right: true}, want: mgl32.Vec3{5, 0, 3}},
		{name: "left", in: input.Snapshot{Left: true}, want: mgl32.Vec3{-5, 0, 3}},
		{name: "backward", in: input.Snapshot{Backward: true}, want: mgl32.Vec3{0, 0, 8}},
		{name: "forward and backward", in: input.Snapshot{Forward: true, Backward: true}, want: DefaultPosition},
		{name: "left and right", in: input.Snapshot{Left: true, Right: true}, want: DefaultPosition},
		{name: "forward and right", in: input.Snapshot{Forward: true, Right: true}, want: mgl32.Vec3{5, 0, -2}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera()
			c.Update(tc.in, 1)
			if !vecAlmostEqual(c.Position(), tc.want) {
				t.Errorf("expected %v, got %v", tc.want, c.Position())
			}
		})
	}
}

func TestMovementScalesWithDeltaTime(t *testing.T) {
	c := NewCamera()
	c.Update(input.Snapshot{Forward: true}, 0.1)
	if !vecAlmostEqual(c.Position(), mgl32.Vec3{0, 0, 2.5}) {
		t.Errorf("expected half a unit of travel, got %v", c.Position())
	}
}

func TestFrameCoupledMovement(t *testing.T) {
	c := NewCamera(WithFrameCoupledMovement(true))
	c.Update(input.Snapshot{Forward: true}, 0.001)
	if !vecAlmostEqual(c.Position(), mgl32.Vec3{0, 0, -2}) {
		t.Errorf("expected a full speed step regardless of delta time, got %v", c.Position())
	}
}

func TestFirstSampleOnlyPrimes(t *testing.T) {
	c := NewCamera()
	c.Update(input.Snapshot{CursorX: 400, CursorY: 300}, 0.016)
	if c.Yaw() != DefaultYaw || c.Pitch() != DefaultPitch {
		t.Fatalf("first sample must not rotate, got yaw %v pitch %v", c.Yaw(), c.Pitch())
	}

	c.Update(input.Snapshot{CursorX: 410, CursorY: 290}, 0.016)
	if !almostEqual(c.Yaw(), DefaultYaw+1) {
		t.Errorf("expected yaw %v, got %v", DefaultYaw+1, c.Yaw())
	}
	if !almostEqual(c.Pitch(), 1) {
		t.Errorf("expected pitch 1 (cursor moved up), got %v", c.Pitch())
	}
}

func TestRecaptureSkipsDelta(t *testing.T) {
	c := primed()
	c.Update(input.Snapshot{CursorX: 500, Recapture: true}, 0.016)
	if c.Yaw() != DefaultYaw {
		t.Fatalf("recapture sample must not rotate, got yaw %v", c.Yaw())
	}

	c.Update(input.Snapshot{CursorX: 510}, 0.016)
	if !almostEqual(c.Yaw(), DefaultYaw+1) {
		t.Errorf("expected yaw %v after recapture, got %v", DefaultYaw+1, c.Yaw())
	}

	c.Recapture()
	c.Update(input.Snapshot{CursorX: 900}, 0.016)
	if !almostEqual(c.Yaw(), DefaultYaw+1) {
		t.Errorf("explicit Recapture must skip the next delta, got yaw %v", c.Yaw())
	}
}

func TestPitchClamp(t *testing.T) {
	c := primed()

	c.Update(input.Snapshot{CursorY: -10000}, 0.016)
	if c.Pitch() != MaxPitch {
		t.Errorf("expected pitch clamped to %v, got %v", MaxPitch, c.Pitch())
	}

	c.Update(input.Snapshot{CursorY: 10000}, 0.016)
	if c.Pitch() != -MaxPitch {
		t.Errorf("expected pitch clamped to %v, got %v", -MaxPitch, c.Pitch())
	}
}

func TestFrontStaysUnitLength(t *testing.T) {
	c := primed()
	cursors := [][2]float64{{37, -12}, {-250, 80}, {1200, -900}, {3, 3}, {-4000, 7000}}
	for _, cur := range cursors {
		c.Update(input.Snapshot{CursorX: cur[0], CursorY: cur[1], Forward: true}, 0.016)
		if l := c.Front().Len(); !almostEqual(l, 1) {
			t.Fatalf("front not unit length after cursor %v: %v", cur, l)
		}
		if l := c.Right().Len(); !almostEqual(l, 1) {
			t.Fatalf("right not unit length after cursor %v: %v", cur, l)
		}
		if p := c.Pitch(); p < -MaxPitch || p > MaxPitch {
			t.Fatalf("pitch escaped range: %v", p)
		}
	}
}

func TestZoom(t *testing.T) {
	testCases := []struct {
		name    string
		options []CameraBuilderOption
		scroll  float64
		want    float32
	}{
		{name: "zoom in", scroll: 0.5, want: 44.5},
		{name: "saturates at min", scroll: 100, want: MinFov},
		{name: "zoom out past max resets", scroll: -1, want: DefaultFov},
		{name: "custom reset", options: []CameraBuilderOption{WithFov(20), WithZoomResetFov(30)}, scroll: -40, want: 30},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(tc.options...)
			changed := c.Update(input.Snapshot{ScrollY: tc.scroll, Zoom: true}, 0.016)
			if !changed {
				t.Error("expected projection change to be reported")
			}
			if !almostEqual(c.Fov(), tc.want) {
				t.Errorf("expected fov %v, got %v", tc.want, c.Fov())
			}
			if c.Fov() < MinFov || c.Fov() > MaxFov {
				t.Errorf("fov escaped range: %v", c.Fov())
			}
			want := common.PerspectiveMat4(mgl32.DegToRad(c.Fov()), c.Aspect(), c.Near(), c.Far())
			if !c.ProjectionMatrix().ApproxEqual(want) {
				t.Error("projection matrix not rebuilt from the new fov")
			}
		})
	}
}

func TestNoZoomReportsUnchanged(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()
	if c.Update(input.Snapshot{Forward: true}, 0.016) {
		t.Error("expected no projection change without zoom")
	}
	if c.ProjectionMatrix() != before {
		t.Error("projection matrix changed without zoom")
	}
}

func TestSetPositionKeepsOrientation(t *testing.T) {
	c := primed()
	c.Update(input.Snapshot{CursorX: 100}, 0.016)
	front := c.Front()
	yaw := c.Yaw()

	p := mgl32.Vec3{1, 2, 3}
	c.SetPosition(p)

	if c.Front() != front || c.Yaw() != yaw {
		t.Fatalf("SetPosition must not touch orientation: front %v yaw %v", c.Front(), c.Yaw())
	}
	want := mgl32.LookAtV(p, p.Add(DefaultFront), DefaultUp)
	if !c.ViewMatrix().ApproxEqual(want) {
		t.Errorf("expected default-front view after SetPosition, got %v", c.ViewMatrix())
	}

	c.Update(input.Snapshot{CursorX: 100}, 0.016)
	want = mgl32.LookAtV(p, p.Add(front), DefaultUp)
	if !c.ViewMatrix().ApproxEqualThreshold(want, epsilon) {
		t.Errorf("expected next update to restore the yaw/pitch view, got %v", c.ViewMatrix())
	}
}

func TestSetAspect(t *testing.T) {
	c := NewCamera()
	c.SetAspect(2)
	if c.Aspect() != 2 {
		t.Fatalf("expected aspect 2, got %v", c.Aspect())
	}
	want := common.PerspectiveMat4(mgl32.DegToRad(c.Fov()), 2, c.Near(), c.Far())
	if !c.ProjectionMatrix().ApproxEqual(want) {
		t.Error("projection not rebuilt on aspect change")
	}

	c.SetAspect(0)
	if c.Aspect() != 2 {
		t.Errorf("zero aspect should be ignored, got %v", c.Aspect())
	}
}

func TestFPSModeStaysOnGround(t *testing.T) {
	c := primed(WithMode(ModeFPS))
	// look 30 degrees up
	c.Update(input.Snapshot{CursorY: -300}, 0.016)

	start := c.Position()
	c.Update(input.Snapshot{CursorY: -300, Forward: true}, 1)
	end := c.Position()

	if !almostEqual(end[1], DefaultEyeHeight) {
		t.Errorf("expected eye height %v, got %v", DefaultEyeHeight, end[1])
	}
	dx, dz := end[0]-start[0], end[2]-start[2]
	if d := float32(math.Sqrt(float64(dx*dx + dz*dz))); !almostEqual(d, DefaultSpeed) {
		t.Errorf("expected full speed on the horizontal plane, moved %v", d)
	}
}

func TestFPSJump(t *testing.T) {
	c := primed(WithMode(ModeFPS))
	c.Update(input.Snapshot{Jump: true}, 0.016)
	if !c.Jumping() {
		t.Fatal("expected jump to start")
	}

	step := float32(1.0 / 60.0)
	peak := c.Position()[1]
	for i := 0; i < 600 && c.Jumping(); i++ {
		c.FixedUpdate(step)
		peak = max(peak, c.Position()[1])
	}

	if c.Jumping() {
		t.Fatal("jump never landed")
	}
	if peak <= DefaultEyeHeight+1 {
		t.Errorf("expected peak above %v, got %v", DefaultEyeHeight+1, peak)
	}
	if c.Position()[1] != DefaultEyeHeight {
		t.Errorf("expected landing at eye height, got %v", c.Position()[1])
	}
}

func TestSpectatorIgnoresGravity(t *testing.T) {
	c := NewCamera()
	c.Update(input.Snapshot{Jump: true}, 0.016)
	c.FixedUpdate(1)
	if c.Jumping() || c.Position() != DefaultPosition {
		t.Errorf("spectator should not jump or fall, got %v", c.Position())
	}
}

func TestSetModeCancelsJump(t *testing.T) {
	c := primed(WithMode(ModeFPS))
	c.Update(input.Snapshot{Jump: true}, 0.016)
	c.SetMode(ModeSpectator)
	if c.Jumping() {
		t.Error("leaving FPS mode should cancel the jump")
	}
}

func TestUniformMarshal(t *testing.T) {
	c := NewCamera()
	u := c.Uniform()
	buf := u.Marshal()
	if len(buf) != 128 {
		t.Fatalf("expected 128 bytes, got %d", len(buf))
	}
	view := common.Mat4Bytes(c.ViewMatrix())
	for i := range view {
		if buf[ViewOffset+i] != view[i] {
			t.Fatalf("view bytes differ at %d", i)
		}
	}
}

func TestRecaptureAcrossCursorRestore(t *testing.T) {
	a := input.NewAccumulator(input.DefaultBindings())
	c := NewCamera()

	// Captured cursor wandered far in virtual coordinates.
	a.CursorMoved(5000, 0)
	c.Update(a.Snapshot(), 0.016)
	yaw, pitch := c.Yaw(), c.Pitch()

	// Capture released; the window restores the OS cursor on a later poll.
	a.Recaptured()
	c.Update(a.Snapshot(), 0.016)
	a.CursorMoved(400, 300)
	c.Update(a.Snapshot(), 0.016)

	if !almostEqual(c.Yaw(), yaw) || !almostEqual(c.Pitch(), pitch) {
		t.Errorf("orientation jumped across recapture: yaw %v -> %v, pitch %v -> %v", yaw, c.Yaw(), pitch, c.Pitch())
	}

	a.CursorMoved(410, 300)
	c.Update(a.Snapshot(), 0.016)
	if !almostEqual(c.Yaw(), yaw+10*DefaultSensitivity) {
		t.Errorf("expected yaw %v after a 10 unit move, got %v", yaw+10*DefaultSensitivity, c.Yaw())
	}
}
