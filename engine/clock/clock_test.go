package clock

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

func TestNewClockInitialState(t *testing.T) {
	c := NewClock(12.5)

	if c.LastFrameTime() != 12.5 {
		t.Errorf("expected last frame time 12.5, got %v", c.LastFrameTime())
	}
	if c.DeltaTime() != 0 || c.Accumulator() != 0 {
		t.Errorf("expected zero delta and accumulator, got %v and %v", c.DeltaTime(), c.Accumulator())
	}
	if c.FPS() != 0 || c.FixedFPS() != 0 || c.FrameCount() != 0 {
		t.Errorf("expected zeroed statistics, got fps=%v fixed=%v frames=%d", c.FPS(), c.FixedFPS(), c.FrameCount())
	}
	if !almostEqual(c.FixedTimeStep(), 1.0/60.0) {
		t.Errorf("expected fixed step 1/60, got %v", c.FixedTimeStep())
	}
}

func TestAdvanceSingleFrame(t *testing.T) {
	c := NewClock(0)
	c.Advance(0.016)

	if !almostEqual(c.DeltaTime(), 0.016) {
		t.Errorf("expected delta 0.016, got %v", c.DeltaTime())
	}
	if !almostEqual(c.Accumulator(), 0.016) {
		t.Errorf("expected accumulator 0.016, got %v", c.Accumulator())
	}
	if c.FixedStepDue() {
		t.Error("accumulator below one step must not report a fixed step")
	}
	if !almostEqual(c.Accumulator(), 0.016) {
		t.Errorf("a false FixedStepDue must leave the accumulator alone, got %v", c.Accumulator())
	}
}

func TestAdvanceClampsDelta(t *testing.T) {
	testCases := []struct {
		name    string
		samples []float64
	}{
		{name: "ten second stall", samples: []float64{10}},
		{name: "just over the clamp", samples: []float64{0.2500001}},
		{name: "repeated stalls", samples: []float64{1, 5, 60, 3600}},
		{name: "mixed frames", samples: []float64{0.016, 0.033, 2.0, 2.016}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClock(0)
			for _, now := range tc.samples {
				c.Advance(now)
				if c.DeltaTime() > DefaultMaxDeltaTime {
					t.Fatalf("delta %v exceeds clamp after sample %v", c.DeltaTime(), now)
				}
			}
		})
	}

	c := NewClock(0)
	c.Advance(10)
	if c.DeltaTime() != 0.25 {
		t.Errorf("expected a 10 s stall to yield 0.25, got %v", c.DeltaTime())
	}
	if c.LastFrameTime() != 10 {
		t.Errorf("expected last frame time to follow the sample, got %v", c.LastFrameTime())
	}
}

func TestFixedStepDrain(t *testing.T) {
	c := NewClock(0)
	step := c.FixedTimeStep()
	c.accumulator = 3 * step

	want := []bool{true, true, true, false}
	for i, w := range want {
		if got := c.FixedStepDue(); got != w {
			t.Fatalf("call %d: expected %v, got %v", i, w, got)
		}
	}
	if c.Accumulator() < 0 || c.Accumulator() >= step {
		t.Errorf("accumulator %v outside [0, step)", c.Accumulator())
	}
}

func TestFixedStepsTrackWallTime(t *testing.T) {
	c := NewClock(0)
	steps := 0
	now := 0.0
	// 120 frames at 120 Hz is one second of wall time.
	for range 120 {
		now += 1.0 / 120.0
		c.Advance(now)
		for c.FixedStepDue() {
			steps++
		}
	}
	if steps < 59 || steps > 60 {
		t.Errorf("expected about 60 fixed steps for one second, got %d", steps)
	}
}

func TestStallBoundsCatchUp(t *testing.T) {
	c := NewClock(0)
	c.Advance(30)

	steps := 0
	for c.FixedStepDue() {
		steps++
	}
	// 0.25 s of clamped delta at 60 Hz is at most 15 steps.
	if steps > 15 {
		t.Errorf("expected at most 15 catch-up steps after a stall, got %d", steps)
	}
}

func TestFrameRateStatistics(t *testing.T) {
	c := NewClock(0)
	now := 0.0
	for i := 0; i < 60; i++ {
		now += 1.0 / 60.0
		c.Advance(now)
		for c.FixedStepDue() {
		}
	}
	// The window has not closed yet if float rounding left now just under 1.0.
	if c.FPS() == 0 {
		c.Advance(now + 0.001)
	}

	if c.FPS() < 55 || c.FPS() > 62 {
		t.Errorf("expected fps near 60, got %v", c.FPS())
	}
	if c.FixedFPS() < 50 || c.FixedFPS() > 62 {
		t.Errorf("expected fixed fps near 60, got %v", c.FixedFPS())
	}
	if c.FrameCount() != 0 {
		t.Errorf("expected frame count reset after the window closed, got %d", c.FrameCount())
	}
}

func TestReset(t *testing.T) {
	c := NewClock(0, WithFixedRate(30))
	c.Advance(0.2)
	c.Reset(100)

	if c.LastFrameTime() != 100 || c.Accumulator() != 0 || c.DeltaTime() != 0 {
		t.Errorf("reset did not clear running state: last=%v acc=%v delta=%v", c.LastFrameTime(), c.Accumulator(), c.DeltaTime())
	}
	if !almostEqual(c.FixedTimeStep(), 1.0/30.0) {
		t.Errorf("reset must keep configured fixed step, got %v", c.FixedTimeStep())
	}
}

func TestOptions(t *testing.T) {
	c := NewClock(0,
		WithFixedTimeStep(0.01),
		WithMaxDeltaTime(0.1),
		WithStatsInterval(0.5),
	)
	if c.FixedTimeStep() != 0.01 {
		t.Errorf("expected fixed step 0.01, got %v", c.FixedTimeStep())
	}
	if c.MaxDeltaTime() != 0.1 {
		t.Errorf("expected max delta 0.1, got %v", c.MaxDeltaTime())
	}

	c.Advance(1)
	if c.DeltaTime() != 0.1 {
		t.Errorf("expected custom clamp 0.1, got %v", c.DeltaTime())
	}

	defaults := NewClock(0, WithFixedTimeStep(-1), WithFixedRate(0), WithMaxDeltaTime(0), WithStatsInterval(-2))
	if !almostEqual(defaults.FixedTimeStep(), DefaultFixedTimeStep) || defaults.MaxDeltaTime() != DefaultMaxDeltaTime {
		t.Error("non-positive option values must keep the defaults")
	}
}

func TestAlpha(t *testing.T) {
	c := NewClock(0)
	c.Advance(0.025)
	for c.FixedStepDue() {
	}
	alpha := c.Alpha()
	if alpha < 0 || alpha >= 1 {
		t.Fatalf("alpha %v outside [0, 1)", alpha)
	}
	want := (0.025 - c.FixedTimeStep()) / c.FixedTimeStep()
	if !almostEqual(alpha, want) {
		t.Errorf("expected alpha %v, got %v", want, alpha)
	}
}

func TestAccessorsAfterStall(t *testing.T) {
	c := NewClock(0, WithMaxDeltaTime(0.11))
	c.Advance(10)

	if c.LastFrameTime() != 10 {
		t.Errorf("expected last frame time 10, got %v", c.LastFrameTime())
	}
	if c.MaxDeltaTime() != 0.11 || c.DeltaTime() != 0.11 {
		t.Errorf("expected delta clamped to 0.11, got delta %v max %v", c.DeltaTime(), c.MaxDeltaTime())
	}
	if !almostEqual(c.Accumulator(), 0.11) {
		t.Errorf("expected accumulator 0.11, got %v", c.Accumulator())
	}

	steps := 0
	for c.FixedStepDue() {
		steps++
	}
	if steps != 6 || !almostEqual(c.Accumulator(), 0.11-6*c.FixedTimeStep()) {
		t.Errorf("expected 6 steps with remainder, got %d and %v", steps, c.Accumulator())
	}
}
