package clock

const (
	// DefaultFixedTimeStep is the simulation step in seconds (60 updates per second).
	DefaultFixedTimeStep = 1.0 / 60.0

	// DefaultMaxDeltaTime caps a single frame's delta so a stall cannot queue unbounded catch-up steps.
	DefaultMaxDeltaTime = 0.25

	// DefaultStatsInterval is the minimum window in seconds over which frame rates are measured.
	DefaultStatsInterval = 1.0
)

// Clock maps wall-clock samples onto a fixed-rate simulation cadence.
//
// The host feeds one time sample per rendered frame through Advance, then drains
// FixedStepDue until it returns false, running one fixed update per true result.
// A Clock has a single owner and is not safe for concurrent use.
type Clock struct {
	lastFrameTime float64
	deltaTime     float64
	accumulator   float64

	fixedTimeStep float64
	maxDeltaTime  float64
	statsInterval float64

	// rolling statistics window
	fpsUpdateTime  float64
	frameCount     int
	fixedStepCount int
	fps            float64
	fixedFPS       float64
}

// NewClock creates a Clock whose first frame starts at now.
//
// Parameters:
//   - now: the current monotonic wall-clock reading in seconds
//   - options: functional options to configure the clock
//
// Returns:
//   - *Clock: the initialized clock
func NewClock(now float64, options ...ClockOption) *Clock {
	c := &Clock{
		fixedTimeStep: DefaultFixedTimeStep,
		maxDeltaTime:  DefaultMaxDeltaTime,
		statsInterval: DefaultStatsInterval,
	}
	for _, option := range options {
		option(c)
	}
	c.Reset(now)
	return c
}

// Reset restarts the clock at now, discarding any accumulated time and statistics.
// Configuration set through options is kept.
//
// Parameters:
//   - now: the current monotonic wall-clock reading in seconds
func (c *Clock) Reset(now float64) {
	c.lastFrameTime = now
	c.deltaTime = 0
	c.accumulator = 0

	c.fpsUpdateTime = now
	c.frameCount = 0
	c.fixedStepCount = 0
	c.fps = 0
	c.fixedFPS = 0
}

// Advance consumes one wall-clock sample. It must be called exactly once per rendered
// frame with a non-decreasing now; going backwards in time is not defended against.
//
// Parameters:
//   - now: the current monotonic wall-clock reading in seconds
func (c *Clock) Advance(now float64) {
	c.deltaTime = min(now-c.lastFrameTime, c.maxDeltaTime)
	c.lastFrameTime = now
	c.accumulator += c.deltaTime

	c.frameCount++
	if elapsed := now - c.fpsUpdateTime; elapsed >= c.statsInterval {
		c.fps = float64(c.frameCount) / elapsed
		c.fixedFPS = float64(c.fixedStepCount) / elapsed
		c.fpsUpdateTime = now
		c.frameCount = 0
		c.fixedStepCount = 0
	}
}

// FixedStepDue consumes one fixed step from the accumulator if enough time has built up.
// Callers loop on it until it returns false, running one fixed update per true result.
//
// Returns:
//   - bool: true if a fixed step was consumed, false if the accumulator holds less than one step
func (c *Clock) FixedStepDue() bool {
	if c.accumulator < c.fixedTimeStep {
		return false
	}
	c.accumulator -= c.fixedTimeStep
	c.fixedStepCount++
	return true
}

// Alpha returns how far the accumulator has progressed toward the next fixed step,
// in [0, 1) once FixedStepDue has been drained. Renderers may use it to interpolate
// between the last two simulated states.
//
// Returns:
//   - float64: accumulator / fixed time step
func (c *Clock) Alpha() float64 {
	return c.accumulator / c.fixedTimeStep
}

// DeltaTime returns the clamped duration of the last frame in seconds.
func (c *Clock) DeltaTime() float64 {
	return c.deltaTime
}

// Accumulator returns the simulated time still owed to fixed steps, in seconds.
func (c *Clock) Accumulator() float64 {
	return c.accumulator
}

// FixedTimeStep returns the duration of one fixed step in seconds.
func (c *Clock) FixedTimeStep() float64 {
	return c.fixedTimeStep
}

// MaxDeltaTime returns the upper bound applied to a frame's delta time, in seconds.
func (c *Clock) MaxDeltaTime() float64 {
	return c.maxDeltaTime
}

// LastFrameTime returns the wall-clock reading passed to the latest Advance or Reset.
func (c *Clock) LastFrameTime() float64 {
	return c.lastFrameTime
}

// FrameCount returns the number of frames advanced in the current statistics window.
func (c *Clock) FrameCount() int {
	return c.frameCount
}

// FPS returns the render frame rate measured over the last completed statistics window.
func (c *Clock) FPS() float64 {
	return c.fps
}

// FixedFPS returns the fixed-step throughput (steps per second) measured over the last
// completed statistics window.
func (c *Clock) FixedFPS() float64 {
	return c.fixedFPS
}
