package clock

// ClockOption is a functional option for configuring a Clock.
type ClockOption func(*Clock)

// WithFixedTimeStep sets the fixed simulation step in seconds.
// Values <= 0 keep the default (1/60 s).
//
// Parameters:
//   - seconds: duration of one fixed step
//
// Returns:
//   - ClockOption: option function to apply
func WithFixedTimeStep(seconds float64) ClockOption {
	return func(c *Clock) {
		if seconds > 0 {
			c.fixedTimeStep = seconds
		}
	}
}

// WithFixedRate sets the fixed simulation rate in updates per second.
// Values <= 0 keep the default (60 Hz).
//
// Parameters:
//   - hz: fixed updates per second
//
// Returns:
//   - ClockOption: option function to apply
func WithFixedRate(hz float64) ClockOption {
	return func(c *Clock) {
		if hz > 0 {
			c.fixedTimeStep = 1.0 / hz
		}
	}
}

// WithMaxDeltaTime sets the per-frame delta clamp in seconds.
// Values <= 0 keep the default (0.25 s).
//
// Parameters:
//   - seconds: the largest delta a single Advance may produce
//
// Returns:
//   - ClockOption: option function to apply
func WithMaxDeltaTime(seconds float64) ClockOption {
	return func(c *Clock) {
		if seconds > 0 {
			c.maxDeltaTime = seconds
		}
	}
}

// WithStatsInterval sets the window over which FPS and fixed FPS are measured.
// Values <= 0 keep the default (1 s).
//
// Parameters:
//   - seconds: minimum statistics window length
//
// Returns:
//   - ClockOption: option function to apply
func WithStatsInterval(seconds float64) ClockOption {
	return func(c *Clock) {
		if seconds > 0 {
			c.statsInterval = seconds
		}
	}
}
