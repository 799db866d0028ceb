package input

import (
	"sync"

	"github.com/Carmen-Shannon/loki-go/common"
)

// Snapshot is the per-frame input state consumed by the camera.
// Keys report whether they are held, the cursor is the cumulative pointer position in
// screen units, and scroll is the delta received since the previous snapshot.
type Snapshot struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool

	// Jump is true for the first snapshot after the jump key went down.
	Jump bool

	CursorX float64
	CursorY float64

	ScrollX float64
	ScrollY float64

	// Zoom is raised when any scroll arrived since the previous snapshot.
	Zoom bool

	// Recapture marks a cursor discontinuity (capture toggled, cursor re-centered).
	// The next cursor sample must be treated as the first one.
	Recapture bool
}

// Bindings maps movement actions to key codes.
type Bindings struct {
	Forward  uint32
	Backward uint32
	Left     uint32
	Right    uint32
	Jump     uint32
}

// DefaultBindings returns the WASD + Space layout.
//
// Returns:
//   - Bindings: the default key bindings
func DefaultBindings() Bindings {
	return Bindings{
		Forward:  common.KeyW,
		Backward: common.KeyS,
		Left:     common.KeyA,
		Right:    common.KeyD,
		Jump:     common.KeySpace,
	}
}

// Accumulator collects raw input events from window callbacks and hands them to the
// frame loop as a Snapshot. Callbacks and Snapshot may run on different goroutines;
// the accumulator is the single hand-off point between them.
type Accumulator struct {
	mu *sync.Mutex

	bindings Bindings
	held     map[uint32]bool

	cursorX float64
	cursorY float64

	scrollX   float64
	scrollY   float64
	zoom      bool
	jump      bool
	recapture bool

	// awaitingCursor holds recapture until a cursor position arrives after it. The window
	// reports the restored cursor on a later poll than the capture change.
	awaitingCursor bool
}

// NewAccumulator creates an Accumulator using the given key bindings.
//
// Parameters:
//   - bindings: the key codes mapped to movement actions
//
// Returns:
//   - *Accumulator: the new accumulator
func NewAccumulator(bindings Bindings) *Accumulator {
	return &Accumulator{
		mu:       &sync.Mutex{},
		bindings: bindings,
		held:     make(map[uint32]bool),
	}
}

// KeyDown records a key press. Key repeats are accepted and do not re-trigger a jump.
//
// Parameters:
//   - keyCode: the virtual key code
func (a *Accumulator) KeyDown(keyCode uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if keyCode == a.bindings.Jump && !a.held[keyCode] {
		a.jump = true
	}
	a.held[keyCode] = true
}

// KeyUp records a key release.
//
// Parameters:
//   - keyCode: the virtual key code
func (a *Accumulator) KeyUp(keyCode uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.held[keyCode] = false
}

// CursorMoved records the latest absolute cursor position.
//
// Parameters:
//   - x, y: cursor position in screen units
func (a *Accumulator) CursorMoved(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cursorX = x
	a.cursorY = y
	a.awaitingCursor = false
}

// Scrolled adds a scroll delta and raises the zoom flag.
//
// Parameters:
//   - dx, dy: scroll offsets reported by the window
func (a *Accumulator) Scrolled(dx, dy float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scrollX += dx
	a.scrollY += dy
	a.zoom = true
}

// Recaptured marks a cursor discontinuity. Snapshots keep reporting Recapture until one
// has carried a cursor position received after this call.
func (a *Accumulator) Recaptured() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recapture = true
	a.awaitingCursor = true
}

// Snapshot returns the current input state and clears the per-frame deltas
// (scroll, zoom, jump edge and recapture). Held keys and the cursor position persist.
// A pending recapture is only cleared once a fresh cursor position has been reported.
//
// Returns:
//   - Snapshot: the input state for this frame
func (a *Accumulator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Snapshot{
		Forward:   a.held[a.bindings.Forward],
		Backward:  a.held[a.bindings.Backward],
		Left:      a.held[a.bindings.Left],
		Right:     a.held[a.bindings.Right],
		Jump:      a.jump,
		CursorX:   a.cursorX,
		CursorY:   a.cursorY,
		ScrollX:   a.scrollX,
		ScrollY:   a.scrollY,
		Zoom:      a.zoom,
		Recapture: a.recapture,
	}

	a.scrollX = 0
	a.scrollY = 0
	a.zoom = false
	a.jump = false
	if !a.awaitingCursor {
		a.recapture = false
	}

	return s
}

// Release clears every held key. Used when the window loses focus so keys released
// elsewhere do not stay stuck.
func (a *Accumulator) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.held)
}
