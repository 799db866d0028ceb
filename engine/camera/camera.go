package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/loki-go/common"
	"github.com/Carmen-Shannon/loki-go/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects the movement constraints applied by Update.
type Mode int

const (
	// ModeSpectator moves freely along the look direction, including vertically.
	ModeSpectator Mode = iota
	// ModeFPS keeps movement on the horizontal plane at eye height and allows jumping.
	ModeFPS
)

func (m Mode) String() string {
	switch m {
	case ModeSpectator:
		return "spectator"
	case ModeFPS:
		return "fps"
	default:
		return "unknown"
	}
}

// Default initial setup.
var (
	DefaultPosition = mgl32.Vec3{0, 0, 3}
	DefaultFront    = mgl32.Vec3{0, 0, -1}
	DefaultUp       = mgl32.Vec3{0, 1, 0}
	DefaultRight    = mgl32.Vec3{1, 0, 0}
)

const (
	DefaultYaw         float32 = -90 // looking down -Z
	DefaultPitch       float32 = 0
	DefaultSpeed       float32 = 5
	DefaultSensitivity float32 = 0.1
	DefaultFov         float32 = 45
	DefaultAspect      float32 = 800.0 / 600.0
	DefaultNear        float32 = 0.1
	DefaultFar         float32 = 100

	DefaultEyeHeight float32 = 1.7 // typical FPS eye height
	DefaultJumpSpeed float32 = 5
	DefaultGravity   float32 = 9.81

	MaxPitch float32 = 89
	MinFov   float32 = 1
	MaxFov   float32 = 45
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3

	// degrees
	yaw   float32
	pitch float32

	speed        float32
	sensitivity  float32
	fov          float32 // degrees
	zoomResetFov float32 // degrees; fov snaps here when zoom overflows MaxFov
	aspect       float32
	near         float32
	far          float32

	mode             Mode
	eyeHeight        float32
	jumpSpeed        float32
	gravity          float32
	jumping          bool
	verticalVelocity float32

	// frameCoupled disables delta-time scaling of movement so speed is per frame.
	frameCoupled bool

	// Capture state: the next cursor sample only primes lastCursor.
	firstSample bool
	lastCursorX float64
	lastCursorY float64

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
}

// Camera is a first-person/spectator camera driven by per-frame input snapshots.
// It owns position and orientation and derives render-ready view and projection
// matrices (column-major, WebGPU depth range) from them.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space position
	Position() mgl32.Vec3

	// Front returns the unit look direction.
	//
	// Returns:
	//   - mgl32.Vec3: the front vector
	Front() mgl32.Vec3

	// Up returns the camera's up reference (world up).
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Right returns the unit strafe direction, normalize(cross(front, up)).
	//
	// Returns:
	//   - mgl32.Vec3: the right vector
	Right() mgl32.Vec3

	// Yaw returns the horizontal look angle in degrees.
	//
	// Returns:
	//   - float32: yaw in degrees
	Yaw() float32

	// Pitch returns the vertical look angle in degrees, always within [-89, 89].
	//
	// Returns:
	//   - float32: pitch in degrees
	Pitch() float32

	// Speed returns the movement speed in world units per second.
	//
	// Returns:
	//   - float32: movement speed
	Speed() float32

	// Sensitivity returns the degrees of rotation per cursor unit.
	//
	// Returns:
	//   - float32: mouse sensitivity
	Sensitivity() float32

	// Fov returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	Fov() float32

	// Aspect returns the projection aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Mode returns the active movement mode.
	//
	// Returns:
	//   - Mode: ModeSpectator or ModeFPS
	Mode() Mode

	// Jumping reports whether an FPS-mode jump is in progress.
	//
	// Returns:
	//   - bool: true while airborne
	Jumping() bool

	// ViewMatrix returns the current world-to-camera matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current camera-to-clip matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Uniform returns the camera matrices packed for GPU upload.
	//
	// Returns:
	//   - GPUCameraUniform: view and projection matrices
	Uniform() GPUCameraUniform

	// Update advances the camera by one rendered frame: movement from held keys, look
	// direction from the cursor delta, zoom from scroll, then a fresh view matrix.
	//
	// Parameters:
	//   - in: the input snapshot for this frame
	//   - deltaTime: frame duration in seconds
	//
	// Returns:
	//   - bool: true if the projection matrix changed and must be re-uploaded
	Update(in input.Snapshot, deltaTime float32) bool

	// FixedUpdate advances fixed-rate state (FPS-mode jump and gravity) by one step.
	// It is a no-op in spectator mode.
	//
	// Parameters:
	//   - step: fixed step duration in seconds
	FixedUpdate(step float32)

	// SetPosition teleports the camera and points the view matrix along the default
	// front and up vectors. Yaw, pitch and front are left untouched, so the next Update
	// reorients the view from them.
	//
	// Parameters:
	//   - position: the new world-space position
	SetPosition(position mgl32.Vec3)

	// SetAspect sets the aspect ratio and recomputes the projection matrix.
	// Non-positive or non-finite values are ignored (minimized window).
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)

	// SetSpeed sets the movement speed.
	//
	// Parameters:
	//   - speed: world units per second
	SetSpeed(speed float32)

	// SetSensitivity sets the mouse sensitivity.
	//
	// Parameters:
	//   - sensitivity: degrees per cursor unit
	SetSensitivity(sensitivity float32)

	// SetMode switches the movement mode. Leaving FPS mode cancels any jump.
	//
	// Parameters:
	//   - mode: the new mode
	SetMode(mode Mode)

	// Recapture makes the next cursor sample prime the cursor tracking instead of
	// rotating the camera.
	Recapture()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera at DefaultPosition looking down -Z unless options say otherwise.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:           &sync.Mutex{},
		position:     DefaultPosition,
		front:        DefaultFront,
		up:           DefaultUp,
		right:        DefaultRight,
		yaw:          DefaultYaw,
		pitch:        DefaultPitch,
		speed:        DefaultSpeed,
		sensitivity:  DefaultSensitivity,
		fov:          DefaultFov,
		zoomResetFov: DefaultFov,
		aspect:       DefaultAspect,
		near:         DefaultNear,
		far:          DefaultFar,
		mode:         ModeSpectator,
		eyeHeight:    DefaultEyeHeight,
		jumpSpeed:    DefaultJumpSpeed,
		gravity:      DefaultGravity,
		firstSample:  true,
	}
	for _, option := range options {
		option(c)
	}

	if c.yaw != DefaultYaw || c.pitch != DefaultPitch {
		c.updateVectors()
	}
	c.updateView()
	c.updateProjection()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Front() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.right
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) Speed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *cameraImpl) Sensitivity() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sensitivity
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *cameraImpl) Jumping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.jumping
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix.Mul4(c.viewMatrix)
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		View:       c.viewMatrix,
		Projection: c.projectionMatrix,
	}
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.viewMatrix = mgl32.LookAtV(position, position.Add(DefaultFront), DefaultUp)
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect <= 0 || math.IsInf(float64(aspect), 0) || math.IsNaN(float64(aspect)) {
		return
	}
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) SetSpeed(speed float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = speed
}

func (c *cameraImpl) SetSensitivity(sensitivity float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sensitivity = sensitivity
}

func (c *cameraImpl) SetMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = mode
	if mode != ModeFPS {
		c.jumping = false
		c.verticalVelocity = 0
	}
}

func (c *cameraImpl) Recapture() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.firstSample = true
}

// updateVectors recomputes front and right from yaw and pitch.
// Caller must hold the mutex.
func (c *cameraImpl) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))

	c.front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(c.up).Normalize()
}

// updateView recomputes the view matrix from position, front and up.
// Caller must hold the mutex.
func (c *cameraImpl) updateView() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// updateProjection recomputes the projection matrix from fov, aspect and clip planes.
// Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	c.projectionMatrix = common.PerspectiveMat4(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}
