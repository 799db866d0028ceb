package camera

import (
	"github.com/Carmen-Shannon/loki-go/common"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithYaw sets the initial yaw in degrees.
//
// Parameters:
//   - yaw: horizontal look angle in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's yaw
func WithYaw(yaw float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
	}
}

// WithPitch sets the initial pitch in degrees, clamped to [-MaxPitch, MaxPitch].
//
// Parameters:
//   - pitch: vertical look angle in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's pitch
func WithPitch(pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pitch = common.Clamp(pitch, -MaxPitch, MaxPitch)
	}
}

// WithSpeed sets the movement speed in world units per second.
//
// Parameters:
//   - speed: movement speed
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's speed
func WithSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.speed = speed
	}
}

// WithSensitivity sets the mouse sensitivity in degrees per cursor unit.
//
// Parameters:
//   - sensitivity: mouse sensitivity
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's sensitivity
func WithSensitivity(sensitivity float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.sensitivity = sensitivity
	}
}

// WithFov sets the camera's vertical field of view in degrees, clamped to [MinFov, MaxFov].
// The zoom reset value follows unless WithZoomResetFov is applied afterwards.
//
// Parameters:
//   - fov: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = common.Clamp(fov, MinFov, MaxFov)
		c.zoomResetFov = c.fov
	}
}

// WithZoomResetFov sets the field of view restored when zooming out past MaxFov.
//
// Parameters:
//   - fov: reset field of view in degrees, clamped to [MinFov, MaxFov]
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom reset value
func WithZoomResetFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoomResetFov = common.Clamp(fov, MinFov, MaxFov)
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithMode sets the initial movement mode.
//
// Parameters:
//   - mode: ModeSpectator or ModeFPS
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's mode
func WithMode(mode Mode) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.mode = mode
	}
}

// WithEyeHeight sets the ground-level eye height used in FPS mode.
//
// Parameters:
//   - height: eye height in world units
//
// Returns:
//   - CameraBuilderOption: a function that sets the eye height
func WithEyeHeight(height float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.eyeHeight = height
	}
}

// WithJumpSpeed sets the initial upward velocity of an FPS jump.
//
// Parameters:
//   - speed: world units per second
//
// Returns:
//   - CameraBuilderOption: a function that sets the jump speed
func WithJumpSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.jumpSpeed = speed
	}
}

// WithGravity sets the downward acceleration applied during an FPS jump.
//
// Parameters:
//   - gravity: world units per second squared
//
// Returns:
//   - CameraBuilderOption: a function that sets gravity
func WithGravity(gravity float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.gravity = gravity
	}
}

// WithFrameCoupledMovement makes movement advance by speed per rendered frame
// instead of speed per second.
//
// Parameters:
//   - coupled: true to ignore delta time when moving
//
// Returns:
//   - CameraBuilderOption: a function that sets frame-coupled movement
func WithFrameCoupledMovement(coupled bool) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.frameCoupled = coupled
	}
}
