package camera

import (
	"github.com/Carmen-Shannon/loki-go/common"
	"github.com/Carmen-Shannon/loki-go/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

func (c *cameraImpl) Update(in input.Snapshot, deltaTime float32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.translate(in, deltaTime)
	c.orient(in)
	changed := c.zoom(in)
	c.updateView()
	return changed
}

func (c *cameraImpl) FixedUpdate(step float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeFPS || !c.jumping {
		return
	}

	c.position[1] += c.verticalVelocity * step
	c.verticalVelocity -= c.gravity * step

	if c.position[1] <= c.eyeHeight {
		c.position[1] = c.eyeHeight
		c.verticalVelocity = 0
		c.jumping = false
	}
}

// translate moves the camera along the current front and right vectors for every held key.
// Opposing keys cancel out. Caller must hold the mutex.
func (c *cameraImpl) translate(in input.Snapshot, deltaTime float32) {
	step := c.speed
	if !c.frameCoupled {
		step *= deltaTime
	}

	forward := c.front
	if c.mode == ModeFPS {
		forward = horizontal(c.front)
	}
	right := c.front.Cross(c.up).Normalize()

	if in.Forward {
		c.position = c.position.Add(forward.Mul(step))
	}
	if in.Backward {
		c.position = c.position.Sub(forward.Mul(step))
	}
	if in.Left {
		c.position = c.position.Sub(right.Mul(step))
	}
	if in.Right {
		c.position = c.position.Add(right.Mul(step))
	}

	if c.mode != ModeFPS {
		return
	}
	if in.Jump && !c.jumping {
		c.jumping = true
		c.verticalVelocity = c.jumpSpeed
	}
	if !c.jumping {
		c.position[1] = c.eyeHeight
	}
}

// orient applies the cursor delta to yaw and pitch and rebuilds the basis vectors.
// The first sample after creation or Recapture only primes the tracking.
// Caller must hold the mutex.
func (c *cameraImpl) orient(in input.Snapshot) {
	if c.firstSample || in.Recapture {
		c.lastCursorX = in.CursorX
		c.lastCursorY = in.CursorY
		c.firstSample = false
		c.updateVectors()
		return
	}

	// screen y grows downward
	offsetX := float32(in.CursorX-c.lastCursorX) * c.sensitivity
	offsetY := float32(c.lastCursorY-in.CursorY) * c.sensitivity
	c.lastCursorX = in.CursorX
	c.lastCursorY = in.CursorY

	c.yaw += offsetX
	c.pitch = common.Clamp(c.pitch+offsetY, -MaxPitch, MaxPitch)
	c.updateVectors()
}

// zoom narrows or widens the field of view by the scroll delta.
// Below MinFov it saturates; above MaxFov it snaps back to the reset fov.
// Caller must hold the mutex.
func (c *cameraImpl) zoom(in input.Snapshot) bool {
	if !in.Zoom {
		return false
	}

	c.fov -= float32(in.ScrollY)
	if c.fov < MinFov {
		c.fov = MinFov
	}
	if c.fov > MaxFov {
		c.fov = c.zoomResetFov
	}
	c.updateProjection()
	return true
}

// horizontal projects v onto the XZ plane and renormalizes it.
func horizontal(v mgl32.Vec3) mgl32.Vec3 {
	flat := mgl32.Vec3{v[0], 0, v[2]}
	if flat.Len() < 1e-6 {
		return mgl32.Vec3{}
	}
	return flat.Normalize()
}
