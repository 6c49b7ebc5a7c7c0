package globe

import "sync"

// DefaultRotationStep is the angle in radians the globe turns per frame.
const DefaultRotationStep = 0.002

// Rotation is the globe's spin angle about its vertical axis. It only ever
// grows by a fixed step; consumers rely on sin/cos periodicity, so the angle
// is never wrapped or reset.
type Rotation struct {
	mu     sync.RWMutex
	angle  float64
	step   float64
	frames uint64
}

func NewRotation(step float64) *Rotation {
	return &Rotation{step: step}
}

// Advance moves the rotation forward by one frame and returns the new angle.
func (r *Rotation) Advance() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames++
	r.angle += r.step
	return r.angle
}

// Angle returns the current angle in radians.
func (r *Rotation) Angle() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.angle
}

// Frames returns how many frames have been rendered.
func (r *Rotation) Frames() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frames
}

// Step returns the per-frame increment.
func (r *Rotation) Step() float64 {
	return r.step
}
