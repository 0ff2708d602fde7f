package transform

import "math"

// AxisLock constrains Move and EdgeDrag to one world axis.
type AxisLock uint8

const (
	// AxisNone applies no constraint.
	AxisNone AxisLock = iota
	// AxisX zeroes the Y component of the drag.
	AxisX
	// AxisY zeroes the X component of the drag.
	AxisY
)

// String returns the lock name.
func (a AxisLock) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return "none"
	}
}

// AxisLockState holds the sticky lock decision for one gesture.
// Hysteresis keeps diagonal jitter from flipping the lock: entering a
// lock needs the enter ratio, while switching a held lock needs the
// opposite axis to dominate by the enter and switch ratios combined.
type AxisLockState struct {
	lock AxisLock
}

// Lock returns the current decision.
func (s *AxisLockState) Lock() AxisLock { return s.lock }

// Reset clears the lock.
func (s *AxisLockState) Reset() { s.lock = AxisNone }

// Update re-evaluates the lock from the screen-space displacement
// since gesture start. While the constraining condition is off, the
// lock resets every frame. Displacements under cfg.AxisLockMinPx
// leave the current decision untouched.
func (s *AxisLockState) Update(dxPx, dyPx float64, active bool, cfg Config) AxisLock {
	if !active {
		s.lock = AxisNone
		return s.lock
	}
	absDx := math.Abs(dxPx)
	absDy := math.Abs(dyPx)
	if math.Max(absDx, absDy) < cfg.AxisLockMinPx {
		return s.lock
	}
	switchRatio := cfg.AxisLockEnterRatio * cfg.AxisLockSwitchRatio
	switch s.lock {
	case AxisNone:
		if absDx >= absDy*cfg.AxisLockEnterRatio {
			s.lock = AxisX
		} else if absDy >= absDx*cfg.AxisLockEnterRatio {
			s.lock = AxisY
		}
	case AxisX:
		if absDy >= absDx*switchRatio {
			s.lock = AxisY
		}
	case AxisY:
		if absDx >= absDy*switchRatio {
			s.lock = AxisX
		}
	}
	return s.lock
}

// Apply zeroes the constrained component of a world-space delta.
func (s *AxisLockState) Apply(dx, dy float64) (float64, float64) {
	switch s.lock {
	case AxisX:
		return dx, 0
	case AxisY:
		return 0, dy
	default:
		return dx, dy
	}
}
