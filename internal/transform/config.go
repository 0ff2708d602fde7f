package transform

// Config holds the tuning constants of the interactive transform
// pipeline. Values are screen pixels unless noted.
type Config struct {
	// DragThresholdPx is the pointer travel required before a gesture
	// counts as a drag. Below it, updates record telemetry only.
	DragThresholdPx float64

	// AxisLockMinPx is the minimum displacement before the axis lock
	// evaluates at all.
	AxisLockMinPx float64

	// AxisLockEnterRatio is the dominance ratio required to enter a
	// lock from the unlocked state.
	AxisLockEnterRatio float64

	// AxisLockSwitchRatio multiplies the enter ratio to form the
	// stronger dominance requirement for switching a held lock to the
	// other axis.
	AxisLockSwitchRatio float64

	// RotationSnapDeg is the angle step applied to the accumulated
	// rotation while shift is held.
	RotationSnapDeg float64

	// VertexAngleSnapDeg is the angle step for shift-constrained
	// vertex drags, measured from the opposite endpoint.
	VertexAngleSnapDeg float64

	// MinDimension is the smallest width, height or radius a resize
	// may produce, in world units.
	MinDimension float64

	// MinScale is the smallest magnitude a group scale factor may
	// take before being clamped, preserving sign.
	MinScale float64

	// CircleUniformTol is the relative radius difference under which
	// an ellipse counts as a circle and resizes uniformly.
	CircleUniformTol float64

	// MaxLogEntries caps the transform log; past it the log marks
	// itself overflowed and refuses replay.
	MaxLogEntries int
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		DragThresholdPx:     3,
		AxisLockMinPx:       4,
		AxisLockEnterRatio:  1.1,
		AxisLockSwitchRatio: 1.2,
		RotationSnapDeg:     15,
		VertexAngleSnapDeg:  45,
		MinDimension:        1e-3,
		MinScale:            1e-4,
		CircleUniformTol:    1e-3,
		MaxLogEntries:       4096,
	}
}

// SnapOptions control both snap layers.
type SnapOptions struct {
	// Enabled gates object snapping as a whole.
	Enabled bool `json:"enabled"`
	// TolerancePx is the screen-space alignment tolerance, converted
	// to world units by the current view scale.
	TolerancePx float64 `json:"tolerancePx"`
	// GridEnabled rounds the cursor to grid multiples before mode math.
	GridEnabled bool `json:"gridEnabled"`
	// GridSize is the grid cell size in world units.
	GridSize float64 `json:"gridSize"`
	// Endpoint enables endpoint and vertex candidates.
	Endpoint bool `json:"endpoint"`
	// Midpoint enables segment midpoint candidates.
	Midpoint bool `json:"midpoint"`
	// Center enables bounding-box center candidates and targets.
	Center bool `json:"center"`
	// Nearest reserves nearest-point candidates.
	Nearest bool `json:"nearest"`
}

// ObjectSnapActive reports whether any object-snap source is on.
func (o SnapOptions) ObjectSnapActive() bool {
	return o.Enabled && (o.Endpoint || o.Midpoint || o.Center || o.Nearest)
}

// OrthoOptions control the persistent axis-lock toggle.
type OrthoOptions struct {
	// Persistent constrains Move and EdgeDrag to one axis even
	// without shift held.
	Persistent bool `json:"persistent"`
}

// Options bundles the live engine options a session consults on every
// update.
type Options struct {
	Snap  SnapOptions  `json:"snap"`
	Ortho OrthoOptions `json:"ortho"`
}

// DefaultOptions returns snapping on with standard tolerances and the
// grid and ortho toggles off.
func DefaultOptions() Options {
	return Options{
		Snap: SnapOptions{
			Enabled:     true,
			TolerancePx: 10,
			GridEnabled: false,
			GridSize:    10,
			Endpoint:    true,
			Midpoint:    true,
			Center:      true,
		},
	}
}
