// Package config loads the engine's TOML configuration and watches it
// for live reload.
//
// A missing file is not an error: defaults apply and the watcher picks
// the file up once it appears. Values present in the file override the
// corresponding default; everything else keeps its default.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/vecstorm/internal/transform"
)

// GestureSection tunes the transform session.
type GestureSection struct {
	DragThresholdPx     float64 `toml:"drag_threshold_px"`
	AxisLockMinPx       float64 `toml:"axis_lock_min_px"`
	AxisLockEnterRatio  float64 `toml:"axis_lock_enter_ratio"`
	AxisLockSwitchRatio float64 `toml:"axis_lock_switch_ratio"`
	RotationSnapDeg     float64 `toml:"rotation_snap_deg"`
	VertexAngleSnapDeg  float64 `toml:"vertex_angle_snap_deg"`
	MinDimension        float64 `toml:"min_dimension"`
	MinScale            float64 `toml:"min_scale"`
	CircleUniformTol    float64 `toml:"circle_uniform_tol"`
}

// SnapSection tunes grid and object snapping.
type SnapSection struct {
	Enabled     bool    `toml:"enabled"`
	TolerancePx float64 `toml:"tolerance_px"`
	GridEnabled bool    `toml:"grid_enabled"`
	GridSize    float64 `toml:"grid_size"`
	Endpoint    bool    `toml:"endpoint"`
	Midpoint    bool    `toml:"midpoint"`
	Center      bool    `toml:"center"`
}

// OrthoSection tunes the persistent axis-lock toggle.
type OrthoSection struct {
	Persistent bool `toml:"persistent"`
}

// LogSection tunes gesture recording.
type LogSection struct {
	Enabled    bool `toml:"enabled"`
	MaxEntries int  `toml:"max_entries"`
}

// File is the full configuration document.
type File struct {
	Gesture GestureSection `toml:"gesture"`
	Snap    SnapSection    `toml:"snap"`
	Ortho   OrthoSection   `toml:"ortho"`
	Log     LogSection     `toml:"log"`
}

// Default returns a File mirroring the engine defaults.
func Default() File {
	cfg := transform.DefaultConfig()
	opts := transform.DefaultOptions()
	return File{
		Gesture: GestureSection{
			DragThresholdPx:     cfg.DragThresholdPx,
			AxisLockMinPx:       cfg.AxisLockMinPx,
			AxisLockEnterRatio:  cfg.AxisLockEnterRatio,
			AxisLockSwitchRatio: cfg.AxisLockSwitchRatio,
			RotationSnapDeg:     cfg.RotationSnapDeg,
			VertexAngleSnapDeg:  cfg.VertexAngleSnapDeg,
			MinDimension:        cfg.MinDimension,
			MinScale:            cfg.MinScale,
			CircleUniformTol:    cfg.CircleUniformTol,
		},
		Snap: SnapSection{
			Enabled:     opts.Snap.Enabled,
			TolerancePx: opts.Snap.TolerancePx,
			GridEnabled: opts.Snap.GridEnabled,
			GridSize:    opts.Snap.GridSize,
			Endpoint:    opts.Snap.Endpoint,
			Midpoint:    opts.Snap.Midpoint,
			Center:      opts.Snap.Center,
		},
		Ortho: OrthoSection{Persistent: opts.Ortho.Persistent},
		Log: LogSection{
			Enabled:    false,
			MaxEntries: cfg.MaxLogEntries,
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file
// yields the defaults with no error.
func Load(path string) (File, error) {
	file := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return file, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return Default(), &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return file, nil
}

// Config converts the gesture section to engine tuning constants,
// clamping non-positive values back to their defaults.
func (f File) Config() transform.Config {
	def := transform.DefaultConfig()
	cfg := transform.Config{
		DragThresholdPx:     positiveOr(f.Gesture.DragThresholdPx, def.DragThresholdPx),
		AxisLockMinPx:       positiveOr(f.Gesture.AxisLockMinPx, def.AxisLockMinPx),
		AxisLockEnterRatio:  positiveOr(f.Gesture.AxisLockEnterRatio, def.AxisLockEnterRatio),
		AxisLockSwitchRatio: positiveOr(f.Gesture.AxisLockSwitchRatio, def.AxisLockSwitchRatio),
		RotationSnapDeg:     positiveOr(f.Gesture.RotationSnapDeg, def.RotationSnapDeg),
		VertexAngleSnapDeg:  positiveOr(f.Gesture.VertexAngleSnapDeg, def.VertexAngleSnapDeg),
		MinDimension:        positiveOr(f.Gesture.MinDimension, def.MinDimension),
		MinScale:            positiveOr(f.Gesture.MinScale, def.MinScale),
		CircleUniformTol:    positiveOr(f.Gesture.CircleUniformTol, def.CircleUniformTol),
		MaxLogEntries:       def.MaxLogEntries,
	}
	if f.Log.MaxEntries > 0 {
		cfg.MaxLogEntries = f.Log.MaxEntries
	}
	return cfg
}

// Options converts the snap and ortho sections to live engine options.
func (f File) Options() transform.Options {
	return transform.Options{
		Snap: transform.SnapOptions{
			Enabled:     f.Snap.Enabled,
			TolerancePx: f.Snap.TolerancePx,
			GridEnabled: f.Snap.GridEnabled,
			GridSize:    f.Snap.GridSize,
			Endpoint:    f.Snap.Endpoint,
			Midpoint:    f.Snap.Midpoint,
			Center:      f.Snap.Center,
		},
		Ortho: transform.OrthoOptions{Persistent: f.Ortho.Persistent},
	}
}

func positiveOr(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

// ParseError describes a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
