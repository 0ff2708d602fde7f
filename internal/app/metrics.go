package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks engine gesture activity.
type Metrics struct {
	// Gesture lifecycle
	gesturesBegun     atomic.Uint64
	gesturesCommitted atomic.Uint64
	gesturesCancelled atomic.Uint64

	// Update timing
	updateCount   atomic.Uint64
	updateTotalNs atomic.Int64
	updateMinNs   atomic.Int64
	updateMaxNs   atomic.Int64
	lastUpdateNs  atomic.Int64

	// Snapping
	snapHits atomic.Uint64

	// Committed operations
	opsCommitted atomic.Uint64

	// Start time for uptime calculation
	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so the first update will be smaller
	m.updateMinNs.Store(1<<63 - 1)
	return m
}

// RecordBegin records a started gesture.
func (m *Metrics) RecordBegin() {
	m.gesturesBegun.Add(1)
}

// RecordCommit records a committed gesture and the operations it
// produced.
func (m *Metrics) RecordCommit(ops int) {
	m.gesturesCommitted.Add(1)
	if ops > 0 {
		m.opsCommitted.Add(uint64(ops))
	}
}

// RecordCancel records a cancelled gesture.
func (m *Metrics) RecordCancel() {
	m.gesturesCancelled.Add(1)
}

// RecordUpdate records update timing and snap hits.
func (m *Metrics) RecordUpdate(duration time.Duration, snapHits int) {
	ns := duration.Nanoseconds()

	m.updateCount.Add(1)
	m.updateTotalNs.Add(ns)
	m.lastUpdateNs.Store(ns)
	if snapHits > 0 {
		m.snapHits.Add(uint64(snapHits))
	}

	for {
		old := m.updateMinNs.Load()
		if ns >= old {
			break
		}
		if m.updateMinNs.CompareAndSwap(old, ns) {
			break
		}
	}

	for {
		old := m.updateMaxNs.Load()
		if ns <= old {
			break
		}
		if m.updateMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	updateCount := m.updateCount.Load()

	var avgUpdateNs int64
	if updateCount > 0 {
		avgUpdateNs = m.updateTotalNs.Load() / int64(updateCount)
	}

	minUpdateNs := m.updateMinNs.Load()
	if minUpdateNs == 1<<63-1 {
		minUpdateNs = 0
	}

	return MetricsSnapshot{
		Uptime:            time.Since(m.startTime),
		GesturesBegun:     m.gesturesBegun.Load(),
		GesturesCommitted: m.gesturesCommitted.Load(),
		GesturesCancelled: m.gesturesCancelled.Load(),
		UpdateCount:       updateCount,
		AvgUpdateNs:       avgUpdateNs,
		MinUpdateNs:       minUpdateNs,
		MaxUpdateNs:       m.updateMaxNs.Load(),
		LastUpdateNs:      m.lastUpdateNs.Load(),
		SnapHits:          m.snapHits.Load(),
		OpsCommitted:      m.opsCommitted.Load(),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.gesturesBegun.Store(0)
	m.gesturesCommitted.Store(0)
	m.gesturesCancelled.Store(0)
	m.updateCount.Store(0)
	m.updateTotalNs.Store(0)
	m.updateMinNs.Store(1<<63 - 1)
	m.updateMaxNs.Store(0)
	m.lastUpdateNs.Store(0)
	m.snapHits.Store(0)
	m.opsCommitted.Store(0)
	m.startTime = time.Now()
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime            time.Duration
	GesturesBegun     uint64
	GesturesCommitted uint64
	GesturesCancelled uint64
	UpdateCount       uint64
	AvgUpdateNs       int64
	MinUpdateNs       int64
	MaxUpdateNs       int64
	LastUpdateNs      int64
	SnapHits          uint64
	OpsCommitted      uint64
}

// AbandonRate returns the percentage of begun gestures that were
// cancelled.
func (s MetricsSnapshot) AbandonRate() float64 {
	if s.GesturesBegun == 0 {
		return 0
	}
	return float64(s.GesturesCancelled) / float64(s.GesturesBegun) * 100
}

// AvgUpdateMs returns the average update time in milliseconds.
func (s MetricsSnapshot) AvgUpdateMs() float64 {
	return float64(s.AvgUpdateNs) / 1e6
}
