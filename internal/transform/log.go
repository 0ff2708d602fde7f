package transform

import "sync"

// LogEntryType tags one recorded gesture event.
type LogEntryType string

const (
	// LogBegin records a Begin call.
	LogBegin LogEntryType = "begin"
	// LogUpdate records an Update call.
	LogUpdate LogEntryType = "update"
	// LogCommit records a Commit call.
	LogCommit LogEntryType = "commit"
	// LogCancel records a Cancel call.
	LogCancel LogEntryType = "cancel"
)

// LogEntry is one recorded session call with the inputs needed to
// replay it: pointer position, modifiers, view transform and the
// options in effect at the time.
type LogEntry struct {
	Type       LogEntryType `json:"type"`
	Mode       Mode         `json:"mode"`
	IDs        []uint32     `json:"ids,omitempty"`
	SpecificID uint32       `json:"specificId,omitempty"`
	Target     Target       `json:"target"`
	X          float64      `json:"x"`
	Y          float64      `json:"y"`
	Modifiers  Modifiers    `json:"modifiers"`
	View       Viewport     `json:"view"`
	Options    Options      `json:"options"`
}

// Log records session calls for diagnostics and deterministic replay.
// Recording is off by default. When the entry cap is reached the log
// marks itself overflowed and drops further entries; an overflowed log
// cannot be replayed because the gesture stream is incomplete.
type Log struct {
	mu         sync.Mutex
	enabled    bool
	max        int
	entries    []LogEntry
	overflowed bool
}

// NewLog creates a log capped at max entries. Non-positive caps fall
// back to the default.
func NewLog(max int) *Log {
	if max <= 0 {
		max = DefaultConfig().MaxLogEntries
	}
	return &Log{max: max}
}

// SetEnabled turns recording on or off.
func (l *Log) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// Enabled reports whether recording is on.
func (l *Log) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// SetMax adjusts the entry cap. Entries already past a lower cap are
// kept, but further recording marks the log overflowed.
func (l *Log) SetMax(max int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if max > 0 {
		l.max = max
	}
}

// Clear drops all entries and resets the overflow flag.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.overflowed = false
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Overflowed reports whether entries were dropped at the cap.
func (l *Log) Overflowed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.overflowed
}

// Entries returns a copy of the recorded entries.
func (l *Log) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) record(e LogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled {
		return
	}
	if len(l.entries) >= l.max {
		l.overflowed = true
		return
	}
	l.entries = append(l.entries, e)
}
