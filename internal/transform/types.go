package transform

import "time"

// Mode selects the degrees of freedom a gesture applies.
type Mode uint8

const (
	// ModeMove translates the whole selection.
	ModeMove Mode = iota
	// ModeVertexDrag moves a single vertex of a line, arrow or polyline.
	ModeVertexDrag
	// ModeEdgeDrag translates the selection by dragging an edge.
	ModeEdgeDrag
	// ModeResize scales from a corner handle about the opposite corner.
	ModeResize
	// ModeRotate rotates about the selection center.
	ModeRotate
	// ModeSideResize scales a single axis from a cardinal side handle.
	ModeSideResize
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeVertexDrag:
		return "vertex-drag"
	case ModeEdgeDrag:
		return "edge-drag"
	case ModeResize:
		return "resize"
	case ModeRotate:
		return "rotate"
	case ModeSideResize:
		return "side-resize"
	default:
		return "unknown"
	}
}

// OpCode identifies the operation recorded per entity in a commit
// result.
type OpCode uint8

const (
	// OpMove is a translation; payload is (dx, dy, 0, 0).
	OpMove OpCode = 1
	// OpVertexSet places one vertex; payload is (x, y, index, 0).
	OpVertexSet OpCode = 2
	// OpResize sets position and size; payload is (x, y, w, h).
	OpResize OpCode = 3
	// OpRotate sets rotation; payload is (radians, cx, cy, 0).
	OpRotate OpCode = 4
	// OpSideResize sets position and size; payload is (x, y, w, h).
	OpSideResize OpCode = 5
)

// String returns the opcode name.
func (o OpCode) String() string {
	switch o {
	case OpMove:
		return "move"
	case OpVertexSet:
		return "vertex-set"
	case OpResize:
		return "resize"
	case OpRotate:
		return "rotate"
	case OpSideResize:
		return "side-resize"
	default:
		return "unknown"
	}
}

// Modifiers is the modifier-key bitmask delivered with pointer events.
type Modifiers uint32

const (
	// ModShift is the shift key.
	ModShift Modifiers = 1 << iota
	// ModCtrl is the control key.
	ModCtrl
	// ModAlt is the alt/option key.
	ModAlt
	// ModMeta is the command/windows key.
	ModMeta
)

// HasShift reports whether shift is held.
func (m Modifiers) HasShift() bool { return m&ModShift != 0 }

// HasCtrl reports whether control is held.
func (m Modifiers) HasCtrl() bool { return m&ModCtrl != 0 }

// HasAlt reports whether alt is held.
func (m Modifiers) HasAlt() bool { return m&ModAlt != 0 }

// HasMeta reports whether meta is held.
func (m Modifiers) HasMeta() bool { return m&ModMeta != 0 }

// SnapSuppressed reports whether snapping is disabled for this event.
func (m Modifiers) SnapSuppressed() bool { return m&(ModCtrl|ModMeta) != 0 }

// TargetKind tags the Target variant.
type TargetKind uint8

const (
	// TargetNone means no sub-feature is addressed.
	TargetNone TargetKind = iota
	// TargetVertex addresses a vertex by index.
	TargetVertex
	// TargetSide addresses a cardinal side handle.
	TargetSide
	// TargetHandle addresses a corner resize handle.
	TargetHandle
)

// Target addresses the dragged sub-feature of a gesture: a vertex for
// vertex drags, a corner handle for resize, a side for side resize.
type Target struct {
	Kind  TargetKind `json:"kind"`
	Index uint32     `json:"index"`
}

// NoTarget returns the empty target.
func NoTarget() Target { return Target{} }

// VertexTarget addresses vertex i.
func VertexTarget(i uint32) Target { return Target{Kind: TargetVertex, Index: i} }

// SideTarget addresses side i (0=S, 1=E, 2=N, 3=W).
func SideTarget(i uint32) Target { return Target{Kind: TargetSide, Index: i} }

// HandleTarget addresses corner handle i (0=BL, 1=BR, 2=TR, 3=TL).
func HandleTarget(i uint32) Target { return Target{Kind: TargetHandle, Index: i} }

// Vertex returns the vertex index if the target is a vertex.
func (t Target) Vertex() (uint32, bool) {
	return t.Index, t.Kind == TargetVertex
}

// Side returns the side index if the target is a side.
func (t Target) Side() (uint32, bool) {
	return t.Index, t.Kind == TargetSide
}

// Handle returns the handle index if the target is a corner handle.
func (t Target) Handle() (uint32, bool) {
	return t.Index, t.Kind == TargetHandle
}

// State is a snapshot of the session for UI feedback.
type State struct {
	Active           bool
	Dragging         bool
	Mode             Mode
	RotationDeltaDeg float64
	PivotX           float64
	PivotY           float64
}

// Stats carries per-update telemetry counters.
type Stats struct {
	// LastUpdate is the wall time of the most recent Update call.
	LastUpdate time.Duration
	// LastSnapCandidates is the number of entities the object-snap
	// solver inspected in the most recent Update.
	LastSnapCandidates int
	// LastSnapHits is the number of axes snapped in the most recent
	// Update (0, 1 or 2).
	LastSnapHits int
}

// CommitResult reports the per-entity outcome of a committed gesture.
// IDs, OpCodes and Payloads run in parallel; Payloads holds four
// values per entity.
type CommitResult struct {
	GestureID string
	IDs       []uint32
	OpCodes   []OpCode
	Payloads  []float64
}

// Empty reports whether the commit produced no operations.
func (r CommitResult) Empty() bool { return len(r.IDs) == 0 }
