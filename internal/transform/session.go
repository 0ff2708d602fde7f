package transform

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/vecstorm/internal/document"
	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/engine/history"
	"github.com/dshills/vecstorm/internal/geom"
)

var (
	// ErrSessionActive is returned by Begin while a gesture is in
	// progress and by Replay when the session is mid-gesture.
	ErrSessionActive = errors.New("transform: session already active")

	// ErrNoSelection is returned by Begin when no usable entity ids
	// were supplied.
	ErrNoSelection = errors.New("transform: no entities to transform")

	// ErrReplayEmpty is returned by Replay for an empty entry stream.
	ErrReplayEmpty = errors.New("transform: replay log is empty")

	// ErrReplayBadStart is returned by Replay when the stream does not
	// open with a begin entry.
	ErrReplayBadStart = errors.New("transform: replay log must start with begin")

	// ErrReplayOverflowed is returned by ReplayLog when entries were
	// dropped at the log cap, leaving the gesture stream incomplete.
	ErrReplayOverflowed = errors.New("transform: replay log overflowed")
)

// Session drives one interactive transform gesture at a time through
// the Begin, Update, Commit or Cancel lifecycle. All geometry math
// works from snapshots captured at Begin, so every Update is a pure
// function of the current pointer position and Cancel restores the
// exact starting state.
type Session struct {
	doc  *document.Context
	cfg  Config
	opts Options
	log  *Log

	active     bool
	dragging   bool
	mode       Mode
	gestureID  uuid.UUID
	initialIDs []uint32
	snapshots  []Snapshot
	specificID uint32
	target     Target
	handleIdx  int
	sideIdx    int

	startScreenX float64
	startScreenY float64
	startX       float64
	startY       float64
	base         geom.AABB

	axisLock AxisLockState

	anchorValid bool
	anchorX     float64
	anchorY     float64
	baseW       float64
	baseH       float64
	aspect      float64

	pivotX         float64
	pivotY         float64
	startAngleDeg  float64
	lastAngleDeg   float64
	accumulatedDeg float64

	duplicated  bool
	originalIDs []uint32

	entry  *history.Entry
	guides []SnapGuide
	hits   []SnapHit
	stats  Stats
}

// NewSession creates a session bound to a document.
func NewSession(doc *document.Context, cfg Config) *Session {
	return &Session{
		doc:       doc,
		cfg:       cfg,
		opts:      DefaultOptions(),
		log:       NewLog(cfg.MaxLogEntries),
		handleIdx: -1,
		sideIdx:   -1,
	}
}

// Config returns the session's tuning constants.
func (s *Session) Config() Config { return s.cfg }

// SetConfig replaces the tuning constants. Ignored while a gesture is
// active; the log keeps its entries and adopts the new cap.
func (s *Session) SetConfig(cfg Config) {
	if s.active {
		return
	}
	s.cfg = cfg
	s.log.SetMax(cfg.MaxLogEntries)
}

// Options returns the live engine options.
func (s *Session) Options() Options { return s.opts }

// SetOptions replaces the live engine options. Takes effect on the
// next Update.
func (s *Session) SetOptions(opts Options) { s.opts = opts }

// Log returns the gesture log for recording control and replay.
func (s *Session) Log() *Log { return s.log }

// resolveGestureIDs selects the entities a gesture operates on. Group
// corner handles resize or rotate the whole selection; otherwise a
// specific entity wins for the sub-feature modes.
func resolveGestureIDs(ids []uint32, mode Mode, specificID uint32) []uint32 {
	if (mode == ModeResize || mode == ModeRotate) && len(ids) > 1 {
		return ids
	}
	if specificID != 0 && mode != ModeMove && mode != ModeEdgeDrag {
		return []uint32{specificID}
	}
	return ids
}

// Begin starts a gesture over ids at the given screen position. The
// target addresses the dragged sub-feature: a vertex index for
// ModeVertexDrag, a corner handle for ModeResize, a side for
// ModeSideResize. Unknown ids are skipped; a gesture with no usable
// entity fails with ErrNoSelection.
func (s *Session) Begin(ids []uint32, mode Mode, specificID uint32, target Target, screenX, screenY float64, view Viewport, mods Modifiers) error {
	if s.active {
		return ErrSessionActive
	}

	gestureIDs := resolveGestureIDs(ids, mode, specificID)
	if len(gestureIDs) == 0 {
		return ErrNoSelection
	}

	s.mode = mode
	s.specificID = specificID
	s.target = target
	s.handleIdx = -1
	s.sideIdx = -1
	if h, ok := target.Handle(); ok {
		s.handleIdx = int(h)
	}
	if side, ok := target.Side(); ok {
		s.sideIdx = int(side)
	}
	s.startScreenX = screenX
	s.startScreenY = screenY
	s.startX, s.startY = view.WorldFromScreen(screenX, screenY)
	s.dragging = false
	s.duplicated = false
	s.originalIDs = nil
	s.axisLock.Reset()
	s.anchorValid = false
	s.anchorX, s.anchorY = 0, 0
	s.baseW, s.baseH = 0, 0
	s.aspect = 1
	s.guides = nil
	s.hits = nil
	s.stats = Stats{}

	s.initialIDs = s.initialIDs[:0]
	s.snapshots = s.snapshots[:0]
	for _, id := range gestureIDs {
		snap, ok := captureSnapshot(s.doc, id)
		if !ok {
			continue
		}
		s.initialIDs = append(s.initialIDs, id)
		s.snapshots = append(s.snapshots, snap)
	}
	if len(s.snapshots) == 0 {
		return ErrNoSelection
	}

	s.base = s.selectionBounds()
	s.gestureID = uuid.New()
	s.active = true

	switch mode {
	case ModeResize:
		s.initResizeAnchor()
	case ModeRotate:
		s.pivotX = s.base.CenterX()
		s.pivotY = s.base.CenterY()
		angle := geom.Degrees(math.Atan2(s.startY-s.pivotY, s.startX-s.pivotX))
		s.startAngleDeg = angle
		s.lastAngleDeg = angle
		s.accumulatedDeg = 0
	}

	s.log.record(LogEntry{
		Type:       LogBegin,
		Mode:       mode,
		IDs:        append([]uint32(nil), ids...),
		SpecificID: specificID,
		Target:     target,
		X:          screenX,
		Y:          screenY,
		Modifiers:  mods,
		View:       view,
		Options:    s.opts,
	})

	entry, err := s.doc.History.Begin(mode.String())
	if err != nil {
		entry = nil
	}
	s.entry = entry
	for _, snap := range s.snapshots {
		s.entry.Record(history.EntityChange{
			ID:     snap.ID,
			Kind:   snap.Kind,
			Before: historySnapshot(snap),
		})
	}
	return nil
}

// selectionBounds unions the current bounds of the gesture entities,
// falling back to the start point when nothing has valid bounds.
func (s *Session) selectionBounds() geom.AABB {
	var box geom.AABB
	has := false
	for _, id := range s.initialIDs {
		b, ok := s.doc.AABB(id)
		if !ok {
			continue
		}
		if !has {
			box = b
			has = true
			continue
		}
		box = box.Union(b)
	}
	if !has {
		return geom.AABB{MinX: s.startX, MinY: s.startY, MaxX: s.startX, MaxY: s.startY}
	}
	return box
}

// initResizeAnchor captures the fixed corner of a single-entity corner
// resize in the entity's local space, chosen opposite the grabbed
// corner. Group resizes anchor on the selection bounds at update time
// instead.
func (s *Session) initResizeAnchor() {
	if len(s.snapshots) != 1 || s.specificID == 0 || s.handleIdx < 0 || s.handleIdx > 3 {
		return
	}
	snap := s.snapshots[0]
	center, halfW, halfH, ok := resizeFrame(snap)
	if !ok {
		return
	}
	s.baseW = maxf(1e-6, halfW*2)
	s.baseH = maxf(1e-6, halfH*2)
	s.aspect = 1
	if s.baseW > 1e-6 && s.baseH > 1e-6 {
		s.aspect = s.baseW / s.baseH
	}

	localX, localY := toLocal(s.startX, s.startY, center.X, center.Y, snap.Rotation)
	anchorX := halfW
	if localX >= 0 {
		anchorX = -halfW
	}
	anchorY := halfH
	if localY >= 0 {
		anchorY = -halfH
	}
	s.anchorX = anchorX
	s.anchorY = anchorY
	s.anchorValid = true
}

// Update advances the active gesture to a new pointer position. Until
// the pointer travels past the drag threshold nothing moves; after
// that every call recomputes the full transform from the Begin
// snapshots.
func (s *Session) Update(screenX, screenY float64, view Viewport, mods Modifiers) {
	if !s.active {
		return
	}
	start := time.Now()
	s.guides = nil
	s.hits = nil
	s.log.record(LogEntry{
		Type:      LogUpdate,
		Mode:      s.mode,
		X:         screenX,
		Y:         screenY,
		Modifiers: mods,
		View:      view,
		Options:   s.opts,
	})

	candidates := 0
	snapHits := 0
	defer func() {
		s.stats = Stats{
			LastUpdate:         time.Since(start),
			LastSnapCandidates: candidates,
			LastSnapHits:       snapHits,
		}
	}()

	screenDx := screenX - s.startScreenX
	screenDy := screenY - s.startScreenY

	dragStarted := false
	if !s.dragging {
		threshold := s.cfg.DragThresholdPx
		if screenDx*screenDx+screenDy*screenDy < threshold*threshold {
			return
		}
		s.dragging = true
		dragStarted = true
	}

	worldX, worldY := view.WorldFromScreen(screenX, screenY)
	if !mods.SnapSuppressed() {
		worldX, worldY = applyGridSnap(worldX, worldY, s.opts.Snap)
	}
	totalDx := worldX - s.startX
	totalDy := worldY - s.startY

	updated := false
	switch s.mode {
	case ModeMove, ModeEdgeDrag:
		updated = s.updateMove(dragStarted, screenDx, screenDy, totalDx, totalDy, view, mods, &candidates, &snapHits)
	case ModeVertexDrag:
		updated = s.updateVertexDrag(worldX, worldY, totalDx, totalDy, mods)
	case ModeResize:
		updated = s.updateResize(worldX, worldY, mods)
	case ModeRotate:
		updated = s.updateRotate(worldX, worldY, mods)
	case ModeSideResize:
		updated = s.updateSideResize(worldX, worldY, mods)
	}

	if updated {
		s.doc.BumpGeneration()
	}
}

// markGeometryChanged queues change notifications for id and refreshes
// its spatial index entry.
func (s *Session) markGeometryChanged(id uint32) {
	s.doc.RecordEntityChanged(id, document.ChangeGeometry|document.ChangeBounds)
	s.doc.RefreshIndex(id)
}

// Commit ends the gesture and reports the per-entity operations it
// applied. A gesture that never crossed the drag threshold commits as
// a no-op with an empty result, and its history entry is discarded.
// Calling Commit without an active gesture returns an empty result.
func (s *Session) Commit() CommitResult {
	if !s.active {
		return CommitResult{}
	}
	s.guides = nil
	s.hits = nil
	s.log.record(LogEntry{Type: LogCommit, Mode: s.mode, Options: s.opts})

	result := CommitResult{GestureID: s.gestureID.String()}
	if !s.dragging {
		s.doc.History.Discard(s.entry)
		s.reset()
		return result
	}

	appendOp := func(id uint32, op OpCode, a, b, c, d float64) {
		result.IDs = append(result.IDs, id)
		result.OpCodes = append(result.OpCodes, op)
		result.Payloads = append(result.Payloads, a, b, c, d)
	}

	switch s.mode {
	case ModeMove, ModeEdgeDrag:
		for _, snap := range s.snapshots {
			cur, orig, ok := moveReference(s.doc, snap)
			if !ok {
				continue
			}
			appendOp(snap.ID, OpMove, cur.X-orig.X, cur.Y-orig.Y, 0, 0)
		}
	case ModeVertexDrag:
		if idx, ok := s.target.Vertex(); ok {
			if p, found := currentVertex(s.doc, s.specificID, int(idx)); found {
				appendOp(s.specificID, OpVertexSet, p.X, p.Y, float64(idx), 0)
			}
		}
	case ModeResize, ModeSideResize:
		op := OpResize
		if s.mode == ModeSideResize {
			op = OpSideResize
		}
		for _, snap := range s.snapshots {
			x, y, w, h, ok := currentBox(s.doc, snap)
			if !ok {
				continue
			}
			appendOp(snap.ID, op, x, y, w, h)
		}
	case ModeRotate:
		for _, snap := range s.snapshots {
			rot, cx, cy, ok := currentRotation(s.doc, snap)
			if !ok {
				continue
			}
			appendOp(snap.ID, OpRotate, rot, cx, cy, 0)
		}
	}

	for _, snap := range s.snapshots {
		if after, ok := captureSnapshot(s.doc, snap.ID); ok {
			s.entry.SetAfter(snap.ID, historySnapshot(after))
		}
	}
	s.doc.History.Commit(s.entry)
	s.reset()
	return result
}

// Cancel ends the gesture and restores every entity to its Begin
// snapshot. Entities duplicated by an alt-drag are deleted instead.
func (s *Session) Cancel() {
	if !s.active {
		return
	}
	s.guides = nil
	s.hits = nil
	s.log.record(LogEntry{Type: LogCancel, Mode: s.mode, Options: s.opts})
	s.doc.History.Discard(s.entry)

	if s.duplicated {
		for _, id := range s.initialIDs {
			s.doc.Remove(id)
		}
		s.reset()
		return
	}

	for _, snap := range s.snapshots {
		restoreSnapshot(s.doc, snap)
	}
	s.reset()
}

// reset clears all gesture state, leaving the document, config,
// options and log intact.
func (s *Session) reset() {
	s.active = false
	s.dragging = false
	s.initialIDs = nil
	s.snapshots = nil
	s.specificID = 0
	s.target = Target{}
	s.handleIdx = -1
	s.sideIdx = -1
	s.duplicated = false
	s.originalIDs = nil
	s.entry = nil
	s.anchorValid = false
	s.axisLock.Reset()
	s.guides = nil
	s.hits = nil
}

// State returns a snapshot of the gesture for UI feedback.
func (s *Session) State() State {
	st := State{Active: s.active, Dragging: s.dragging, Mode: s.mode}
	if s.active && s.mode == ModeRotate {
		st.RotationDeltaDeg = s.accumulatedDeg
		st.PivotX = s.pivotX
		st.PivotY = s.pivotY
	}
	return st
}

// Stats returns the telemetry of the most recent Update.
func (s *Session) Stats() Stats { return s.stats }

// Guides returns the snap guides of the most recent Update.
func (s *Session) Guides() []SnapGuide {
	out := make([]SnapGuide, len(s.guides))
	copy(out, s.guides)
	return out
}

// Hits returns the snap feature hits of the most recent Update.
func (s *Session) Hits() []SnapHit {
	out := make([]SnapHit, len(s.hits))
	copy(out, s.hits)
	return out
}

// Replay feeds a recorded entry stream back through the session,
// reproducing the gesture deterministically. The last commit's result
// is returned. Recording is paused for the duration so the replay does
// not append to the log it came from.
func (s *Session) Replay(entries []LogEntry) (CommitResult, error) {
	if s.active {
		return CommitResult{}, ErrSessionActive
	}
	if len(entries) == 0 {
		return CommitResult{}, ErrReplayEmpty
	}
	if entries[0].Type != LogBegin {
		return CommitResult{}, ErrReplayBadStart
	}

	wasEnabled := s.log.Enabled()
	s.log.SetEnabled(false)
	defer s.log.SetEnabled(wasEnabled)

	var last CommitResult
	for _, e := range entries {
		s.SetOptions(e.Options)
		switch e.Type {
		case LogBegin:
			if err := s.Begin(e.IDs, e.Mode, e.SpecificID, e.Target, e.X, e.Y, e.View, e.Modifiers); err != nil {
				return last, err
			}
		case LogUpdate:
			s.Update(e.X, e.Y, e.View, e.Modifiers)
		case LogCommit:
			last = s.Commit()
		case LogCancel:
			s.Cancel()
		default:
			return last, fmt.Errorf("transform: unknown log entry type %q", e.Type)
		}
	}
	return last, nil
}

// ReplayLog replays the session's own recorded log.
func (s *Session) ReplayLog() (CommitResult, error) {
	if s.log.Overflowed() {
		return CommitResult{}, ErrReplayOverflowed
	}
	return s.Replay(s.log.Entries())
}

// moveReference reads an entity's current and snapshot reference
// point: the position for positional kinds, the first point for
// point-based kinds.
func moveReference(doc *document.Context, snap Snapshot) (cur, orig geom.Point, ok bool) {
	if len(snap.Points) > 0 {
		orig = snap.Points[0]
	} else {
		orig = geom.Point{X: snap.X, Y: snap.Y}
	}
	switch snap.Kind {
	case entity.KindRect:
		if r, found := doc.Store.Rect(snap.ID); found {
			return geom.Point{X: r.X, Y: r.Y}, orig, true
		}
	case entity.KindCircle:
		if c, found := doc.Store.Circle(snap.ID); found {
			return geom.Point{X: c.CX, Y: c.CY}, orig, true
		}
	case entity.KindPolygon:
		if p, found := doc.Store.Polygon(snap.ID); found {
			return geom.Point{X: p.CX, Y: p.CY}, orig, true
		}
	case entity.KindText:
		if t, found := doc.Texts.Get(snap.ID); found {
			return geom.Point{X: t.X, Y: t.Y}, orig, true
		}
	case entity.KindLine:
		if l, found := doc.Store.Line(snap.ID); found {
			return geom.Point{X: l.X0, Y: l.Y0}, orig, true
		}
	case entity.KindArrow:
		if a, found := doc.Store.Arrow(snap.ID); found {
			return geom.Point{X: a.AX, Y: a.AY}, orig, true
		}
	case entity.KindPolyline:
		if p, found := doc.Store.Polyline(snap.ID); found && len(p.Points) > 0 {
			return p.Points[0], orig, true
		}
	}
	return geom.Point{}, geom.Point{}, false
}

// currentVertex reads one vertex of a point-based entity.
func currentVertex(doc *document.Context, id uint32, idx int) (geom.Point, bool) {
	kind, ok := doc.Kind(id)
	if !ok || idx < 0 {
		return geom.Point{}, false
	}
	switch kind {
	case entity.KindLine:
		if l, found := doc.Store.Line(id); found {
			switch idx {
			case 0:
				return geom.Point{X: l.X0, Y: l.Y0}, true
			case 1:
				return geom.Point{X: l.X1, Y: l.Y1}, true
			}
		}
	case entity.KindArrow:
		if a, found := doc.Store.Arrow(id); found {
			switch idx {
			case 0:
				return geom.Point{X: a.AX, Y: a.AY}, true
			case 1:
				return geom.Point{X: a.BX, Y: a.BY}, true
			}
		}
	case entity.KindPolyline:
		if p, found := doc.Store.Polyline(id); found && idx < len(p.Points) {
			return p.Points[idx], true
		}
	}
	return geom.Point{}, false
}

// currentBox reads the committed box of a resizable entity: position
// and extents for rects, center and diameters for circles and
// polygons.
func currentBox(doc *document.Context, snap Snapshot) (x, y, w, h float64, ok bool) {
	switch snap.Kind {
	case entity.KindRect:
		if r, found := doc.Store.Rect(snap.ID); found {
			return r.X, r.Y, r.W, r.H, true
		}
	case entity.KindCircle:
		if c, found := doc.Store.Circle(snap.ID); found {
			return c.CX, c.CY, c.RX * 2, c.RY * 2, true
		}
	case entity.KindPolygon:
		if p, found := doc.Store.Polygon(snap.ID); found {
			return p.CX, p.CY, p.RX * 2, p.RY * 2, true
		}
	}
	return 0, 0, 0, 0, false
}

// currentRotation reads the committed rotation and center of a
// rotatable entity.
func currentRotation(doc *document.Context, snap Snapshot) (rot, cx, cy float64, ok bool) {
	switch snap.Kind {
	case entity.KindRect:
		if r, found := doc.Store.Rect(snap.ID); found {
			return r.Rot, r.X + r.W/2, r.Y + r.H/2, true
		}
	case entity.KindCircle:
		if c, found := doc.Store.Circle(snap.ID); found {
			return c.Rot, c.CX, c.CY, true
		}
	case entity.KindPolygon:
		if p, found := doc.Store.Polygon(snap.ID); found {
			return p.Rot, p.CX, p.CY, true
		}
	case entity.KindText:
		if t, found := doc.Texts.Get(snap.ID); found {
			return t.Rotation, t.X, t.Y, true
		}
	}
	return 0, 0, 0, false
}
