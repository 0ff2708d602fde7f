// Package textlayout stores text entities and their cached measured
// bounds. Interactive transforms move and rotate text without
// re-shaping: the cached extents travel with the position as fixed
// offsets and are only re-measured when content or size changes.
package textlayout

import "unicode/utf8"

// Approximate glyph metrics for measurement. Real shaping happens in
// the renderer; the engine only needs stable extents for picking and
// snapping.
const (
	advanceFactor = 0.6
	lineFactor    = 1.2
)

// TextRec is a text block anchored at X, Y with cached world bounds.
type TextRec struct {
	ID       uint32
	X        float64
	Y        float64
	Rotation float64
	Content  string
	FontSize float64

	// Cached measured bounds in world space.
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Store owns all text records, keyed by entity id. Not safe for
// concurrent mutation.
type Store struct {
	texts map[uint32]*TextRec
}

// NewStore creates an empty text store.
func NewStore() *Store {
	return &Store{texts: make(map[uint32]*TextRec)}
}

// Add inserts rec and measures its bounds. The caller assigns the id.
func (s *Store) Add(rec TextRec) {
	r := rec
	measure(&r)
	s.texts[r.ID] = &r
}

// Get returns a read-only view of the record for id.
func (s *Store) Get(id uint32) (*TextRec, bool) {
	r, ok := s.texts[id]
	return r, ok
}

// GetMutable returns the live record for id for in-place edits.
func (s *Store) GetMutable(id uint32) (*TextRec, bool) {
	r, ok := s.texts[id]
	return r, ok
}

// Remove deletes the record for id.
func (s *Store) Remove(id uint32) bool {
	if _, ok := s.texts[id]; !ok {
		return false
	}
	delete(s.texts, id)
	return true
}

// Len returns the number of text records.
func (s *Store) Len() int { return len(s.texts) }

// Bounds returns the cached world bounds for id.
func (s *Store) Bounds(id uint32) (minX, minY, maxX, maxY float64, ok bool) {
	r, found := s.texts[id]
	if !found {
		return 0, 0, 0, 0, false
	}
	return r.MinX, r.MinY, r.MaxX, r.MaxY, true
}

// MoveTo places the record at (x, y), translating the cached bounds
// by the same offset without re-measuring.
func (s *Store) MoveTo(id uint32, x, y float64) bool {
	r, ok := s.texts[id]
	if !ok {
		return false
	}
	offMinX := r.MinX - r.X
	offMinY := r.MinY - r.Y
	offMaxX := r.MaxX - r.X
	offMaxY := r.MaxY - r.Y
	r.X = x
	r.Y = y
	r.MinX = x + offMinX
	r.MinY = y + offMinY
	r.MaxX = x + offMaxX
	r.MaxY = y + offMaxY
	return true
}

// SetContent replaces the text and re-measures the bounds.
func (s *Store) SetContent(id uint32, content string) bool {
	r, ok := s.texts[id]
	if !ok {
		return false
	}
	r.Content = content
	measure(r)
	return true
}

func measure(r *TextRec) {
	size := r.FontSize
	if size <= 0 {
		size = 16
	}
	w := float64(utf8.RuneCountInString(r.Content)) * size * advanceFactor
	h := size * lineFactor
	r.MinX = r.X
	r.MinY = r.Y
	r.MaxX = r.X + w
	r.MaxY = r.Y + h
}
