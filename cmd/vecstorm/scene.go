package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dshills/vecstorm/internal/document"
	"github.com/dshills/vecstorm/internal/engine/entity"
	"github.com/dshills/vecstorm/internal/engine/textlayout"
	"github.com/dshills/vecstorm/internal/geom"
)

// sceneFile is the on-disk scene format. Entities without an id are
// numbered in file order, matching the ids a recording session
// assigned.
type sceneFile struct {
	Rects     []sceneRect     `json:"rects,omitempty"`
	Circles   []sceneCircle   `json:"circles,omitempty"`
	Lines     []sceneLine     `json:"lines,omitempty"`
	Arrows    []sceneArrow    `json:"arrows,omitempty"`
	Polylines []scenePolyline `json:"polylines,omitempty"`
	Polygons  []scenePolygon  `json:"polygons,omitempty"`
	Texts     []sceneText     `json:"texts,omitempty"`
}

type sceneRect struct {
	ID  uint32  `json:"id,omitempty"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	W   float64 `json:"w"`
	H   float64 `json:"h"`
	Rot float64 `json:"rot,omitempty"`
}

type sceneCircle struct {
	ID  uint32  `json:"id,omitempty"`
	CX  float64 `json:"cx"`
	CY  float64 `json:"cy"`
	RX  float64 `json:"rx"`
	RY  float64 `json:"ry"`
	Rot float64 `json:"rot,omitempty"`
}

type sceneLine struct {
	ID uint32  `json:"id,omitempty"`
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

type sceneArrow struct {
	ID       uint32  `json:"id,omitempty"`
	AX       float64 `json:"ax"`
	AY       float64 `json:"ay"`
	BX       float64 `json:"bx"`
	BY       float64 `json:"by"`
	HeadSize float64 `json:"headSize,omitempty"`
}

type scenePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type scenePolyline struct {
	ID     uint32       `json:"id,omitempty"`
	Points []scenePoint `json:"points"`
}

type scenePolygon struct {
	ID    uint32  `json:"id,omitempty"`
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	RX    float64 `json:"rx"`
	RY    float64 `json:"ry"`
	Sides uint32  `json:"sides"`
	Rot   float64 `json:"rot,omitempty"`
}

type sceneText struct {
	ID       uint32  `json:"id,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation,omitempty"`
	Content  string  `json:"content"`
	FontSize float64 `json:"fontSize"`
}

// loadScene populates doc from a scene JSON file and returns the
// number of entities added.
func loadScene(doc *document.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var scene sceneFile
	if err := json.Unmarshal(data, &scene); err != nil {
		return 0, fmt.Errorf("decoding %s: %w", path, err)
	}

	n := 0
	for _, r := range scene.Rects {
		doc.AddRect(entity.RectRec{ID: r.ID, X: r.X, Y: r.Y, W: r.W, H: r.H, Rot: r.Rot})
		n++
	}
	for _, c := range scene.Circles {
		doc.AddCircle(entity.CircleRec{ID: c.ID, CX: c.CX, CY: c.CY, RX: c.RX, RY: c.RY, Rot: c.Rot})
		n++
	}
	for _, l := range scene.Lines {
		doc.AddLine(entity.LineRec{ID: l.ID, X0: l.X0, Y0: l.Y0, X1: l.X1, Y1: l.Y1})
		n++
	}
	for _, a := range scene.Arrows {
		doc.AddArrow(entity.ArrowRec{ID: a.ID, AX: a.AX, AY: a.AY, BX: a.BX, BY: a.BY, HeadSize: a.HeadSize})
		n++
	}
	for _, p := range scene.Polylines {
		points := make([]geom.Point, len(p.Points))
		for i, pt := range p.Points {
			points[i] = geom.Point{X: pt.X, Y: pt.Y}
		}
		doc.AddPolyline(entity.PolylineRec{ID: p.ID, Points: points})
		n++
	}
	for _, p := range scene.Polygons {
		doc.AddPolygon(entity.PolygonRec{ID: p.ID, CX: p.CX, CY: p.CY, RX: p.RX, RY: p.RY, Sides: p.Sides, Rot: p.Rot})
		n++
	}
	for _, txt := range scene.Texts {
		doc.AddText(textlayout.TextRec{ID: txt.ID, X: txt.X, Y: txt.Y, Rotation: txt.Rotation, Content: txt.Content, FontSize: txt.FontSize})
		n++
	}
	return n, nil
}
