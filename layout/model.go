// Package layout turns a normalized brief into absolutely positioned,
// render-ready geometry. Solvers are pure functions: the same brief and
// measurer always produce the same layout. Renderers never compute
// positions, they plot what this package hands them, so the types here are
// the one-way contract between the layout engine and every output format.
package layout

import (
	"fmt"

	"infogen/brief"
	"infogen/canvas"
)

// Kind of a visual element. Renderers switch on this.
// ENUM(block, band, title, subtitle, label)
type ElementKind int

// Transparent marks an element as fill-less. Renderers skip the fill and
// draw text straight onto whatever is behind.
const Transparent = "transparent"

// Text is pre-measured, pre-wrapped text. Font size and line breaks were
// decided by the measurer, renderers disable any auto-fit and use these
// values as-is.
type Text struct {
	Content string   `json:"content"`
	Lines   []string `json:"lines"`
	SizePt  int      `json:"size_pt"`
	Family  string   `json:"family"`
	Bold    bool     `json:"bold,omitempty"`
	Color   string   `json:"color"`
}

// Element is a fully positioned shape. All geometry is in inches from the
// slide origin.
type Element struct {
	ID            string      `json:"id"`
	Kind          ElementKind `json:"kind"`
	Rect          canvas.Rect `json:"rect"`
	Fill          string      `json:"fill"`
	Stroke        string      `json:"stroke,omitempty"`
	StrokeWidthPt float64     `json:"stroke_width_pt,omitempty"`
	CornerRadius  float64     `json:"corner_radius,omitempty"`
	Text          *Text       `json:"text,omitempty"`
	Opacity       float64     `json:"opacity"`
	LayerID       string      `json:"layer_id,omitempty"`
	ZOrder        int         `json:"z_order"`
	VCenter       bool        `json:"v_center"`
}

// Point on the slide, inches.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Connector is a straight line segment between two points. Multi-segment
// runs (org charts) are emitted as several connectors sharing an id prefix.
type Connector struct {
	ID            string               `json:"id"`
	From          Point                `json:"from"`
	To            Point                `json:"to"`
	Style         brief.ConnectorStyle `json:"style"`
	Color         string               `json:"color"`
	StrokeWidthPt float64              `json:"stroke_width_pt"`
	Label         *Text                `json:"label,omitempty"`
	FromID        string               `json:"from_id,omitempty"`
	ToID          string               `json:"to_id,omitempty"`
}

// Midpoint is where renderers anchor the connector label.
func (c Connector) Midpoint() Point {
	return Point{X: (c.From.X + c.To.X) / 2, Y: (c.From.Y + c.To.Y) / 2}
}

// Layout is the complete render-ready slide.
type Layout struct {
	Width      float64     `json:"width_inches"`
	Height     float64     `json:"height_inches"`
	Background string      `json:"background"`
	Title      *Element    `json:"title,omitempty"`
	Subtitle   *Element    `json:"subtitle,omitempty"`
	Elements   []Element   `json:"elements"`
	Connectors []Connector `json:"connectors"`
}

// Canvas returns the slide rectangle.
func (l *Layout) Canvas() canvas.Rect {
	return canvas.Rect{W: l.Width, H: l.Height}
}

// Element returns the element with the given id, nil when absent.
func (l *Layout) Element(id string) *Element {
	for i := range l.Elements {
		if l.Elements[i].ID == id {
			return &l.Elements[i]
		}
	}
	return nil
}

// ByZOrder returns elements back to front. The sort is stable so placement
// order breaks ties.
func (l *Layout) ByZOrder() []Element {
	sorted := make([]Element, len(l.Elements))
	copy(sorted, l.Elements)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].ZOrder < sorted[j-1].ZOrder; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

// Validate is the last line of defense before rendering. Solvers must leave
// layouts that validate cleanly; anything reported here becomes a
// layout-unsatisfiable failure upstream. Overlap between blocks at distinct
// z-orders is deliberate stacking (chevrons) and passes.
func (l *Layout) Validate() []string {
	var problems []string
	slide := l.Canvas()

	check := func(e *Element, role string) {
		if e == nil {
			return
		}
		if !e.Rect.Inside(slide) {
			problems = append(problems, fmt.Sprintf("%s %s outside the canvas", role, e.ID))
		}
		if e.Kind == ElementKindBand && e.ZOrder >= 0 {
			problems = append(problems, fmt.Sprintf("band %s not behind blocks (z=%d)", e.ID, e.ZOrder))
		}
	}

	check(l.Title, "title")
	check(l.Subtitle, "subtitle")
	for i := range l.Elements {
		check(&l.Elements[i], "element")
	}

	for i := range l.Elements {
		a := &l.Elements[i]
		if a.Kind != ElementKindBlock {
			continue
		}
		for j := i + 1; j < len(l.Elements); j++ {
			b := &l.Elements[j]
			if b.Kind != ElementKindBlock || a.ZOrder != b.ZOrder {
				continue
			}
			if a.Rect.Intersects(b.Rect) {
				problems = append(problems, fmt.Sprintf("blocks %s and %s overlap", a.ID, b.ID))
			}
		}
	}

	return problems
}
