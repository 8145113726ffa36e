package layout

import (
	"fmt"
	"math"

	"infogen/brief"
	"infogen/canvas"
	"infogen/common"
	"infogen/measure"
)

// subtitleClearance pushes solver content down when a subtitle occupies the
// top of the content area.
const subtitleClearance = 0.3

// composer carries the per-solve state shared by every archetype: the brief,
// the measurer, the resolved styling and the warnings sink.
type composer struct {
	b     *brief.Brief
	m     *measure.Measurer
	st    *styler
	warns *common.Warnings
}

func newComposer(b *brief.Brief, m *measure.Measurer, warns *common.Warnings) *composer {
	return &composer{b: b, m: m, st: newStyler(b), warns: warns}
}

func (c *composer) family() string { return c.b.Theme.FontFamily }

// fit wraps the measurer and records a warning when the label had to be
// truncated at the minimum size.
func (c *composer) fit(id, text string, width float64, minPt, maxPt int, bold bool, maxLines int) measure.MeasuredText {
	mt := c.m.FitLines(text, width, c.family(), minPt, maxPt, bold, maxLines)
	if !mt.Fits {
		c.warns.Add(common.WarnLabelTruncated, "%s: %q does not fit at %d pt", id, text, minPt)
	}
	return mt
}

// text assembles the render-ready text block from a fit result.
func (c *composer) text(mt measure.MeasuredText, bold bool, color string) *Text {
	return &Text{
		Content: mt.Text,
		Lines:   mt.Lines,
		SizePt:  mt.SizePt,
		Family:  c.family(),
		Bold:    bold,
		Color:   color,
	}
}

// base creates the slide with background, title and subtitle placed. The
// title band is fixed; solvers only ever fill the content area below it.
func (c *composer) base() *Layout {
	l := &Layout{
		Width:      canvas.SlideWidth,
		Height:     canvas.SlideHeight,
		Background: c.b.Theme.Background,
	}

	titleFit := c.fit("title", c.b.Title, canvas.ContentWidth,
		canvas.TitleMinFontSizePt, canvas.TitleFontSizePt, true, 2)
	l.Title = &Element{
		ID:      "title",
		Kind:    ElementKindTitle,
		Rect:    canvas.Rect{X: canvas.ContentLeft, Y: canvas.MarginTop, W: canvas.ContentWidth, H: canvas.TitleHeight},
		Fill:    Transparent,
		Text:    c.text(titleFit, true, c.b.Theme.Text),
		Opacity: 1,
		ZOrder:  100,
		VCenter: true,
	}

	if c.b.Subtitle != "" {
		subFit := c.fit("subtitle", c.b.Subtitle, canvas.ContentWidth,
			canvas.SubtitleMinFontSizePt, canvas.SubtitleFontSizePt, false, 2)
		l.Subtitle = &Element{
			ID:      "subtitle",
			Kind:    ElementKindSubtitle,
			Rect:    canvas.Rect{X: canvas.ContentLeft, Y: canvas.ContentTop, W: canvas.ContentWidth, H: canvas.SubtitleHeight},
			Fill:    Transparent,
			Text:    c.text(subFit, false, canvas.SubtitleText),
			Opacity: 1,
			ZOrder:  100,
			VCenter: true,
		}
	}

	return l
}

// box is the content area available to the solver, shrunk when a subtitle
// claims the top of it.
func (c *composer) box(l *Layout) canvas.Rect {
	r := canvas.Content()
	if l.Subtitle != nil {
		r.Y += subtitleClearance
		r.H -= subtitleClearance
	}
	return r
}

// sizeBlock fits an entity label at block sizes and derives the block
// height the text wants.
func (c *composer) sizeBlock(e *brief.Entity, width float64) (measure.MeasuredText, float64) {
	mt := c.fit(e.ID, e.Label, width, canvas.BlockMinFontSizePt, canvas.BlockMaxFontSizePt, true, 3)
	return mt, blockHeight(mt)
}

// blockHeight derives a block's height from its fitted label: text height
// plus vertical padding, clamped to the block bounds.
func blockHeight(mt measure.MeasuredText) float64 {
	return canvas.Clamp(mt.Height+2*canvas.TextPaddingV, canvas.MinBlockHeight, canvas.MaxBlockHeight)
}

// blockAt assembles the standard entity block from a pre-fitted label.
func (c *composer) blockAt(e *brief.Entity, mt measure.MeasuredText, idx int, r canvas.Rect, z int) Element {
	fill := c.st.fill(e, idx)
	if mt.Height > r.H {
		c.warns.Add(common.WarnTextOverflow, "%s: text %.2f in taller than its %.2f in block", e.ID, mt.Height, r.H)
	}
	return Element{
		ID:           e.ID,
		Kind:         ElementKindBlock,
		Rect:         r,
		Fill:         fill,
		CornerRadius: c.b.Theme.CornerRadius,
		Text:         c.text(mt, true, c.st.textOn(fill)),
		Opacity:      1,
		LayerID:      e.Group,
		ZOrder:       z,
		VCenter:      true,
	}
}

// band builds a full-width cross-cutting layer band. Bands render behind
// every block.
func (c *composer) band(layer brief.Layer, idx int, r canvas.Rect) Element {
	fill := c.st.colorAt(idx + 3)
	mt := c.fit("layer_"+layer.ID, layer.Label, r.W-0.5,
		canvas.BlockMinFontSizePt, canvas.BlockFontSizePt, true, 2)
	return Element{
		ID:      "layer_" + layer.ID,
		Kind:    ElementKindBand,
		Rect:    r,
		Fill:    fill,
		Text:    c.text(mt, true, c.st.textOn(fill)),
		Opacity: 0.9,
		LayerID: layer.ID,
		ZOrder:  -1,
		VCenter: true,
	}
}

// layerLabel builds the quiet gray label sitting to the left of a layer's
// blocks.
func (c *composer) layerLabel(layer brief.Layer, r canvas.Rect) Element {
	mt := c.fit("label_"+layer.ID, layer.Label, r.W, 9, canvas.BlockFontSizePt, true, 2)
	return Element{
		ID:      "label_" + layer.ID,
		Kind:    ElementKindLabel,
		Rect:    r,
		Fill:    Transparent,
		Text:    c.text(mt, true, canvas.SubtitleText),
		Opacity: 1,
		LayerID: layer.ID,
		ZOrder:  20,
		VCenter: true,
	}
}

// connect draws a straight connector between two placed elements. The line
// runs center to center, clipped at each shape's edge and then trimmed back
// by the connector inset so arrowheads never touch the shapes.
func (c *composer) connect(id string, conn brief.Connection, from, to *Element) Connector {
	dx := to.Rect.CenterX() - from.Rect.CenterX()
	dy := to.Rect.CenterY() - from.Rect.CenterY()
	start := edgeExit(from.Rect, dx, dy)
	end := edgeExit(to.Rect, -dx, -dy)

	if dist := math.Hypot(dx, dy); dist > 0 {
		ux, uy := dx/dist, dy/dist
		start.X += ux * canvas.ConnectorInset
		start.Y += uy * canvas.ConnectorInset
		end.X -= ux * canvas.ConnectorInset
		end.Y -= uy * canvas.ConnectorInset
	}

	k := Connector{
		ID:            id,
		From:          start,
		To:            end,
		Style:         conn.Style,
		Color:         c.st.connector(),
		StrokeWidthPt: canvas.ConnectorStrokePt,
		FromID:        conn.FromID,
		ToID:          conn.ToID,
	}
	if conn.Label != "" {
		mt := c.fit(id, conn.Label, 2.0, 8, 10, false, 2)
		k.Label = c.text(mt, false, c.st.connector())
	}
	return k
}

// connectAll wires every brief connection whose endpoints were placed.
// Connections referencing swallowed entities (cross-cutting members) are
// silently skipped; Normalize already pruned truly dangling ones.
func (c *composer) connectAll(l *Layout) {
	for i, conn := range c.b.Connections {
		from := l.Element(conn.FromID)
		to := l.Element(conn.ToID)
		if from == nil || to == nil {
			continue
		}
		l.Connectors = append(l.Connectors, c.connect(fmt.Sprintf("connector_%d", i), conn, from, to))
	}
}

// edgeExit finds where a ray from the rect center along (dx, dy) crosses
// the rectangle boundary. Falls back to the center for a zero direction.
func edgeExit(r canvas.Rect, dx, dy float64) Point {
	cx, cy := r.CenterX(), r.CenterY()
	if dx == 0 && dy == 0 {
		return Point{X: cx, Y: cy}
	}

	best := math.Inf(1)
	pt := Point{X: cx, Y: cy}
	if dx != 0 {
		for _, x := range [2]float64{r.X, r.Right()} {
			t := (x - cx) / dx
			if t <= 0 || t >= best {
				continue
			}
			if y := cy + t*dy; y >= r.Y && y <= r.Bottom() {
				best, pt = t, Point{X: x, Y: y}
			}
		}
	}
	if dy != 0 {
		for _, y := range [2]float64{r.Y, r.Bottom()} {
			t := (y - cy) / dy
			if t <= 0 || t >= best {
				continue
			}
			if x := cx + t*dx; x >= r.X && x <= r.Right() {
				best, pt = t, Point{X: x, Y: y}
			}
		}
	}
	return pt
}

// rowStart centers a run of n blocks of width w with the given gap inside
// the box.
func rowStart(box canvas.Rect, n int, w, gap float64) float64 {
	total := float64(n)*w + float64(n-1)*gap
	return box.X + (box.W-total)/2
}
