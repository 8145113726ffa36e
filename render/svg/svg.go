// Package svg renders a positioned layout into a self-contained SVG
// document. The output mirrors the slide renderer element for element: same
// ids, same ordering, same colors, so a client can diff the preview against
// the editable file. All geometry converts to CSS pixels at 96 DPI exactly
// once at write time.
package svg

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"infogen/brief"
	"infogen/canvas"
	"infogen/layout"
)

const (
	lineSpacing   = 1.2
	baselineRatio = 0.8

	// Connector label backdrop, px.
	labelBoxWidthPx  = 60.0
	labelBoxHeightPx = 20.0

	fontFallbacks = "'Segoe UI', 'DejaVu Sans', sans-serif"
)

// Render produces the SVG document for a layout.
func Render(l *layout.Layout) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("nothing to render")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	w, h := canvas.Pixels(l.Width), canvas.Pixels(l.Height)
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	root.CreateAttr("width", px(w))
	root.CreateAttr("height", px(h))
	root.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s", px(w), px(h)))

	writeMarkerDefs(root, l)

	if bg := strings.ToLower(l.Background); bg != "" && bg != canvas.DefaultBackground && bg != layout.Transparent {
		rect := root.CreateElement("rect")
		rect.CreateAttr("id", "background")
		rect.CreateAttr("data-kind", "background")
		rect.CreateAttr("width", px(w))
		rect.CreateAttr("height", px(h))
		rect.CreateAttr("style", "fill:"+hashColor(l.Background))
	}

	sorted := l.ByZOrder()
	for i := range sorted {
		writeElement(root, &sorted[i])
	}
	for i := range l.Connectors {
		writeConnector(root, &l.Connectors[i])
	}
	if l.Title != nil {
		writeElement(root, l.Title)
	}
	if l.Subtitle != nil {
		writeElement(root, l.Subtitle)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("unable to serialize document: %w", err)
	}
	return buf.Bytes(), nil
}

// writeMarkerDefs emits one arrowhead marker pair per connector color.
// Markers inherit nothing, so the polygon is filled with the line's color.
func writeMarkerDefs(root *etree.Element, l *layout.Layout) {
	var colors []string
	seen := make(map[string]bool)
	for i := range l.Connectors {
		c := &l.Connectors[i]
		if c.Style == brief.ConnectorStylePlain || seen[c.Color] {
			continue
		}
		seen[c.Color] = true
		colors = append(colors, c.Color)
	}
	if len(colors) == 0 {
		return
	}

	defs := root.CreateElement("defs")
	for _, color := range colors {
		marker(defs, "arrow-"+color, "9", "auto", color)
		marker(defs, "arrow-rev-"+color, "9", "auto-start-reverse", color)
	}
}

func marker(defs *etree.Element, id, refX, orient, color string) {
	m := defs.CreateElement("marker")
	m.CreateAttr("id", id)
	m.CreateAttr("markerWidth", "10")
	m.CreateAttr("markerHeight", "7")
	m.CreateAttr("refX", refX)
	m.CreateAttr("refY", "3.5")
	m.CreateAttr("orient", orient)
	m.CreateAttr("markerUnits", "strokeWidth")

	p := m.CreateElement("polygon")
	p.CreateAttr("points", "0 0, 10 3.5, 0 7")
	p.CreateAttr("style", "fill:"+hashColor(color))
}

// writeElement emits the element's shape node, then its text. Transparent
// elements contribute text only; the stable id rides on whichever node comes
// first.
func writeElement(parent *etree.Element, e *layout.Element) {
	if e.Fill == layout.Transparent && e.Text == nil {
		return
	}

	kind := e.Kind.String()
	hasShape := e.Fill != layout.Transparent

	if hasShape {
		if round := e.CornerRadius * 2; round >= e.Rect.W || round >= e.Rect.H {
			writeEllipse(parent, e, kind)
		} else {
			writeRect(parent, e, kind)
		}
	}

	if e.Text != nil {
		text := writeText(parent, e.Text, e.Rect, e.VCenter)
		if !hasShape {
			text.CreateAttr("id", e.ID)
			text.CreateAttr("data-kind", kind)
		}
	}
}

func writeRect(parent *etree.Element, e *layout.Element, kind string) {
	rect := parent.CreateElement("rect")
	rect.CreateAttr("id", e.ID)
	rect.CreateAttr("data-kind", kind)
	rect.CreateAttr("x", px(canvas.Pixels(e.Rect.X)))
	rect.CreateAttr("y", px(canvas.Pixels(e.Rect.Y)))
	rect.CreateAttr("width", px(canvas.Pixels(e.Rect.W)))
	rect.CreateAttr("height", px(canvas.Pixels(e.Rect.H)))
	if e.CornerRadius > 0 {
		r := px(canvas.Pixels(e.CornerRadius))
		rect.CreateAttr("rx", r)
		rect.CreateAttr("ry", r)
	}
	rect.CreateAttr("style", shapeStyle(e))
}

func writeEllipse(parent *etree.Element, e *layout.Element, kind string) {
	ellipse := parent.CreateElement("ellipse")
	ellipse.CreateAttr("id", e.ID)
	ellipse.CreateAttr("data-kind", kind)
	ellipse.CreateAttr("cx", px(canvas.Pixels(e.Rect.CenterX())))
	ellipse.CreateAttr("cy", px(canvas.Pixels(e.Rect.CenterY())))
	ellipse.CreateAttr("rx", px(canvas.Pixels(e.Rect.W/2)))
	ellipse.CreateAttr("ry", px(canvas.Pixels(e.Rect.H/2)))
	ellipse.CreateAttr("style", shapeStyle(e))
}

func shapeStyle(e *layout.Element) string {
	var sb strings.Builder
	sb.WriteString("fill:")
	sb.WriteString(hashColor(e.Fill))
	if e.Stroke != "" && e.Kind != layout.ElementKindBand {
		sb.WriteString(";stroke:")
		sb.WriteString(hashColor(e.Stroke))
		sb.WriteString(";stroke-width:")
		sb.WriteString(px(e.StrokeWidthPt * canvas.PixelsPerInch / 72))
	}
	if e.Opacity < 1 {
		sb.WriteString(";opacity:")
		sb.WriteString(strconv.FormatFloat(e.Opacity, 'g', -1, 64))
	}
	return sb.String()
}

// writeText emits the pre-measured lines as one text node with a tspan per
// line. The measurer decided size and breaks; this only places baselines.
func writeText(parent *etree.Element, t *layout.Text, r canvas.Rect, vCenter bool) *etree.Element {
	fontPx := float64(t.SizePt) * canvas.PixelsPerInch / 72
	lineH := fontPx * lineSpacing

	x := canvas.Pixels(r.CenterX())
	var firstBaseline float64
	if vCenter {
		block := lineH * float64(len(t.Lines))
		firstBaseline = canvas.Pixels(r.Y) + (canvas.Pixels(r.H)-block)/2 + fontPx*baselineRatio
	} else {
		firstBaseline = canvas.Pixels(r.Y) + fontPx*baselineRatio
	}

	text := parent.CreateElement("text")
	text.CreateAttr("x", px(x))
	text.CreateAttr("text-anchor", "middle")
	text.CreateAttr("font-size", px(fontPx))
	text.CreateAttr("font-family", "'"+t.Family+"', "+fontFallbacks)
	if t.Bold {
		text.CreateAttr("font-weight", "bold")
	}
	text.CreateAttr("style", "fill:"+hashColor(t.Color))

	for i, line := range t.Lines {
		tspan := text.CreateElement("tspan")
		tspan.CreateAttr("x", px(x))
		tspan.CreateAttr("y", px(firstBaseline+float64(i)*lineH))
		tspan.SetText(line)
	}
	return text
}

func writeConnector(parent *etree.Element, c *layout.Connector) {
	line := parent.CreateElement("line")
	line.CreateAttr("id", c.ID)
	line.CreateAttr("data-kind", "connector")
	line.CreateAttr("x1", px(canvas.Pixels(c.From.X)))
	line.CreateAttr("y1", px(canvas.Pixels(c.From.Y)))
	line.CreateAttr("x2", px(canvas.Pixels(c.To.X)))
	line.CreateAttr("y2", px(canvas.Pixels(c.To.Y)))

	style := "stroke:" + hashColor(c.Color) +
		";stroke-width:" + px(c.StrokeWidthPt*canvas.PixelsPerInch/72)
	if c.Style == brief.ConnectorStyleDashed {
		style += ";stroke-dasharray: 8,4"
	}
	line.CreateAttr("style", style)

	if c.Style != brief.ConnectorStylePlain {
		line.CreateAttr("marker-end", "url(#arrow-"+c.Color+")")
		if c.Style == brief.ConnectorStyleBidirectional {
			line.CreateAttr("marker-start", "url(#arrow-rev-"+c.Color+")")
		}
	}

	if c.Label != nil {
		mid := c.Midpoint()
		mx, my := canvas.Pixels(mid.X), canvas.Pixels(mid.Y)

		backdrop := parent.CreateElement("rect")
		backdrop.CreateAttr("id", c.ID+"_label")
		backdrop.CreateAttr("data-kind", "connector-label")
		backdrop.CreateAttr("x", px(mx-labelBoxWidthPx/2))
		backdrop.CreateAttr("y", px(my-labelBoxHeightPx/2))
		backdrop.CreateAttr("width", px(labelBoxWidthPx))
		backdrop.CreateAttr("height", px(labelBoxHeightPx))
		backdrop.CreateAttr("style", "fill:#ffffff")

		r := canvas.Rect{
			X: mid.X - labelBoxWidthPx/canvas.PixelsPerInch/2,
			Y: mid.Y - labelBoxHeightPx/canvas.PixelsPerInch/2,
			W: labelBoxWidthPx / canvas.PixelsPerInch,
			H: labelBoxHeightPx / canvas.PixelsPerInch,
		}
		writeText(parent, c.Label, r, true)
	}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func hashColor(c string) string {
	if strings.HasPrefix(c, "#") {
		return c
	}
	return "#" + c
}
