package pptx

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"infogen/brief"
	"infogen/canvas"
	"infogen/layout"
)

// Text body insets, inches.
const (
	textInsetH = 0.05
	textInsetV = 0.03
)

// Connector label box, inches.
const (
	labelBoxWidth  = 1.5
	labelBoxHeight = 0.3
)

// maxCornerAdj caps the roundRect adjustment so tall radii stay a gentle
// rounding instead of collapsing the shape into a stadium.
const maxCornerAdj = 0.15

func slideDoc(l *layout.Layout) *etree.Document {
	doc := newXMLDoc()
	root := doc.CreateElement("p:sld")
	root.CreateAttr("xmlns:a", nsDrawing)
	root.CreateAttr("xmlns:r", nsRelationships)
	root.CreateAttr("xmlns:p", nsPresentation)

	cSld := root.CreateElement("p:cSld")
	if bg := strings.ToLower(l.Background); bg != "" && bg != canvas.DefaultBackground && bg != layout.Transparent {
		bgPr := cSld.CreateElement("p:bg").CreateElement("p:bgPr")
		solidFill(bgPr, l.Background, 1)
		bgPr.CreateElement("a:effectLst")
	}

	w := &slideWriter{tree: emptyShapeTree(cSld), nextID: 1}
	if l.Title != nil {
		w.textBox(l.Title)
	}
	if l.Subtitle != nil {
		w.textBox(l.Subtitle)
	}
	sorted := l.ByZOrder()
	for i := range sorted {
		w.element(&sorted[i])
	}
	for i := range l.Connectors {
		w.connector(&l.Connectors[i])
	}

	root.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")
	return doc
}

// slideWriter appends shapes to the slide's shape tree handing out unique
// drawing ids. Id 1 belongs to the group header.
type slideWriter struct {
	tree   *etree.Element
	nextID int
}

func (w *slideWriter) id() string {
	w.nextID++
	return strconv.Itoa(w.nextID)
}

// element dispatches on the element kind. Transparent elements without text
// are spacers and emit nothing.
func (w *slideWriter) element(e *layout.Element) {
	if e.Fill == layout.Transparent && e.Text == nil {
		return
	}
	switch e.Kind {
	case layout.ElementKindBlock, layout.ElementKindBand:
		if e.Fill == layout.Transparent {
			w.textBox(e)
			return
		}
		w.shape(e)
	default:
		w.textBox(e)
	}
}

// shape emits a rounded rectangle with fill, stroke and the pre-measured
// label. Corner rounding is expressed in the geometry's adjustment units.
func (w *slideWriter) shape(e *layout.Element) {
	sp := w.tree.CreateElement("p:sp")

	nv := sp.CreateElement("p:nvSpPr")
	cNvPr := nv.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", w.id())
	cNvPr.CreateAttr("name", e.ID)
	nv.CreateElement("p:cNvSpPr")
	nv.CreateElement("p:nvPr")

	spPr := sp.CreateElement("p:spPr")
	xfrm(spPr, e.Rect)

	adj := e.CornerRadius / e.Rect.H
	if adj > maxCornerAdj {
		adj = maxCornerAdj
	}
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "roundRect")
	gd := geom.CreateElement("a:avLst").CreateElement("a:gd")
	gd.CreateAttr("name", "adj")
	gd.CreateAttr("fmla", "val "+strconv.Itoa(int(adj*100000+0.5)))

	solidFill(spPr, e.Fill, e.Opacity)

	ln := spPr.CreateElement("a:ln")
	if e.Stroke != "" && e.Kind != layout.ElementKindBand {
		ln.CreateAttr("w", strconv.FormatInt(canvas.PointsEMU(e.StrokeWidthPt), 10))
		solidFill(ln, e.Stroke, 1)
	} else {
		ln.CreateElement("a:noFill")
	}

	w.textBody(sp, e.Text, e.VCenter)
}

// textBox emits a borderless, fill-less shape holding only text. Titles,
// subtitles and labels render this way.
func (w *slideWriter) textBox(e *layout.Element) {
	sp := w.tree.CreateElement("p:sp")

	nv := sp.CreateElement("p:nvSpPr")
	cNvPr := nv.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", w.id())
	cNvPr.CreateAttr("name", e.ID)
	nv.CreateElement("p:cNvSpPr").CreateAttr("txBox", "1")
	nv.CreateElement("p:nvPr")

	spPr := sp.CreateElement("p:spPr")
	xfrm(spPr, e.Rect)
	spPr.CreateElement("a:prstGeom").CreateAttr("prst", "rect")
	spPr.CreateElement("a:noFill")
	spPr.CreateElement("a:ln").CreateElement("a:noFill")

	w.textBody(sp, e.Text, e.VCenter)
}

// textBody writes the pre-measured paragraphs. Auto fit stays off and wrap
// only turns on for text the measurer already broke into lines; the shape
// must never resize or rewrap what the measurer decided.
func (w *slideWriter) textBody(sp *etree.Element, t *layout.Text, vCenter bool) {
	body := sp.CreateElement("p:txBody")

	bodyPr := body.CreateElement("a:bodyPr")
	wrap := "none"
	if t != nil && len(t.Lines) > 1 {
		wrap = "square"
	}
	bodyPr.CreateAttr("wrap", wrap)
	bodyPr.CreateAttr("lIns", strconv.FormatInt(canvas.EMU(textInsetH), 10))
	bodyPr.CreateAttr("tIns", strconv.FormatInt(canvas.EMU(textInsetV), 10))
	bodyPr.CreateAttr("rIns", strconv.FormatInt(canvas.EMU(textInsetH), 10))
	bodyPr.CreateAttr("bIns", strconv.FormatInt(canvas.EMU(textInsetV), 10))
	if vCenter {
		bodyPr.CreateAttr("anchor", "ctr")
	} else {
		bodyPr.CreateAttr("anchor", "t")
	}
	bodyPr.CreateElement("a:noAutofit")

	body.CreateElement("a:lstStyle")

	// a text frame must hold at least one paragraph with content
	if t == nil || len(t.Lines) == 0 {
		p := body.CreateElement("a:p")
		r := p.CreateElement("a:r")
		r.CreateElement("a:rPr").CreateAttr("sz", "1000")
		r.CreateElement("a:t").SetText(" ")
		return
	}

	for _, line := range t.Lines {
		p := body.CreateElement("a:p")
		pPr := p.CreateElement("a:pPr")
		pPr.CreateAttr("algn", "ctr")
		if rightToLeft(line) {
			pPr.CreateAttr("rtl", "1")
		}

		text := line
		if text == "" {
			text = " "
		}
		r := p.CreateElement("a:r")
		rPr := r.CreateElement("a:rPr")
		rPr.CreateAttr("sz", strconv.Itoa(t.SizePt*100))
		if t.Bold {
			rPr.CreateAttr("b", "1")
		}
		solidFill(rPr, t.Color, 1)
		rPr.CreateElement("a:latin").CreateAttr("typeface", t.Family)
		r.CreateElement("a:t").SetText(text)
	}
}

// connector emits a plain line shape with explicit custom geometry. Auto
// binding connectors reroute when the user drags a shape, a custGeom line
// stays where the layout put it.
func (w *slideWriter) connector(c *layout.Connector) {
	x0, y0 := canvas.EMU(c.From.X), canvas.EMU(c.From.Y)
	x1, y1 := canvas.EMU(c.To.X), canvas.EMU(c.To.Y)

	offX, offY := min(x0, x1), min(y0, y1)
	cx, cy := abs64(x1-x0), abs64(y1-y0)
	if cx < 1 {
		cx = 1
	}
	if cy < 1 {
		cy = 1
	}

	sp := w.tree.CreateElement("p:sp")

	nv := sp.CreateElement("p:nvSpPr")
	cNvPr := nv.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", w.id())
	cNvPr.CreateAttr("name", c.ID)
	nv.CreateElement("p:cNvSpPr")
	nv.CreateElement("p:nvPr")

	spPr := sp.CreateElement("p:spPr")
	xf := spPr.CreateElement("a:xfrm")
	off := xf.CreateElement("a:off")
	off.CreateAttr("x", strconv.FormatInt(offX, 10))
	off.CreateAttr("y", strconv.FormatInt(offY, 10))
	ext := xf.CreateElement("a:ext")
	ext.CreateAttr("cx", strconv.FormatInt(cx, 10))
	ext.CreateAttr("cy", strconv.FormatInt(cy, 10))

	geom := spPr.CreateElement("a:custGeom")
	geom.CreateElement("a:avLst")
	geom.CreateElement("a:gdLst")
	geom.CreateElement("a:ahLst")
	geom.CreateElement("a:cxnLst")
	rect := geom.CreateElement("a:rect")
	for _, side := range []string{"l", "t", "r", "b"} {
		rect.CreateAttr(side, "0")
	}
	path := geom.CreateElement("a:pathLst").CreateElement("a:path")
	path.CreateAttr("w", strconv.FormatInt(cx, 10))
	path.CreateAttr("h", strconv.FormatInt(cy, 10))
	moveTo := path.CreateElement("a:moveTo").CreateElement("a:pt")
	moveTo.CreateAttr("x", strconv.FormatInt(x0-offX, 10))
	moveTo.CreateAttr("y", strconv.FormatInt(y0-offY, 10))
	lnTo := path.CreateElement("a:lnTo").CreateElement("a:pt")
	lnTo.CreateAttr("x", strconv.FormatInt(x1-offX, 10))
	lnTo.CreateAttr("y", strconv.FormatInt(y1-offY, 10))

	ln := spPr.CreateElement("a:ln")
	ln.CreateAttr("w", strconv.FormatInt(canvas.PointsEMU(c.StrokeWidthPt), 10))
	solidFill(ln, c.Color, 1)
	if c.Style == brief.ConnectorStyleDashed {
		ln.CreateElement("a:prstDash").CreateAttr("val", "dash")
	}
	if c.Style != brief.ConnectorStylePlain {
		arrow(ln, "a:tailEnd")
		if c.Style == brief.ConnectorStyleBidirectional {
			arrow(ln, "a:headEnd")
		}
	}

	body := sp.CreateElement("p:txBody")
	body.CreateElement("a:bodyPr")
	body.CreateElement("a:lstStyle")
	body.CreateElement("a:p")

	if c.Label != nil {
		mid := c.Midpoint()
		w.textBox(&layout.Element{
			ID:   c.ID + "_label",
			Kind: layout.ElementKindLabel,
			Rect: canvas.Rect{
				X: mid.X - labelBoxWidth/2,
				Y: mid.Y - labelBoxHeight/2,
				W: labelBoxWidth,
				H: labelBoxHeight,
			},
			Fill:    layout.Transparent,
			Text:    c.Label,
			Opacity: 1,
			VCenter: true,
		})
	}
}

func arrow(ln *etree.Element, tag string) {
	e := ln.CreateElement(tag)
	e.CreateAttr("type", "triangle")
	e.CreateAttr("w", "med")
	e.CreateAttr("len", "med")
}

func xfrm(spPr *etree.Element, r canvas.Rect) {
	x := spPr.CreateElement("a:xfrm")
	off := x.CreateElement("a:off")
	off.CreateAttr("x", strconv.FormatInt(canvas.EMU(r.X), 10))
	off.CreateAttr("y", strconv.FormatInt(canvas.EMU(r.Y), 10))
	ext := x.CreateElement("a:ext")
	ext.CreateAttr("cx", strconv.FormatInt(canvas.EMU(r.W), 10))
	ext.CreateAttr("cy", strconv.FormatInt(canvas.EMU(r.H), 10))
}

// solidFill appends an a:solidFill with the given hex color. Opacity below
// one adds an alpha child in thousandths of a percent.
func solidFill(parent *etree.Element, hex string, opacity float64) {
	clr := parent.CreateElement("a:solidFill").CreateElement("a:srgbClr")
	clr.CreateAttr("val", strings.ToUpper(strings.TrimPrefix(hex, "#")))
	if opacity < 1 {
		clr.CreateElement("a:alpha").CreateAttr("val", strconv.Itoa(int(opacity*100000+0.5)))
	}
}

// rightToLeft reports whether a line holds Hebrew or Arabic text, checking
// the main blocks and the Arabic presentation forms.
func rightToLeft(s string) bool {
	for _, r := range s {
		switch {
		case r >= 0x0590 && r <= 0x05ff, // Hebrew
			r >= 0x0600 && r <= 0x06ff, // Arabic
			r >= 0x0750 && r <= 0x077f, // Arabic Supplement
			r >= 0x08a0 && r <= 0x08ff, // Arabic Extended-A
			r >= 0xfb50 && r <= 0xfdff, // Arabic Presentation Forms-A
			r >= 0xfe70 && r <= 0xfeff: // Arabic Presentation Forms-B
			return true
		}
	}
	return false
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
