package layout

import (
	"fmt"
	"math"

	"infogen/brief"
	"infogen/canvas"
)

// Timeline: a horizontal axis across the vertical midpoint with equally
// spaced markers, event cards alternating above and below, and date labels
// mirrored on the opposite side of the axis.
const (
	axisThickness  = 0.06
	axisOverhang   = 0.3
	markerRadius   = 0.12
	eventGutter    = canvas.GutterH * 1.5
	eventWidth     = 1.8
	eventHeight    = 0.8
	stemClearance  = 0.15
	dateLabelW     = 1.0
	dateLabelH     = 0.3
	dateOffset     = 0.25
	dateFontSizePt = 10
)

func solveTimeline(b *brief.Brief, c *composer, l *Layout) {
	box := c.box(l)
	n := len(b.Entities)
	if n == 0 {
		return
	}

	axisY := box.CenterY()
	w := math.Min(eventWidth, (box.W-float64(n-1)*eventGutter)/float64(n))
	startX := rowStart(box, n, w, eventGutter)

	total := float64(n)*w + float64(n-1)*eventGutter
	l.Elements = append(l.Elements, Element{
		ID:      "timeline_axis",
		Kind:    ElementKindBand,
		Rect:    canvas.Rect{X: startX - axisOverhang, Y: axisY - axisThickness/2, W: total + 2*axisOverhang, H: axisThickness},
		Fill:    c.st.border(),
		Opacity: 1,
		ZOrder:  -1,
	})

	for i := range b.Entities {
		e := &b.Entities[i]
		cx := startX + float64(i)*(w+eventGutter) + w/2
		above := i%2 == 0

		l.Elements = append(l.Elements, Element{
			ID:            fmt.Sprintf("marker_%d", i),
			Kind:          ElementKindBlock,
			Rect:          canvas.Rect{X: cx - markerRadius, Y: axisY - markerRadius, W: 2 * markerRadius, H: 2 * markerRadius},
			Fill:          c.b.Theme.Primary,
			Stroke:        c.b.Theme.Background,
			StrokeWidthPt: 2,
			CornerRadius:  markerRadius,
			Opacity:       1,
			ZOrder:        15,
		})

		var eventY float64
		if above {
			eventY = axisY - markerRadius - stemClearance - eventHeight
		} else {
			eventY = axisY + markerRadius + stemClearance
		}
		fill := c.st.fill(e, i)
		mt := c.fit(e.ID, e.Label, w, 9, 12, false, 3)
		l.Elements = append(l.Elements, Element{
			ID:            e.ID,
			Kind:          ElementKindBlock,
			Rect:          canvas.Rect{X: cx - w/2, Y: eventY, W: w, H: eventHeight},
			Fill:          fill,
			Stroke:        c.st.border(),
			StrokeWidthPt: 1,
			CornerRadius:  c.b.Theme.CornerRadius,
			Text:          c.text(mt, false, c.st.textOn(fill)),
			Opacity:       1,
			LayerID:       e.Group,
			ZOrder:        10,
			VCenter:       true,
		})

		stem := Connector{
			ID:            fmt.Sprintf("conn_%d", i),
			Style:         brief.ConnectorStylePlain,
			Color:         c.st.border(),
			StrokeWidthPt: 1,
		}
		if above {
			stem.From = Point{X: cx, Y: axisY - markerRadius}
			stem.To = Point{X: cx, Y: eventY + eventHeight}
		} else {
			stem.From = Point{X: cx, Y: axisY + markerRadius}
			stem.To = Point{X: cx, Y: eventY}
		}
		l.Connectors = append(l.Connectors, stem)

		if e.Description != "" {
			dateY := axisY + dateOffset - dateLabelH/2
			if !above {
				dateY = axisY - dateOffset - dateLabelH/2
			}
			dmt := c.fit(fmt.Sprintf("date_%d", i), e.Description, dateLabelW,
				dateFontSizePt, dateFontSizePt, false, 1)
			l.Elements = append(l.Elements, Element{
				ID:      fmt.Sprintf("date_%d", i),
				Kind:    ElementKindLabel,
				Rect:    canvas.Rect{X: cx - dateLabelW/2, Y: dateY, W: dateLabelW, H: dateLabelH},
				Fill:    Transparent,
				Text:    c.text(dmt, false, canvas.SubtitleText),
				Opacity: 1,
				ZOrder:  5,
				VCenter: true,
			})
		}
	}
}
