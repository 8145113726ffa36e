package layout

import (
	"fmt"
	"math"

	"infogen/brief"
	"infogen/canvas"
)

// Hub and spoke: the first entity anchors the content center, the rest
// orbit it clockwise from the top on a circle sized to the content area.
const (
	hubSize    = 1.5
	spokeSize  = 1.2
	orbitRatio = 0.35
)

func solveHubSpoke(b *brief.Brief, c *composer, l *Layout) {
	box := c.box(l)
	if len(b.Entities) == 0 {
		return
	}

	hub := &b.Entities[0]
	spokes := b.Entities[1:]
	cx, cy := box.CenterX(), box.CenterY()
	radius := orbitRatio * math.Min(box.W, box.H)

	hubFill := b.Theme.Primary
	if hub.Emphasis != brief.EmphasisNormal {
		hubFill = c.st.fill(hub, 0)
	}
	hubFit := c.fit(hub.ID, hub.Label, hubSize-0.3, 10, canvas.BlockFontSizePt, true, 2)
	l.Elements = append(l.Elements, Element{
		ID:            hub.ID,
		Kind:          ElementKindBlock,
		Rect:          canvas.Rect{X: cx - hubSize/2, Y: cy - hubSize/2, W: hubSize, H: hubSize},
		Fill:          hubFill,
		Stroke:        c.st.border(),
		StrokeWidthPt: 2,
		CornerRadius:  hubSize / 2,
		Text:          c.text(hubFit, true, c.st.textOn(hubFill)),
		Opacity:       1,
		LayerID:       hub.Group,
		ZOrder:        20,
		VCenter:       true,
	})

	for k := range spokes {
		e := &spokes[k]
		angle := 3*math.Pi/2 + 2*math.Pi*float64(k)/float64(len(spokes))
		ux, uy := math.Cos(angle), math.Sin(angle)
		sx, sy := cx+radius*ux, cy+radius*uy

		fill := c.st.fill(e, k+1)
		mt := c.fit(e.ID, e.Label, spokeSize-0.2, 9, 11, false, 2)
		l.Elements = append(l.Elements, Element{
			ID:            e.ID,
			Kind:          ElementKindBlock,
			Rect:          canvas.Rect{X: sx - spokeSize/2, Y: sy - spokeSize/2, W: spokeSize, H: spokeSize},
			Fill:          fill,
			Stroke:        c.st.border(),
			StrokeWidthPt: 1,
			CornerRadius:  spokeSize / 2,
			Text:          c.text(mt, false, c.st.textOn(fill)),
			Opacity:       1,
			LayerID:       e.Group,
			ZOrder:        10,
			VCenter:       true,
		})

		l.Connectors = append(l.Connectors, Connector{
			ID:            fmt.Sprintf("connector_%d", k),
			From:          Point{X: cx + ux*(hubSize/2+canvas.ConnectorInset), Y: cy + uy*(hubSize/2+canvas.ConnectorInset)},
			To:            Point{X: sx - ux*(spokeSize/2+canvas.ConnectorInset), Y: sy - uy*(spokeSize/2+canvas.ConnectorInset)},
			Style:         brief.ConnectorStylePlain,
			Color:         c.st.connector(),
			StrokeWidthPt: canvas.ConnectorStrokePt,
			FromID:        hub.ID,
			ToID:          e.ID,
		})
	}
}
