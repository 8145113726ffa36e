package layout

import (
	"infogen/brief"
	"infogen/canvas"
)

// Value chain: one row of stages whose tips overlap so the chain reads as a
// single arrow. Earlier stages stack above later ones.
const (
	chevronHeight  = 1.0
	chevronMinW    = 1.5
	chevronMaxW    = 2.5
	chevronOverlap = 0.1
	chevronPointer = 0.15
)

func solveValueChain(b *brief.Brief, c *composer, l *Layout) {
	box := c.box(l)
	n := len(b.Entities)
	if n == 0 {
		return
	}

	// n blocks overlapping by a tenth of their width span w·(n − 0.1·(n−1)).
	run := float64(n) - chevronOverlap*float64(n-1)
	w := canvas.Clamp(box.W/run, chevronMinW, chevronMaxW)
	ov := chevronOverlap * w

	total := w * run
	x := box.X + (box.W-total)/2
	y := box.Y + (box.H-chevronHeight)/2

	textW := w*(1-2*chevronPointer) - 0.2

	for i := range b.Entities {
		e := &b.Entities[i]
		fill := c.st.fill(e, i)
		mt := c.fit(e.ID, e.Label, textW, 9, 12, true, 2)
		l.Elements = append(l.Elements, Element{
			ID:            e.ID,
			Kind:          ElementKindBlock,
			Rect:          canvas.Rect{X: x, Y: y, W: w, H: chevronHeight},
			Fill:          fill,
			Stroke:        c.st.border(),
			StrokeWidthPt: 1,
			CornerRadius:  0.1,
			Text:          c.text(mt, true, c.st.textOn(fill)),
			Opacity:       1,
			LayerID:       e.Group,
			ZOrder:        n - i,
			VCenter:       true,
		})
		x += w - ov
	}
}
