package layout

import (
	"infogen/brief"
	"infogen/canvas"
)

// Tech stack: one full-width row per entity, built from the bottom edge
// upward so the first entity (the foundation) sits at the bottom.
const stackInset = canvas.GutterH

func solveTechStack(b *brief.Brief, c *composer, l *Layout) {
	box := c.box(l)
	n := len(b.Entities)
	if n == 0 {
		return
	}

	w := box.W - 2*stackInset
	rowH := canvas.Clamp((box.H-float64(n-1)*canvas.GutterV)/float64(n),
		canvas.MinBlockHeight, canvas.MaxBlockHeight)

	total := float64(n)*rowH + float64(n-1)*canvas.GutterV
	y := box.Y + (box.H+total)/2

	for i := range b.Entities {
		y -= rowH
		mt, _ := c.sizeBlock(&b.Entities[i], w)
		r := canvas.Rect{X: box.X + stackInset, Y: y, W: w, H: rowH}
		l.Elements = append(l.Elements, c.blockAt(&b.Entities[i], mt, i, r, 10))
		y -= canvas.GutterV
	}

	c.connectAll(l)
}
