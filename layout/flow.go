package layout

import (
	"fmt"
	"math"

	"infogen/brief"
	"infogen/canvas"
	"infogen/measure"
)

// Process flow: steps left to right, wrapping into a U-turn when more than
// six steps would make the single row unreadable.
const (
	flowGutter = canvas.GutterH * 2
	flowRowGap = canvas.GutterV * 2
	flowWrap   = 6
	flowMaxW   = 2.5
)

func solveProcessFlow(b *brief.Brief, c *composer, l *Layout) {
	box := c.box(l)
	n := len(b.Entities)
	if n == 0 {
		return
	}

	cols := n
	if n > flowWrap {
		cols = (n + 1) / 2
	}

	w := (box.W - float64(cols-1)*flowGutter) / float64(cols)
	w = canvas.Clamp(w, canvas.MinBlockWidth, flowMaxW)

	h := 0.0
	fits := make([]measure.MeasuredText, n)
	for i := range b.Entities {
		mt, bh := c.sizeBlock(&b.Entities[i], w)
		fits[i] = mt
		h = math.Max(h, bh)
	}

	xAt := func(col int) float64 {
		return rowStart(box, cols, w, flowGutter) + float64(col)*(w+flowGutter)
	}

	if n <= flowWrap {
		y := box.Y + (box.H-h)/2
		for i := range b.Entities {
			r := canvas.Rect{X: xAt(i), Y: y, W: w, H: h}
			l.Elements = append(l.Elements, c.blockAt(&b.Entities[i], fits[i], i, r, 10))
		}
	} else {
		topY := box.Y + (box.H-(2*h+flowRowGap))/2
		bottomY := topY + h + flowRowGap
		for i := range b.Entities {
			var r canvas.Rect
			if i < cols {
				r = canvas.Rect{X: xAt(i), Y: topY, W: w, H: h}
			} else {
				// Bottom row runs right to left so the flow reads as one
				// continuous path.
				r = canvas.Rect{X: xAt(cols - 1 - (i - cols)), Y: bottomY, W: w, H: h}
			}
			l.Elements = append(l.Elements, c.blockAt(&b.Entities[i], fits[i], i, r, 10))
		}
	}

	if len(b.Connections) > 0 {
		c.connectAll(l)
		return
	}
	for i := 0; i < n-1; i++ {
		conn := brief.Connection{
			FromID: b.Entities[i].ID,
			ToID:   b.Entities[i+1].ID,
			Style:  brief.ConnectorStyleArrow,
		}
		from, to := l.Element(conn.FromID), l.Element(conn.ToID)
		l.Connectors = append(l.Connectors, c.connect(fmt.Sprintf("connector_%d", i), conn, from, to))
	}
}
