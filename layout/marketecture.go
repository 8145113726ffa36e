package layout

import (
	"math"
	"sort"

	"infogen/brief"
	"infogen/canvas"
	"infogen/measure"
)

// Marketecture strip layout. Cross-cutting layers become full-width bands
// above or below a main grid of one row per business-unit group.
const (
	layerRowGap    = canvas.GutterV * 1.5
	layerLabelArea = 1.2
	layerLabelW    = 1.1
)

type gridRow struct {
	layer   brief.Layer
	members []brief.Entity
	labeled bool
}

// solveMarketecture is also the fallback for unknown diagram types.
func solveMarketecture(b *brief.Brief, c *composer, l *Layout) {
	box := c.box(l)

	topBands, bottomBands := splitCrossCut(b)
	rows := mainRows(b)

	weights := 0.0
	strips := 0
	if len(topBands) > 0 {
		weights++
		strips++
	}
	if len(rows) > 0 {
		weights += 3
		strips++
	}
	if len(bottomBands) > 0 {
		weights++
		strips++
	}
	if strips == 0 {
		return
	}
	unit := (box.H - float64(strips-1)*canvas.GutterV) / weights

	// Cross-cutting layers share one palette sequence no matter which strip
	// they land in.
	bandIdx := make(map[string]int, len(topBands)+len(bottomBands))
	for i, layer := range b.CrossCutting() {
		bandIdx[layer.ID] = i
	}

	y := box.Y
	if len(topBands) > 0 {
		c.placeBands(l, topBands, bandIdx, canvas.Rect{X: box.X, Y: y, W: box.W, H: unit})
		y += unit + canvas.GutterV
	}
	if len(rows) > 0 {
		c.placeGrid(l, rows, canvas.Rect{X: box.X, Y: y, W: box.W, H: 3 * unit})
		y += 3*unit + canvas.GutterV
	}
	if len(bottomBands) > 0 {
		c.placeBands(l, bottomBands, bandIdx, canvas.Rect{X: box.X, Y: y, W: box.W, H: unit})
	}

	c.connectAll(l)
}

// splitCrossCut assigns each cross-cutting layer to the top or bottom strip
// by its position in the declaration order: anything declared before the
// first regular layer sits on top, the rest underneath.
func splitCrossCut(b *brief.Brief) (top, bottom []brief.Layer) {
	firstRegular := len(b.Layers)
	for i, layer := range b.Layers {
		if layer.Position != brief.LayerPositionCrossCutting {
			firstRegular = i
			break
		}
	}
	for i, layer := range b.Layers {
		if layer.Position != brief.LayerPositionCrossCutting {
			continue
		}
		if i < firstRegular {
			top = append(top, layer)
		} else {
			bottom = append(bottom, layer)
		}
	}
	return top, bottom
}

// mainRows derives the grid rows: one per non-empty regular layer ordered
// top to bottom, then one per group of entities that no layer claimed.
func mainRows(b *brief.Brief) []gridRow {
	var rows []gridRow

	claimed := make(map[string]bool)
	for _, layer := range b.Layers {
		for _, id := range layer.EntityIDs {
			claimed[id] = true
		}
	}

	for _, layer := range b.Layers {
		if layer.Position == brief.LayerPositionCrossCutting {
			continue
		}
		members := b.Members(layer)
		if len(members) == 0 {
			continue
		}
		rows = append(rows, gridRow{layer: layer, members: members, labeled: true})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].layer.Position < rows[j].layer.Position
	})

	groups := make(map[string]int)
	for _, e := range b.Entities {
		if claimed[e.ID] {
			continue
		}
		if idx, ok := groups[e.Group]; ok {
			rows[idx].members = append(rows[idx].members, e)
			continue
		}
		groups[e.Group] = len(rows)
		rows = append(rows, gridRow{layer: brief.Layer{ID: e.Group}, members: []brief.Entity{e}})
	}

	return rows
}

// placeBands stacks the strip's bands vertically, centered within the strip.
func (c *composer) placeBands(l *Layout, bands []brief.Layer, bandIdx map[string]int, strip canvas.Rect) {
	n := len(bands)
	h := math.Min(canvas.CrossCutHeight, (strip.H-float64(n-1)*canvas.GutterV)/float64(n))
	total := float64(n)*h + float64(n-1)*canvas.GutterV

	y := strip.Y + (strip.H-total)/2
	for _, layer := range bands {
		r := canvas.Rect{X: strip.X, Y: y, W: strip.W, H: h}
		l.Elements = append(l.Elements, c.band(layer, bandIdx[layer.ID], r))
		y += h + canvas.GutterV
	}
}

// placeGrid lays the main rows out within the middle strip. Row labels on
// the left appear only when there is more than one labeled layer to tell
// apart.
func (c *composer) placeGrid(l *Layout, rows []gridRow, strip canvas.Rect) {
	labeled := 0
	for _, row := range rows {
		if row.labeled {
			labeled++
		}
	}
	showLabels := labeled >= 2

	gridX, gridW := strip.X, strip.W
	if showLabels {
		gridX += layerLabelArea
		gridW -= layerLabelArea
	}

	k := len(rows)
	rowH := (strip.H - float64(k-1)*layerRowGap) / float64(k)

	y := strip.Y
	for rowIdx, row := range rows {
		n := len(row.members)
		w := math.Min((gridW-float64(n-1)*canvas.GutterH)/float64(n), canvas.MaxBlockWidth)

		blockH := 0.0
		fits := make([]measure.MeasuredText, n)
		for i := range row.members {
			mt, h := c.sizeBlock(&row.members[i], w)
			fits[i] = mt
			blockH = math.Max(blockH, h)
		}
		blockH = math.Min(blockH, rowH)

		blockY := y + (rowH-blockH)/2
		x := gridX + (gridW-(float64(n)*w+float64(n-1)*canvas.GutterH))/2
		for i := range row.members {
			r := canvas.Rect{X: x, Y: blockY, W: w, H: blockH}
			l.Elements = append(l.Elements, c.blockAt(&row.members[i], fits[i], rowIdx, r, 10+rowIdx))
			x += w + canvas.GutterH
		}

		if showLabels && row.labeled {
			labelRect := canvas.Rect{X: strip.X, Y: blockY, W: layerLabelW, H: blockH}
			l.Elements = append(l.Elements, c.layerLabel(row.layer, labelRect))
		}

		y += rowH + layerRowGap
	}
}
