package layout

import (
	"fmt"
	"math"
	"strings"

	"infogen/brief"
	"infogen/canvas"
	"infogen/common"
)

// Comparison table: one column per option, one row per criterion, with a
// smaller header row and an optional criteria label column on the left.
const (
	comparisonHeaderH  = 0.5
	comparisonColGap   = canvas.GutterH * 1.5
	comparisonRowGap   = 0.1
	comparisonLabelW   = 1.5
	comparisonMinRowH  = 0.4
	comparisonMaxRowH  = 1.2
	comparisonRowTint  = 0.45
	comparisonHeaderPt = 16
	comparisonCellPt   = 12
)

type comparisonColumn struct {
	id      string
	label   string
	entity  *brief.Entity
	members []brief.Entity
}

func solveComparison(b *brief.Brief, c *composer, l *Layout) {
	box := c.box(l)

	cols := comparisonColumns(b)
	if len(cols) == 0 {
		return
	}
	criteria := comparisonCriteria(cols)

	rows := len(criteria)
	if rows == 0 {
		for _, col := range cols {
			rows = max(rows, len(col.members))
		}
	}

	labeled := len(criteria) > 0
	labelW := 0.0
	gutters := float64(len(cols)-1) * comparisonColGap
	if labeled {
		labelW = comparisonLabelW
		gutters += comparisonColGap
	}
	colW := math.Min((box.W-labelW-gutters)/float64(len(cols)), canvas.MaxBlockWidth)

	rowH := comparisonMaxRowH
	if rows > 0 {
		rowH = canvas.Clamp(
			(box.H-comparisonHeaderH-comparisonRowGap-float64(rows-1)*comparisonRowGap)/float64(rows),
			comparisonMinRowH, comparisonMaxRowH)
	}

	tableW := labelW + gutters + float64(len(cols))*colW
	tableH := comparisonHeaderH
	if rows > 0 {
		tableH += comparisonRowGap + float64(rows)*rowH + float64(rows-1)*comparisonRowGap
	}
	startX := box.X + (box.W-tableW)/2
	startY := box.Y + (box.H-tableH)/2

	colX := func(j int) float64 {
		x := startX
		if labeled {
			x += labelW + comparisonColGap
		}
		return x + float64(j)*(colW+comparisonColGap)
	}
	rowY := func(i int) float64 {
		return startY + comparisonHeaderH + comparisonRowGap + float64(i)*(rowH+comparisonRowGap)
	}

	for j, col := range cols {
		l.Elements = append(l.Elements, c.comparisonHeader(col, j,
			canvas.Rect{X: colX(j), Y: startY, W: colW, H: comparisonHeaderH}))
	}

	for i := 0; i < rows; i++ {
		if labeled {
			l.Elements = append(l.Elements, c.criterionLabel(i, criteria[i],
				canvas.Rect{X: startX, Y: rowY(i), W: labelW, H: rowH}))
		}
		for j, col := range cols {
			e := cellEntity(col, criteria, i)
			if e == nil {
				continue
			}
			l.Elements = append(l.Elements, c.comparisonCell(e, i,
				canvas.Rect{X: colX(j), Y: rowY(i), W: colW, H: rowH}))
		}
	}

	c.connectAll(l)
}

// comparisonColumns derives the options: layers with members when the brief
// has them, otherwise every entity stands as its own header-only column.
func comparisonColumns(b *brief.Brief) []comparisonColumn {
	var cols []comparisonColumn
	for _, layer := range b.Layers {
		members := b.Members(layer)
		if len(members) == 0 {
			continue
		}
		cols = append(cols, comparisonColumn{id: layer.ID, label: layer.Label, members: members})
	}
	if len(cols) > 0 {
		return cols
	}
	for i := range b.Entities {
		e := &b.Entities[i]
		cols = append(cols, comparisonColumn{id: e.ID, label: e.Label, entity: e})
	}
	return cols
}

// comparisonCriteria returns the shared row labels in first-seen order, or
// nil when members carry no criterion grouping and rows align positionally.
func comparisonCriteria(cols []comparisonColumn) []string {
	var criteria []string
	seen := make(map[string]bool)
	for _, col := range cols {
		for _, e := range col.members {
			if e.Group == "" || e.Group == col.id {
				return nil
			}
			if !seen[e.Group] {
				seen[e.Group] = true
				criteria = append(criteria, e.Group)
			}
		}
	}
	return criteria
}

func cellEntity(col comparisonColumn, criteria []string, row int) *brief.Entity {
	if len(criteria) > 0 {
		for i := range col.members {
			if col.members[i].Group == criteria[row] {
				return &col.members[i]
			}
		}
		return nil
	}
	if row < len(col.members) {
		return &col.members[row]
	}
	return nil
}

// comparisonHeader styles a column header. A label naming a recommended
// option gets the primary color and pops above its neighbors.
func (c *composer) comparisonHeader(col comparisonColumn, j int, r canvas.Rect) Element {
	id := "header_" + col.id
	layerID := col.id
	fill := c.st.colorAt(j)
	z := 10
	if col.entity != nil {
		id = col.entity.ID
		layerID = col.entity.Group
		fill = c.st.fill(col.entity, j)
	}
	if strings.Contains(strings.ToLower(col.label), "recommended") {
		fill = c.b.Theme.Primary
		z = 20
	}
	mt := c.fit(id, col.label, r.W, 11, comparisonHeaderPt, true, 2)
	return Element{
		ID:           id,
		Kind:         ElementKindBlock,
		Rect:         r,
		Fill:         fill,
		CornerRadius: c.b.Theme.CornerRadius,
		Text:         c.text(mt, true, c.st.textOn(fill)),
		Opacity:      1,
		LayerID:      layerID,
		ZOrder:       z,
		VCenter:      true,
	}
}

func (c *composer) criterionLabel(i int, label string, r canvas.Rect) Element {
	id := fmt.Sprintf("criterion_%d", i)
	mt := c.fit(id, label, r.W, 9, comparisonCellPt, true, 2)
	return Element{
		ID:      id,
		Kind:    ElementKindLabel,
		Rect:    r,
		Fill:    Transparent,
		Text:    c.text(mt, true, canvas.SubtitleText),
		Opacity: 1,
		ZOrder:  20,
		VCenter: true,
	}
}

// comparisonCell renders one table cell. Rows alternate between a subtle
// primary tint and the plain background; explicit emphasis overrides both.
func (c *composer) comparisonCell(e *brief.Entity, row int, r canvas.Rect) Element {
	fill := c.b.Theme.Background
	if row%2 == 0 {
		fill = common.Tint(c.b.Theme.Primary, comparisonRowTint)
	}
	if e.Emphasis != brief.EmphasisNormal {
		fill = c.st.fill(e, row)
	}
	mt := c.fit(e.ID, e.Label, r.W, 9, comparisonCellPt, false, 2)
	return Element{
		ID:            e.ID,
		Kind:          ElementKindBlock,
		Rect:          r,
		Fill:          fill,
		Stroke:        c.st.border(),
		StrokeWidthPt: 1,
		CornerRadius:  c.b.Theme.CornerRadius,
		Text:          c.text(mt, false, c.st.textOn(fill)),
		Opacity:       1,
		LayerID:       e.Group,
		ZOrder:        5,
		VCenter:       true,
	}
}
