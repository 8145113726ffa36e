package layout

import (
	"fmt"
	"math"

	"infogen/brief"
	"infogen/canvas"
	"infogen/common"
)

// Org chart: tree levels top to bottom, children centered beneath their
// parent, wired with three-segment elbow connectors.
const (
	orgNodeW      = 1.8
	orgNodeH      = 0.6
	orgLevelGap   = 0.8
	orgSiblingGap = 0.3
	orgCorner     = 0.06
)

func solveOrgChart(b *brief.Brief, c *composer, l *Layout) {
	box := c.box(l)
	if len(b.Entities) == 0 {
		return
	}

	root, children := orgTree(b)

	nodeW, sibGap := orgNodeW, orgSiblingGap
	span := orgSpan(root, children, nodeW, sibGap)
	if span > box.W {
		s := box.W / span
		nodeW *= s
		sibGap *= s
		span = orgSpan(root, children, nodeW, sibGap)
	}

	placed := make(map[string]bool, len(b.Entities))
	c.placeOrgNode(l, root, children, placed, box.X+(box.W-span)/2, box.Y, 0, nodeW, sibGap)

	if unplaced := len(b.Entities) - len(placed); unplaced > 0 {
		c.warns.Add(common.WarnRefPruned, "%d entities are not reachable from %q and were dropped", unplaced, root.ID)
	}
}

// orgTree derives the hierarchy from entity groups: an entity's group names
// its manager. The root is the first entity without a valid manager.
func orgTree(b *brief.Brief) (*brief.Entity, map[string][]*brief.Entity) {
	root := &b.Entities[0]
	for i := range b.Entities {
		e := &b.Entities[i]
		if e.Group == "" || e.Group == e.ID || b.Entity(e.Group) == nil {
			root = e
			break
		}
	}

	children := make(map[string][]*brief.Entity)
	for i := range b.Entities {
		e := &b.Entities[i]
		if e == root || e.Group == "" || e.Group == e.ID || b.Entity(e.Group) == nil {
			continue
		}
		children[e.Group] = append(children[e.Group], e)
	}
	return root, children
}

// orgSpan is the horizontal footprint of a subtree: a leaf takes one node
// width, an inner node the wider of itself and its children side by side.
func orgSpan(e *brief.Entity, children map[string][]*brief.Entity, nodeW, sibGap float64) float64 {
	kids := children[e.ID]
	if len(kids) == 0 {
		return nodeW
	}
	w := float64(len(kids)-1) * sibGap
	for _, kid := range kids {
		w += orgSpan(kid, children, nodeW, sibGap)
	}
	return math.Max(nodeW, w)
}

func (c *composer) placeOrgNode(l *Layout, e *brief.Entity, children map[string][]*brief.Entity,
	placed map[string]bool, left, y float64, level int, nodeW, sibGap float64) {
	if placed[e.ID] {
		return
	}
	placed[e.ID] = true

	span := orgSpan(e, children, nodeW, sibGap)
	r := canvas.Rect{X: left + (span-nodeW)/2, Y: y, W: nodeW, H: orgNodeH}

	fill := c.st.fill(e, level)
	mt := c.fit(e.ID, e.Label, nodeW-0.15, 7, canvas.BlockMinFontSizePt, true, 2)
	l.Elements = append(l.Elements, Element{
		ID:            e.ID,
		Kind:          ElementKindBlock,
		Rect:          r,
		Fill:          fill,
		Stroke:        c.st.border(),
		StrokeWidthPt: 1,
		CornerRadius:  orgCorner,
		Text:          c.text(mt, true, c.st.textOn(fill)),
		Opacity:       1,
		LayerID:       e.Group,
		ZOrder:        10 + level,
		VCenter:       true,
	})

	kids := children[e.ID]
	if len(kids) == 0 {
		return
	}

	childY := y + orgNodeH + orgLevelGap
	kidsW := float64(len(kids)-1) * sibGap
	for _, kid := range kids {
		kidsW += orgSpan(kid, children, nodeW, sibGap)
	}

	kidLeft := left + (span-kidsW)/2
	centers := make([]float64, 0, len(kids))
	for _, kid := range kids {
		kidSpan := orgSpan(kid, children, nodeW, sibGap)
		centers = append(centers, kidLeft+kidSpan/2)
		c.placeOrgNode(l, kid, children, placed, kidLeft, childY, level+1, nodeW, sibGap)
		kidLeft += kidSpan + sibGap
	}

	c.orgElbows(l, e.ID, r, childY, centers)
}

// orgElbows draws the parent-to-children wiring: a drop from the parent, a
// rail across the sibling centers and a riser up to each child.
func (c *composer) orgElbows(l *Layout, parentID string, parent canvas.Rect, childY float64, centers []float64) {
	midY := parent.Bottom() + orgLevelGap/2
	pCX := parent.CenterX()

	line := func(id string, from, to Point) Connector {
		return Connector{
			ID:            id,
			From:          from,
			To:            to,
			Style:         brief.ConnectorStylePlain,
			Color:         c.st.connector(),
			StrokeWidthPt: canvas.ConnectorStrokePt,
		}
	}

	l.Connectors = append(l.Connectors, line(
		fmt.Sprintf("conn_%s_drop", parentID),
		Point{X: pCX, Y: parent.Bottom() + canvas.ConnectorInset},
		Point{X: pCX, Y: midY},
	))

	lo, hi := pCX, pCX
	for _, cx := range centers {
		lo = math.Min(lo, cx)
		hi = math.Max(hi, cx)
	}
	if hi-lo > 0.01 {
		l.Connectors = append(l.Connectors, line(
			fmt.Sprintf("conn_%s_rail", parentID),
			Point{X: lo, Y: midY},
			Point{X: hi, Y: midY},
		))
	}

	for i, cx := range centers {
		l.Connectors = append(l.Connectors, line(
			fmt.Sprintf("conn_%s_%d", parentID, i),
			Point{X: cx, Y: midY},
			Point{X: cx, Y: childY - canvas.ConnectorInset},
		))
	}
}
