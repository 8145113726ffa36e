package layout

import (
	"math"

	"infogen/brief"
	"infogen/canvas"
	"infogen/common"
	"infogen/measure"
)

// SolverVersion participates in artifact addressing. Bump it whenever any
// solver changes placement math, so outputs cached under the old geometry
// stop being referenced.
const SolverVersion = 1

// Solver turns a normalized brief into a positioned layout for one
// archetype. Solvers place into the content area and may overflow it;
// Solve scales the result back inside afterwards.
type Solver func(b *brief.Brief, c *composer, l *Layout)

var solvers = map[brief.DiagramType]Solver{
	brief.DiagramTypeMarketecture: solveMarketecture,
	brief.DiagramTypeProcessFlow:  solveProcessFlow,
	brief.DiagramTypeTechStack:    solveTechStack,
	brief.DiagramTypeComparison:   solveComparison,
	brief.DiagramTypeTimeline:     solveTimeline,
	brief.DiagramTypeHubSpoke:     solveHubSpoke,
	brief.DiagramTypeOrgStructure: solveOrgChart,
	brief.DiagramTypeValueChain:   solveValueChain,
}

// Solve positions every element of the brief deterministically. Unknown
// diagram types fall back to the marketecture solver. The returned warnings
// carry truncations, overflows and any uniform scaling applied.
func Solve(b *brief.Brief, m *measure.Measurer) (*Layout, common.Warnings) {
	var warns common.Warnings

	solver, ok := solvers[b.DiagramType]
	if !ok {
		solver = solveMarketecture
	}

	c := newComposer(b, m, &warns)
	l := c.base()
	solver(b, c, l)
	fitToCanvas(l, &warns)
	return l, warns
}

// fitToCanvas scales placed content uniformly about its center when it
// spills outside the safe area, then shifts it fully inside. Font sizes are
// left alone, only geometry scales.
func fitToCanvas(l *Layout, warns *common.Warnings) {
	if len(l.Elements) == 0 {
		return
	}

	bounds := contentBounds(l)

	// Scaled content may use the full safe area below the title band.
	safe := canvas.SafeArea()
	limit := canvas.Rect{
		X: safe.X,
		Y: canvas.ContentTop,
		W: safe.W,
		H: safe.Bottom() - canvas.ContentTop,
	}

	scale := 1.0
	if bounds.W > limit.W {
		scale = limit.W / bounds.W
	}
	if bounds.H > limit.H {
		scale = math.Min(scale, limit.H/bounds.H)
	}

	if scale < 1 {
		scaleAbout(l, bounds, scale)
		warns.Add(common.WarnUniformScaling, "content scaled to %d%% to fit the slide", int(math.Round(scale*100)))
		bounds = contentBounds(l)
	}

	shiftInside(l, bounds, limit)
}

// contentBounds is the union of every solver-placed rect and connector
// endpoint. Title and subtitle are pinned and excluded.
func contentBounds(l *Layout) canvas.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	for _, e := range l.Elements {
		grow(e.Rect.X, e.Rect.Y)
		grow(e.Rect.Right(), e.Rect.Bottom())
	}
	for _, k := range l.Connectors {
		grow(k.From.X, k.From.Y)
		grow(k.To.X, k.To.Y)
	}
	return canvas.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

func scaleAbout(l *Layout, bounds canvas.Rect, scale float64) {
	cx, cy := bounds.CenterX(), bounds.CenterY()

	sx := func(x float64) float64 { return cx + (x-cx)*scale }
	sy := func(y float64) float64 { return cy + (y-cy)*scale }

	for i := range l.Elements {
		e := &l.Elements[i]
		e.Rect = canvas.Rect{
			X: sx(e.Rect.X),
			Y: sy(e.Rect.Y),
			W: e.Rect.W * scale,
			H: e.Rect.H * scale,
		}
		e.CornerRadius *= scale
	}
	for i := range l.Connectors {
		k := &l.Connectors[i]
		k.From = Point{X: sx(k.From.X), Y: sy(k.From.Y)}
		k.To = Point{X: sx(k.To.X), Y: sy(k.To.Y)}
	}
}

func shiftInside(l *Layout, bounds, limit canvas.Rect) {
	var dx, dy float64
	switch {
	case bounds.X < limit.X:
		dx = limit.X - bounds.X
	case bounds.Right() > limit.Right():
		dx = limit.Right() - bounds.Right()
	}
	switch {
	case bounds.Y < limit.Y:
		dy = limit.Y - bounds.Y
	case bounds.Bottom() > limit.Bottom():
		dy = limit.Bottom() - bounds.Bottom()
	}
	if dx == 0 && dy == 0 {
		return
	}

	for i := range l.Elements {
		l.Elements[i].Rect.X += dx
		l.Elements[i].Rect.Y += dy
	}
	for i := range l.Connectors {
		l.Connectors[i].From.X += dx
		l.Connectors[i].From.Y += dy
		l.Connectors[i].To.X += dx
		l.Connectors[i].To.Y += dy
	}
}
