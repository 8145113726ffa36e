// Package canvas holds the fixed slide geometry shared by the layout engine
// and the renderers. All internal geometry is double precision inches,
// conversion to output units happens exactly once at the renderer boundary.
package canvas

import "math"

// Output unit conversions.
const (
	EMUPerInch    = 914400
	EMUPerPoint   = 12700
	PixelsPerInch = 96
)

// Slide geometry, inches, 16:9.
const (
	SlideWidth  = 13.333
	SlideHeight = 7.5

	MarginTop    = 0.8
	MarginBottom = 0.5
	MarginLeft   = 0.6
	MarginRight  = 0.6

	TitleHeight    = 0.9
	SubtitleHeight = 0.4

	// Gutters between blocks and between rows.
	GutterH = 0.25
	GutterV = 0.2

	MinBlockWidth  = 1.5
	MaxBlockWidth  = 3.5
	MinBlockHeight = 0.7
	MaxBlockHeight = 1.8

	CrossCutHeight = 0.6

	// Gap between a connector endpoint and the shape edge it points at.
	ConnectorInset    = 0.1
	ConnectorStrokePt = 1.5

	TextPaddingH = 0.15
	TextPaddingV = 0.08

	DefaultCornerRadius = 0.08
)

// Content area, everything below the title band.
const (
	ContentLeft   = MarginLeft
	ContentTop    = MarginTop + TitleHeight
	ContentWidth  = SlideWidth - MarginLeft - MarginRight
	ContentHeight = SlideHeight - MarginTop - TitleHeight - MarginBottom
)

// Typography defaults, points.
const (
	DefaultFontFamily  = "Calibri"
	FallbackFontFamily = "DejaVu Sans"

	TitleFontSizePt       = 28
	TitleMinFontSizePt    = 18
	SubtitleFontSizePt    = 16
	SubtitleMinFontSizePt = 12
	BlockFontSizePt       = 14
	BlockMinFontSizePt    = 10
	BlockMaxFontSizePt    = 24
)

// Color defaults, six hex digits lowercase without the hash.
const (
	DefaultBackground = "ffffff"
	DefaultText       = "333333"
	SubtitleText      = "666666"
	DefaultPrimary    = "0073e6"
	DefaultSecondary  = "00a3e0"
	DefaultAccent     = "6cc24a"
	DefaultQuaternary = "ffb81c"
	DefaultBorder     = "cccccc"
	DefaultConnector  = "666666"
)

// EMU converts inches to English Metric Units rounding to the nearest unit.
func EMU(inches float64) int64 {
	return int64(math.Round(inches * EMUPerInch))
}

// PointsEMU converts points to English Metric Units rounding to the nearest
// unit.
func PointsEMU(pt float64) int64 {
	return int64(math.Round(pt * EMUPerPoint))
}

// Pixels converts inches to CSS pixels at 96 DPI.
func Pixels(inches float64) float64 {
	return inches * PixelsPerInch
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Rect is an axis-aligned rectangle in inches from the slide origin.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Intersects reports whether two rectangles overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Inside reports whether r lies fully within o.
func (r Rect) Inside(o Rect) bool {
	return r.X >= o.X && r.Y >= o.Y && r.Right() <= o.Right() && r.Bottom() <= o.Bottom()
}

// SafeArea is the region elements must stay inside after placement.
func SafeArea() Rect {
	return Rect{
		X: MarginLeft,
		Y: MarginTop,
		W: SlideWidth - MarginLeft - MarginRight,
		H: SlideHeight - MarginTop - MarginBottom,
	}
}

// Content is the area available to archetype solvers below the title band.
func Content() Rect {
	return Rect{X: ContentLeft, Y: ContentTop, W: ContentWidth, H: ContentHeight}
}
