package svg

import (
	"fmt"
	"strings"
	"testing"

	"github.com/beevik/etree"

	"infogen/brief"
	"infogen/canvas"
	"infogen/layout"
)

func testText(content string, sizePt int, bold bool, color string) *layout.Text {
	return &layout.Text{
		Content: content,
		Lines:   []string{content},
		SizePt:  sizePt,
		Family:  "Calibri",
		Bold:    bold,
		Color:   color,
	}
}

func testLayout() *layout.Layout {
	return &layout.Layout{
		Width:      canvas.SlideWidth,
		Height:     canvas.SlideHeight,
		Background: canvas.DefaultBackground,
		Title: &layout.Element{
			ID:      "title",
			Kind:    layout.ElementKindTitle,
			Rect:    canvas.Rect{X: 0.6, Y: 0.8, W: 12.133, H: 0.9},
			Fill:    layout.Transparent,
			Text:    testText("Platform Overview", 28, true, "333333"),
			Opacity: 1,
		},
		Elements: []layout.Element{
			{
				ID:      "layer_ai",
				Kind:    layout.ElementKindBand,
				Rect:    canvas.Rect{X: 0.6, Y: 2.0, W: 12.133, H: 0.6},
				Fill:    "6cc24a",
				Text:    testText("AI Layer", 12, true, "ffffff"),
				Opacity: 0.9,
				ZOrder:  -1,
				VCenter: true,
			},
			{
				ID:            "app",
				Kind:          layout.ElementKindBlock,
				Rect:          canvas.Rect{X: 1.0, Y: 3.0, W: 3.0, H: 1.0},
				Fill:          "0073e6",
				Stroke:        "cccccc",
				StrokeWidthPt: 1,
				CornerRadius:  0.08,
				Text:          testText("Application", 14, true, "ffffff"),
				Opacity:       1,
				ZOrder:        0,
				VCenter:       true,
			},
		},
		Connectors: []layout.Connector{
			{
				ID:            "conn_0",
				From:          layout.Point{X: 4.1, Y: 3.5},
				To:            layout.Point{X: 6.0, Y: 3.5},
				Style:         brief.ConnectorStyleArrow,
				Color:         "666666",
				StrokeWidthPt: 1.5,
			},
		},
	}
}

func renderDoc(t *testing.T, l *layout.Layout) *etree.Document {
	t.Helper()

	data, err := Render(l)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(string(data), `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("output does not start with the XML declaration")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("parse SVG: %v", err)
	}
	return doc
}

func findByID(t *testing.T, doc *etree.Document, id string) *etree.Element {
	t.Helper()

	e := doc.FindElement(fmt.Sprintf("//*[@id='%s']", id))
	if e == nil {
		t.Fatalf("no node with id %s", id)
	}
	return e
}

func TestRenderDocumentFrame(t *testing.T) {
	doc := renderDoc(t, testLayout())

	root := doc.SelectElement("svg")
	if root == nil {
		t.Fatal("missing svg root")
	}
	if got := root.SelectAttrValue("viewBox", ""); got != "0 0 1279.97 720.00" {
		t.Errorf("viewBox = %q, want %q", got, "0 0 1279.97 720.00")
	}
	if got := root.SelectAttrValue("width", ""); got != "1279.97" {
		t.Errorf("width = %q, want 1279.97", got)
	}
	if got := root.SelectAttrValue("xmlns", ""); got != "http://www.w3.org/2000/svg" {
		t.Errorf("xmlns = %q", got)
	}
}

func TestBlockRect(t *testing.T) {
	doc := renderDoc(t, testLayout())
	rect := findByID(t, doc, "app")

	if rect.Tag != "rect" {
		t.Fatalf("app rendered as <%s>, want <rect>", rect.Tag)
	}
	if got := rect.SelectAttrValue("data-kind", ""); got != "block" {
		t.Errorf("data-kind = %q, want block", got)
	}
	if got := rect.SelectAttrValue("x", ""); got != "96.00" {
		t.Errorf("x = %s, want 96.00", got)
	}
	if got := rect.SelectAttrValue("width", ""); got != "288.00" {
		t.Errorf("width = %s, want 288.00", got)
	}
	if got := rect.SelectAttrValue("rx", ""); got != "7.68" {
		t.Errorf("rx = %s, want 7.68", got)
	}

	style := rect.SelectAttrValue("style", "")
	if !strings.Contains(style, "fill:#0073e6") {
		t.Errorf("style %q missing fill", style)
	}
	if !strings.Contains(style, "stroke:#cccccc") {
		t.Errorf("style %q missing stroke", style)
	}
}

func TestBandOpacityAndNoStroke(t *testing.T) {
	doc := renderDoc(t, testLayout())
	band := findByID(t, doc, "layer_ai")

	style := band.SelectAttrValue("style", "")
	if !strings.Contains(style, "opacity:0.9") {
		t.Errorf("style %q missing opacity", style)
	}
	if strings.Contains(style, "stroke") {
		t.Errorf("band style %q should carry no stroke", style)
	}
	if band.SelectAttrValue("rx", "") != "" {
		t.Error("band should have square corners")
	}
}

func TestHubRendersAsEllipse(t *testing.T) {
	l := testLayout()
	l.Elements = append(l.Elements, layout.Element{
		ID:           "hub",
		Kind:         layout.ElementKindBlock,
		Rect:         canvas.Rect{X: 6.0, Y: 3.0, W: 1.5, H: 1.5},
		Fill:         "0073e6",
		CornerRadius: 0.75,
		Text:         testText("Hub", 14, true, "ffffff"),
		Opacity:      1,
		ZOrder:       20,
		VCenter:      true,
	})

	doc := renderDoc(t, l)
	hub := findByID(t, doc, "hub")
	if hub.Tag != "ellipse" {
		t.Fatalf("hub rendered as <%s>, want <ellipse>", hub.Tag)
	}
	if got := hub.SelectAttrValue("cx", ""); got != "648.00" {
		t.Errorf("cx = %s, want 648.00", got)
	}
	if got := hub.SelectAttrValue("rx", ""); got != "72.00" {
		t.Errorf("rx = %s, want 72.00", got)
	}
}

func TestTextNodesAndBaselines(t *testing.T) {
	doc := renderDoc(t, testLayout())

	var blockText *etree.Element
	for _, text := range doc.FindElements("//text") {
		if tspan := text.SelectElement("tspan"); tspan != nil && tspan.Text() == "Application" {
			blockText = text
		}
	}
	if blockText == nil {
		t.Fatal("block text not found")
	}

	// 14 pt at 96 DPI
	if got := blockText.SelectAttrValue("font-size", ""); got != "18.67" {
		t.Errorf("font-size = %s, want 18.67", got)
	}
	if got := blockText.SelectAttrValue("text-anchor", ""); got != "middle" {
		t.Errorf("text-anchor = %s, want middle", got)
	}
	if got := blockText.SelectAttrValue("font-weight", ""); got != "bold" {
		t.Errorf("font-weight = %s, want bold", got)
	}

	tspan := blockText.SelectElement("tspan")
	if got := tspan.SelectAttrValue("x", ""); got != "240.00" {
		t.Errorf("tspan x = %s, want 240.00", got)
	}
	if got := tspan.SelectAttrValue("y", ""); got != "339.73" {
		t.Errorf("tspan y = %s, want 339.73", got)
	}
}

func TestMultiLineTspans(t *testing.T) {
	l := testLayout()
	l.Elements[1].Text = &layout.Text{
		Content: "Customer Data Platform",
		Lines:   []string{"Customer Data", "Platform"},
		SizePt:  12,
		Family:  "Calibri",
		Bold:    true,
		Color:   "ffffff",
	}

	doc := renderDoc(t, l)
	var spans []*etree.Element
	for _, text := range doc.FindElements("//text") {
		if first := text.SelectElement("tspan"); first != nil && first.Text() == "Customer Data" {
			spans = text.SelectElements("tspan")
		}
	}
	if len(spans) != 2 {
		t.Fatalf("tspan count = %d, want 2", len(spans))
	}

	// 12 pt = 16 px, line height 19.2 px
	if got := spans[0].SelectAttrValue("y", ""); got != "329.60" {
		t.Errorf("first baseline = %s, want 329.60", got)
	}
	if got := spans[1].SelectAttrValue("y", ""); got != "348.80" {
		t.Errorf("second baseline = %s, want 348.80", got)
	}
}

func TestConnectorMarkers(t *testing.T) {
	tests := []struct {
		name      string
		style     brief.ConnectorStyle
		wantEnd   bool
		wantStart bool
		wantDash  bool
	}{
		{"arrow", brief.ConnectorStyleArrow, true, false, false},
		{"dashed", brief.ConnectorStyleDashed, true, false, true},
		{"bidirectional", brief.ConnectorStyleBidirectional, true, true, false},
		{"plain", brief.ConnectorStylePlain, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := testLayout()
			l.Connectors[0].Style = tt.style

			doc := renderDoc(t, l)
			line := findByID(t, doc, "conn_0")
			if line.Tag != "line" {
				t.Fatalf("connector rendered as <%s>, want <line>", line.Tag)
			}

			if got := line.SelectAttrValue("marker-end", "") != ""; got != tt.wantEnd {
				t.Errorf("marker-end present = %v, want %v", got, tt.wantEnd)
			}
			if got := line.SelectAttrValue("marker-start", "") != ""; got != tt.wantStart {
				t.Errorf("marker-start present = %v, want %v", got, tt.wantStart)
			}
			if got := strings.Contains(line.SelectAttrValue("style", ""), "stroke-dasharray: 8,4"); got != tt.wantDash {
				t.Errorf("dasharray present = %v, want %v", got, tt.wantDash)
			}

			if tt.wantEnd {
				m := doc.FindElement("//defs/marker[@id='arrow-666666']")
				if m == nil {
					t.Fatal("missing arrowhead marker def")
				}
				if got := m.SelectAttrValue("refX", ""); got != "9" {
					t.Errorf("marker refX = %s, want 9", got)
				}
				poly := m.SelectElement("polygon")
				if got := poly.SelectAttrValue("points", ""); got != "0 0, 10 3.5, 0 7" {
					t.Errorf("marker points = %q", got)
				}
			} else if tt.style == brief.ConnectorStylePlain {
				if doc.FindElement("//defs") != nil {
					t.Error("plain-only layout should emit no marker defs")
				}
			}

			if tt.wantStart {
				m := doc.FindElement("//defs/marker[@id='arrow-rev-666666']")
				if m == nil {
					t.Fatal("missing reverse marker def")
				}
				if got := m.SelectAttrValue("orient", ""); got != "auto-start-reverse" {
					t.Errorf("reverse marker orient = %s", got)
				}
			}
		})
	}
}

func TestConnectorLabelBackdrop(t *testing.T) {
	l := testLayout()
	l.Connectors[0].Label = testText("flows", 10, false, "666666")

	doc := renderDoc(t, l)
	backdrop := findByID(t, doc, "conn_0_label")
	if backdrop.Tag != "rect" {
		t.Fatalf("label backdrop rendered as <%s>, want <rect>", backdrop.Tag)
	}
	if got := backdrop.SelectAttrValue("style", ""); got != "fill:#ffffff" {
		t.Errorf("backdrop style = %q", got)
	}
}

// A marketecture slide with eight blocks and one cross-cutting band must
// preview as nine rectangles plus the title text.
func TestMarketectureShapeCount(t *testing.T) {
	l := testLayout()
	l.Elements = l.Elements[:1] // keep the band
	for i := 0; i < 8; i++ {
		l.Elements = append(l.Elements, layout.Element{
			ID:           fmt.Sprintf("unit_%d", i),
			Kind:         layout.ElementKindBlock,
			Rect:         canvas.Rect{X: 0.7 + float64(i)*1.55, Y: 3.0, W: 1.45, H: 1.0},
			Fill:         "0073e6",
			CornerRadius: 0.08,
			Text:         testText(fmt.Sprintf("Unit %d", i), 12, true, "ffffff"),
			Opacity:      1,
			ZOrder:       0,
			VCenter:      true,
		})
	}
	l.Connectors = nil

	doc := renderDoc(t, l)

	rects := doc.FindElements("//rect")
	if len(rects) != 9 {
		t.Errorf("rect count = %d, want 9", len(rects))
	}

	var titles int
	for _, text := range doc.FindElements("//text") {
		if text.SelectAttrValue("data-kind", "") == "title" {
			titles++
		}
	}
	if titles != 1 {
		t.Errorf("title text count = %d, want 1", titles)
	}
}

func TestBandsPrecedeBlocks(t *testing.T) {
	doc := renderDoc(t, testLayout())

	var order []string
	for _, e := range doc.SelectElement("svg").ChildElements() {
		if id := e.SelectAttrValue("id", ""); id != "" {
			order = append(order, id)
		}
	}

	band, block := -1, -1
	for i, id := range order {
		switch id {
		case "layer_ai":
			band = i
		case "app":
			block = i
		}
	}
	if band == -1 || block == -1 {
		t.Fatalf("missing nodes, got %v", order)
	}
	if band > block {
		t.Errorf("band written after block: %v", order)
	}
}

func TestSpacersAndWhiteBackgroundOmitted(t *testing.T) {
	l := testLayout()
	l.Elements = append(l.Elements, layout.Element{
		ID:      "spacer",
		Kind:    layout.ElementKindBlock,
		Rect:    canvas.Rect{X: 9, Y: 3, W: 1, H: 1},
		Fill:    layout.Transparent,
		Opacity: 1,
	})

	doc := renderDoc(t, l)
	if doc.FindElement("//*[@id='spacer']") != nil {
		t.Error("transparent spacer was rendered")
	}
	if doc.FindElement("//*[@id='background']") != nil {
		t.Error("white background should stay implicit")
	}

	l.Background = "1a1a2e"
	doc = renderDoc(t, l)
	bg := findByID(t, doc, "background")
	if got := bg.SelectAttrValue("style", ""); got != "fill:#1a1a2e" {
		t.Errorf("background style = %q", got)
	}
}
