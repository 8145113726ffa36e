package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"infogen/brief"
	"infogen/canvas"
	"infogen/layout"
)

func testLayout() *layout.Layout {
	return &layout.Layout{
		Width:      canvas.SlideWidth,
		Height:     canvas.SlideHeight,
		Background: canvas.DefaultBackground,
		Elements: []layout.Element{
			{
				ID:           "app",
				Kind:         layout.ElementKindBlock,
				Rect:         canvas.Rect{X: 1.0, Y: 3.0, W: 3.0, H: 1.0},
				Fill:         "0073e6",
				CornerRadius: 0.08,
				Opacity:      1,
				VCenter:      true,
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

func decode(t *testing.T, data []byte) (width, height int, at func(x, y int) color.RGBA) {
	t.Helper()

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), func(x, y int) color.RGBA {
		return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	}
}

func TestRenderNativeSize(t *testing.T) {
	data, err := Render(testLayout())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	w, h, at := decode(t, data)
	if w != 1280 || h != 720 {
		t.Fatalf("bounds = %dx%d, want 1280x720", w, h)
	}

	// canvas corner, untouched by any shape
	if c := at(5, 5); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("corner pixel = %v, want white", c)
	}

	// center of the block at (1,3)..(4,4) in
	if c := at(240, 336); c != (color.RGBA{0, 115, 230, 255}) {
		t.Errorf("block pixel = %v, want 0073e6", c)
	}
}

func TestRenderScaled(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		wantW int
		wantH int
	}{
		{"double", 2, 2560, 1440},
		{"half", 0.5, 640, 360},
		{"zero_defaults_to_native", 0, 1280, 720},
		{"clamped", 10, 8192, 4608},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderScaled(testLayout(), tt.scale)
			if err != nil {
				t.Fatalf("RenderScaled(%v) error = %v", tt.scale, err)
			}
			w, h, _ := decode(t, data)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("bounds = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
