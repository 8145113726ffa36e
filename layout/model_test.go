package layout

import (
	"testing"

	"infogen/canvas"
)

func block(id string, r canvas.Rect, z int) Element {
	return Element{ID: id, Kind: ElementKindBlock, Rect: r, Fill: "0073e6", Opacity: 1, ZOrder: z}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name     string
		elements []Element
		want     int
	}{
		{
			"clean",
			[]Element{
				block("a", canvas.Rect{X: 1, Y: 2, W: 2, H: 1}, 10),
				block("b", canvas.Rect{X: 4, Y: 2, W: 2, H: 1}, 10),
			},
			0,
		},
		{
			"outside canvas",
			[]Element{block("a", canvas.Rect{X: 12, Y: 2, W: 2, H: 1}, 10)},
			1,
		},
		{
			"band in front",
			[]Element{{ID: "band", Kind: ElementKindBand, Rect: canvas.Rect{X: 1, Y: 2, W: 10, H: 0.5}, Fill: "cccccc", Opacity: 1, ZOrder: 5}},
			1,
		},
		{
			"same z overlap",
			[]Element{
				block("a", canvas.Rect{X: 1, Y: 2, W: 2, H: 1}, 10),
				block("b", canvas.Rect{X: 2, Y: 2, W: 2, H: 1}, 10),
			},
			1,
		},
		{
			"stacked overlap passes",
			[]Element{
				block("a", canvas.Rect{X: 1, Y: 2, W: 2, H: 1}, 11),
				block("b", canvas.Rect{X: 2, Y: 2, W: 2, H: 1}, 10),
			},
			0,
		},
		{
			"touching edges pass",
			[]Element{
				block("a", canvas.Rect{X: 1, Y: 2, W: 2, H: 1}, 10),
				block("b", canvas.Rect{X: 3, Y: 2, W: 2, H: 1}, 10),
			},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Layout{Width: canvas.SlideWidth, Height: canvas.SlideHeight, Elements: tt.elements}
			if got := l.Validate(); len(got) != tt.want {
				t.Errorf("Validate() = %v, want %d problems", got, tt.want)
			}
		})
	}
}

func TestByZOrder(t *testing.T) {
	l := &Layout{
		Width: canvas.SlideWidth, Height: canvas.SlideHeight,
		Elements: []Element{
			block("front", canvas.Rect{X: 1, Y: 1, W: 1, H: 1}, 20),
			{ID: "band", Kind: ElementKindBand, Rect: canvas.Rect{X: 1, Y: 3, W: 10, H: 0.5}, ZOrder: -1},
			block("first", canvas.Rect{X: 3, Y: 1, W: 1, H: 1}, 10),
			block("second", canvas.Rect{X: 5, Y: 1, W: 1, H: 1}, 10),
		},
	}

	got := l.ByZOrder()
	want := []string{"band", "first", "second", "front"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("ByZOrder()[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestConnectorMidpoint(t *testing.T) {
	c := Connector{From: Point{X: 1, Y: 2}, To: Point{X: 3, Y: 6}}
	if mid := c.Midpoint(); !near(mid.X, 2) || !near(mid.Y, 4) {
		t.Errorf("Midpoint() = %+v, want {2 4}", mid)
	}
}

func TestParseElementKind(t *testing.T) {
	kind, err := ParseElementKind("band")
	if err != nil {
		t.Fatalf("ParseElementKind() error = %v", err)
	}
	if kind != ElementKindBand {
		t.Errorf("ParseElementKind(band) = %v, want %v", kind, ElementKindBand)
	}
	if _, err := ParseElementKind("sticker"); err == nil {
		t.Error("ParseElementKind(sticker) error = nil, want error")
	}
	if got := ElementKindTitle.String(); got != "title" {
		t.Errorf("String() = %q, want title", got)
	}
}
