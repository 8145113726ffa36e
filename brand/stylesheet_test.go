package brand_test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"infogen/brand"
)

func TestFromStylesheet(t *testing.T) {
	x := brand.NewExtractor(zap.NewNop())

	sheet := []byte(`
		:root {
			--primary: #1B365D;
			--secondary: rgb(0, 163, 224);
		}
		body {
			font-family: "Segoe UI", Arial, sans-serif;
			color: #333;
			background: #ffffff;
		}
		.accent { border-color: #6CC24A; }
	`)
	p, err := x.FromStylesheet(sheet)
	if err != nil {
		t.Fatalf("FromStylesheet() error = %v", err)
	}

	// #ffffff is near-white chrome and must not survive; everything else
	// keeps its first appearance order.
	want := []string{"1b365d", "00a3e0", "333333", "6cc24a"}
	if !reflect.DeepEqual(p.Colors, want) {
		t.Errorf("FromStylesheet() colors = %v, want %v", p.Colors, want)
	}
	if p.Font != "Segoe UI" {
		t.Errorf("FromStylesheet() font = %q, want %q", p.Font, "Segoe UI")
	}
	if p.Source != brand.SourceStylesheet {
		t.Errorf("FromStylesheet() source = %v, want %v", p.Source, brand.SourceStylesheet)
	}
}

func TestFromStylesheetCapsColors(t *testing.T) {
	x := brand.NewExtractor(zap.NewNop())

	var sb strings.Builder
	for i := range 15 {
		fmt.Fprintf(&sb, ".c%d { color: #10%02x20; }\n", i, 0x30+i)
	}
	p, err := x.FromStylesheet([]byte(sb.String()))
	if err != nil {
		t.Fatalf("FromStylesheet() error = %v", err)
	}
	if len(p.Colors) != brand.MaxPaletteColors {
		t.Fatalf("FromStylesheet() kept %d colors, want %d", len(p.Colors), brand.MaxPaletteColors)
	}
	if p.Colors[0] != "103020" {
		t.Fatalf("FromStylesheet() colors = %v, want first appearance order", p.Colors)
	}
}

func TestFromStylesheetNothingUsable(t *testing.T) {
	x := brand.NewExtractor(zap.NewNop())

	p, err := x.FromStylesheet([]byte(`a { color: black; background: #fff; margin: 0 auto; }`))
	if err != nil {
		t.Fatalf("FromStylesheet() error = %v", err)
	}
	if len(p.Colors) != 0 || p.Font != "" {
		t.Fatalf("FromStylesheet() = %+v, want empty preset", p)
	}
}
