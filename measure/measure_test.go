package measure

import (
	"math"
	"strings"
	"testing"
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMeasure(t *testing.T) {
	m := New()

	tests := []struct {
		name   string
		text   string
		family string
		sizePt int
		bold   bool
		wantW  float64
		wantH  float64
	}{
		{"uppercase", "HH", "Calibri", 72, false, 1.178, 0.75},
		{"lowercase", "hh", "Calibri", 72, false, 0.904, 0.75},
		{"bold penalty", "HH", "Calibri", 72, true, 1.24868, 0.75},
		{"empty", "", "Calibri", 72, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := m.Measure(tt.text, tt.family, tt.sizePt, tt.bold)
			if !almost(w, tt.wantW) {
				t.Errorf("width = %v, want %v", w, tt.wantW)
			}
			if !almost(h, tt.wantH) {
				t.Errorf("height = %v, want %v", h, tt.wantH)
			}
		})
	}
}

func TestMeasureCJKFallback(t *testing.T) {
	m := New()

	// Calibri has no CJK coverage, the chain hands these runes to the CJK
	// family; the wide-run multiplier then applies on top.
	w, h := m.Measure("你好", "Calibri", 72, false)
	if !almost(w, 3.6) {
		t.Errorf("width = %v, want 3.6", w)
	}
	if !almost(h, 0.78) {
		t.Errorf("height = %v, want 0.78", h)
	}

	w, _ = m.Measure("AB你", "Calibri", 36, false)
	if !almost(w, 1.3794) {
		t.Errorf("mixed width = %v, want 1.3794", w)
	}
}

func TestMeasureScaling(t *testing.T) {
	m := New()
	w72, _ := m.Measure("Platform", "Calibri", 72, false)
	w36, _ := m.Measure("Platform", "Calibri", 36, false)
	if !almost(w72, 2*w36) {
		t.Errorf("width does not scale linearly: %v vs 2x%v", w72, w36)
	}
}

func TestFitSingleLine(t *testing.T) {
	m := New()
	mt := m.Fit("OK", 3.0, "Calibri", 10, 24, true)
	if !mt.Fits {
		t.Fatal("short text must fit")
	}
	if mt.SizePt != 24 {
		t.Errorf("SizePt = %d, want 24", mt.SizePt)
	}
	if len(mt.Lines) != 1 || mt.Lines[0] != "OK" {
		t.Errorf("Lines = %v, want [OK]", mt.Lines)
	}
	if mt.Height <= 0 {
		t.Error("height must be positive")
	}
}

func TestFitWrapsWithinWidth(t *testing.T) {
	m := New()
	const maxWidth = 2.2
	available := maxWidth - 0.3

	mt := m.Fit("Unified Customer Data Platform", maxWidth, "Calibri", 10, 24, true)
	if !mt.Fits {
		t.Fatal("expected a wrapped fit")
	}
	if len(mt.Lines) < 2 || len(mt.Lines) > 3 {
		t.Fatalf("lines = %d, want 2..3", len(mt.Lines))
	}
	for _, line := range mt.Lines {
		w, _ := m.Measure(line, "Calibri", mt.SizePt, true)
		if w > available {
			t.Errorf("line %q measures %v, over available %v", line, w, available)
		}
	}
	if strings.Join(mt.Lines, " ") != "Unified Customer Data Platform" {
		t.Errorf("wrapping lost words: %v", mt.Lines)
	}
}

func TestFitTruncates(t *testing.T) {
	m := New()
	long := strings.Repeat("x", 60)
	mt := m.Fit(long, 1.0, "Calibri", 10, 24, false)
	if mt.Fits {
		t.Fatal("unfittable text must report Fits=false")
	}
	if len(mt.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(mt.Lines))
	}
	want := strings.Repeat("x", 30) + "..."
	if mt.Lines[0] != want {
		t.Errorf("line = %q, want %q", mt.Lines[0], want)
	}
	if mt.SizePt != 10 {
		t.Errorf("SizePt = %d, want 10", mt.SizePt)
	}
}

func TestFitEmpty(t *testing.T) {
	m := New()
	mt := m.Fit("   ", 2.0, "Calibri", 10, 24, false)
	if !mt.Fits {
		t.Error("empty text fits trivially")
	}
	if len(mt.Lines) != 1 || mt.Lines[0] != "" {
		t.Errorf("Lines = %v, want one empty line", mt.Lines)
	}
	if !almost(mt.Height, 0.1) {
		t.Errorf("Height = %v, want 0.1", mt.Height)
	}
}

func TestFitLinesRespectsCap(t *testing.T) {
	m := New()
	mt := m.FitLines("One Two Three Four Five Six Seven", 1.9, "Calibri", 10, 14, false, 2)
	if len(mt.Lines) > 2 {
		t.Errorf("lines = %d, want at most 2", len(mt.Lines))
	}
}

func TestEstimateBlockHeight(t *testing.T) {
	m := New()
	short := m.EstimateBlockHeight("API", 2.5, "Calibri", true)
	if short != 0.7 {
		t.Errorf("short label height = %v, want min 0.7", short)
	}
	long := m.EstimateBlockHeight("An Exceptionally Verbose Component Label That Wraps", 1.8, "Calibri", true)
	if long < 0.7 || long > 1.8 {
		t.Errorf("height %v outside [0.7, 1.8]", long)
	}
}
