package common

import (
	"errors"
	"testing"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"slide", "slide", OutputFormatSlide, false},
		{"svg", "svg", OutputFormatSvg, false},
		{"raster", "raster", OutputFormatRaster, false},
		{"case insensitive", "SVG", OutputFormatSvg, false},
		{"unknown", "gif", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOutputFormat) {
					t.Errorf("error = %v, want ErrInvalidOutputFormat", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputFormatExt(t *testing.T) {
	tests := []struct {
		format OutputFormat
		ext    string
		mime   string
	}{
		{OutputFormatSlide, ".pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
		{OutputFormatSvg, ".svg", "image/svg+xml"},
		{OutputFormatRaster, ".png", "image/png"},
	}

	for _, tt := range tests {
		if got := tt.format.Ext(); got != tt.ext {
			t.Errorf("%s.Ext() = %q, want %q", tt.format, got, tt.ext)
		}
		if got := tt.format.MIME(); got != tt.mime {
			t.Errorf("%s.MIME() = %q, want %q", tt.format, got, tt.mime)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := KindRateLimited.String(); got != "rate-limited" {
		t.Errorf("String() = %q, want %q", got, "rate-limited")
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("String() = %q, want %q", got, "Kind(99)")
	}
}

func TestKindRetryable(t *testing.T) {
	retryable := map[Kind]bool{
		KindRateLimited:   true,
		KindTimeout:       true,
		KindQuotaExceeded: false,
		KindBriefRejected: false,
		KindInternalError: false,
	}
	for kind, want := range retryable {
		if got := kind.Retryable(); got != want {
			t.Errorf("%s.Retryable() = %v, want %v", kind, got, want)
		}
	}
}

func TestMustParseKindPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("MustParseKind() did not panic on invalid input")
		}
	}()
	MustParseKind("no-such-kind")
}
