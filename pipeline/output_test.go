package pipeline

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"infogen/brief"
	"infogen/common"
	"infogen/config"
)

func pathFixtures() (Output, *Result, *Request) {
	out := Output{Format: common.OutputFormatSlide, Name: "q3-platform-review-abcd1234.pptx"}
	res := &Result{
		ID:   "0190b5a2-5f2e-7000-8000-000000000000",
		Lang: "en",
		Brief: &brief.Brief{
			Title:       "Q3 Platform Review",
			DiagramType: brief.DiagramTypeProcessFlow,
		},
	}
	req := &Request{Caller: "acme"}
	return out, res, req
}

func TestBuildOutputPathNoTemplate(t *testing.T) {
	out, res, req := pathFixtures()
	log := zaptest.NewLogger(t)

	got := buildOutputPath("/output", out, res, req, config.DocumentConfig{}, log)
	if want := filepath.Join("/output", out.Name); got != want {
		t.Errorf("buildOutputPath() = %q, want the artifact name %q", got, want)
	}
}

func TestBuildOutputPathTemplate(t *testing.T) {
	out, res, req := pathFixtures()
	log := zaptest.NewLogger(t)

	tests := []struct {
		name          string
		template      string
		transliterate bool
		want          string
	}{
		{
			name:          "title_transliterated",
			template:      "{{ .Title }}",
			transliterate: true,
			want:          filepath.Join("/output", "q3-platform-review.pptx"),
		},
		{
			name:     "title_kept_verbatim",
			template: "{{ .Title }}",
			want:     filepath.Join("/output", "Q3 Platform Review.pptx"),
		},
		{
			name:          "subdirs_per_segment",
			template:      "{{ .Caller }}/{{ .DiagramType }}/{{ .Title }}",
			transliterate: true,
			want:          filepath.Join("/output", "acme", "process-flow", "q3-platform-review.pptx"),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := config.DocumentConfig{OutputNameTemplate: tc.template, FileNameTransliterate: tc.transliterate}
			if got := buildOutputPath("/output", out, res, req, doc, log); got != tc.want {
				t.Errorf("buildOutputPath() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildOutputPathTemplateFallsBack(t *testing.T) {
	out, res, req := pathFixtures()
	log := zaptest.NewLogger(t)
	want := filepath.Join("/output", out.Name)

	// A template that does not parse falls back to the artifact name.
	doc := config.DocumentConfig{OutputNameTemplate: "{{ .Title "}
	if got := buildOutputPath("/output", out, res, req, doc, log); got != want {
		t.Errorf("buildOutputPath(bad template) = %q, want fallback %q", got, want)
	}

	// So does one that expands to nothing.
	doc = config.DocumentConfig{OutputNameTemplate: "{{ if false }}x{{ end }}"}
	if got := buildOutputPath("/output", out, res, req, doc, log); got != want {
		t.Errorf("buildOutputPath(empty expansion) = %q, want fallback %q", got, want)
	}
}

func TestExpandTemplate(t *testing.T) {
	values := Values{Title: "Q3 Platform Review", Format: "slide", Caller: "acme"}

	got, err := expandTemplate(config.OutputNameTemplateFieldName, "{{ .Title }}-{{ .Format }}", values)
	if err != nil {
		t.Fatalf("expandTemplate() error = %v", err)
	}
	if want := "Q3 Platform Review-slide"; got != want {
		t.Errorf("expandTemplate() = %q, want %q", got, want)
	}

	// sprig helpers are available in name templates
	got, err = expandTemplate(config.OutputNameTemplateFieldName, "{{ upper .Caller }}", values)
	if err != nil {
		t.Fatalf("expandTemplate(sprig) error = %v", err)
	}
	if got != "ACME" {
		t.Errorf("expandTemplate(sprig) = %q, want ACME", got)
	}

	if _, err := expandTemplate(config.OutputNameTemplateFieldName, "{{ .Broken ", values); err == nil {
		t.Error("expandTemplate(unparsable) = nil error, want failure")
	}
}
