package css_test

import (
	"reflect"
	"testing"

	"go.uber.org/zap"

	"infogen/css"
)

func TestParser_HexColors(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(`
		.hero { background: #1B365D; color: #fff; }
		.cta { border: 1px solid #00a3e0; background: #1b365d; }
		.accent { color: #6C4; }
	`)
	sig := p.Parse(input)

	want := []string{"1b365d", "ffffff", "00a3e0", "66cc44"}
	if !reflect.DeepEqual(sig.Colors, want) {
		t.Fatalf("Parse() colors = %v, want %v", sig.Colors, want)
	}
}

func TestParser_RGBFunctions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"comma_separated", `a { color: rgb(27, 54, 93); }`, []string{"1b365d"}},
		{"space_separated", `a { color: rgb(27 54 93); }`, []string{"1b365d"}},
		{"rgba_alpha_ignored", `a { color: rgba(0, 163, 224, 0.5); }`, []string{"00a3e0"}},
		{"percentages", `a { color: rgb(100%, 0%, 50%); }`, []string{"ff0080"}},
		{"clamped", `a { color: rgb(300, -5, 128); }`, []string{"ff0080"}},
		{"other_functions_skipped", `a { width: calc(100% - 10px); color: url(x.png); }`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := css.NewParser(zap.NewNop())
			sig := p.Parse([]byte(tt.input))
			if !reflect.DeepEqual(sig.Colors, tt.want) {
				t.Errorf("Parse(%q) colors = %v, want %v", tt.input, sig.Colors, tt.want)
			}
		})
	}
}

func TestParser_FontFamilies(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(`
		body { font-family: "Open Sans", Segoe UI, sans-serif; }
		h1 { font-family: 'Montserrat', "open sans", serif; }
		code { font-family: monospace; }
	`)
	sig := p.Parse(input)

	want := []string{"Open Sans", "Segoe UI", "Montserrat"}
	if !reflect.DeepEqual(sig.Families, want) {
		t.Fatalf("Parse() families = %v, want %v", sig.Families, want)
	}
}

func TestParser_CustomProperties(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(`
		:root {
			--brand-primary: #1B365D;
			--brand-secondary: rgb(0, 163, 224);
			--spacing: 8px;
		}
		.btn { background: var(--brand-primary); }
	`)
	sig := p.Parse(input)

	want := []string{"1b365d", "00a3e0"}
	if !reflect.DeepEqual(sig.Colors, want) {
		t.Fatalf("Parse() colors = %v, want %v", sig.Colors, want)
	}
}

func TestParser_NestedBlocks(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(`
		@media (max-width: 600px) {
			.hero { background: #6cc24a; }
		}
		@font-face {
			font-family: "Corporate Sans";
			src: url(corp.woff2);
		}
		@import url("other.css");
	`)
	sig := p.Parse(input)

	if want := []string{"6cc24a"}; !reflect.DeepEqual(sig.Colors, want) {
		t.Errorf("Parse() colors = %v, want %v", sig.Colors, want)
	}
	if want := []string{"Corporate Sans"}; !reflect.DeepEqual(sig.Families, want) {
		t.Errorf("Parse() families = %v, want %v", sig.Families, want)
	}
}

func TestParser_NamedColorsIgnored(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sig := p.Parse([]byte(`a { color: white; background: cornflowerblue; }`))
	if !sig.Empty() {
		t.Fatalf("Parse() = %+v, want empty signals", sig)
	}
}

func TestParser_UTF8BOM(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := append([]byte{0xef, 0xbb, 0xbf}, []byte(`a { color: #0073e6; }`)...)
	sig := p.Parse(input)

	if want := []string{"0073e6"}; !reflect.DeepEqual(sig.Colors, want) {
		t.Fatalf("Parse() colors = %v, want %v", sig.Colors, want)
	}
}

func TestParser_UTF16LE(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	src := `a { color: #0073e6; }`
	input := []byte{0xff, 0xfe}
	for _, c := range []byte(src) {
		input = append(input, c, 0x00)
	}
	sig := p.Parse(input)

	if want := []string{"0073e6"}; !reflect.DeepEqual(sig.Colors, want) {
		t.Fatalf("Parse() colors = %v, want %v", sig.Colors, want)
	}
}

func TestParser_MalformedInput(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	// The tokenizer recovers from broken rules, later declarations still
	// count.
	input := []byte(`a { color: #1B365D;;; } { } b { background: #00a3e0`)
	sig := p.Parse(input)

	if len(sig.Colors) == 0 || sig.Colors[0] != "1b365d" {
		t.Fatalf("Parse() colors = %v, want first color 1b365d", sig.Colors)
	}
}
