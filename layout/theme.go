package layout

import (
	"infogen/brief"
	"infogen/canvas"
	"infogen/common"
)

// styler resolves brief emphasis and palette positions to concrete colors.
// Built once per solve so the emphasis spread is computed a single time.
type styler struct {
	theme  brief.Theme
	cycle  [4]string
	spread bool
}

func newStyler(b *brief.Brief) *styler {
	st := &styler{
		theme: b.Theme,
		cycle: [4]string{b.Theme.Primary, b.Theme.Secondary, b.Theme.Accent, canvas.DefaultQuaternary},
	}
	for _, e := range b.Entities {
		if e.Emphasis != brief.EmphasisNormal {
			st.spread = true
			break
		}
	}
	return st
}

// colorAt cycles the four palette colors.
func (s *styler) colorAt(idx int) string {
	return s.cycle[idx%len(s.cycle)]
}

// fill picks a block color. Explicit emphasis maps straight to the theme;
// unmarked entities get a subdued primary tint when the brief emphasizes
// anything at all, otherwise block fills cycle the palette.
func (s *styler) fill(e *brief.Entity, idx int) string {
	switch e.Emphasis {
	case brief.EmphasisPrimary:
		return s.theme.Primary
	case brief.EmphasisSecondary:
		return s.theme.Secondary
	case brief.EmphasisAccent:
		return s.theme.Accent
	}
	if s.spread {
		return common.Tint(s.theme.Primary, 0.2)
	}
	return s.colorAt(idx)
}

// textOn returns a text color readable against the given fill.
func (s *styler) textOn(fill string) string {
	if fill == Transparent {
		return s.theme.Text
	}
	return common.ContrastText(fill)
}

func (s *styler) border() string    { return canvas.DefaultBorder }
func (s *styler) connector() string { return canvas.DefaultConnector }
