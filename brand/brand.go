// Package brand turns caller supplied material into color and font hints
// for the reasoning stage. Material arrives in four shapes: an explicit hex
// palette, a stylesheet, a logo image and a PowerPoint template; each shape
// has its own extraction protocol and the shapes are tried in that order of
// trust.
package brand

import (
	"go.uber.org/zap"

	"infogen/common"
	"infogen/css"
)

// MaxPaletteColors caps every preset. Ten colors already exceed what a
// four role theme can use; anything longer is noise.
const MaxPaletteColors = 10

// Preset is the brand snapshot handed to reasoning together with the
// prompt.
type Preset struct {
	// Colors holds six digit lowercase hex values, most prominent first,
	// at most MaxPaletteColors of them.
	Colors []string
	// Font is the brand font family when the material named one.
	Font string
	// Source records which material produced the preset.
	Source Source
}

// Inputs carries the optional brand material of a generation request.
type Inputs struct {
	Palette    []string
	Stylesheet []byte
	Logo       []byte
	Template   []byte
}

// Empty reports whether a request supplied no brand material at all.
func (in Inputs) Empty() bool {
	return len(in.Palette) == 0 && len(in.Stylesheet) == 0 && len(in.Logo) == 0 && len(in.Template) == 0
}

// Extractor resolves request material into a Preset.
type Extractor struct {
	log *zap.Logger
	css *css.Parser
}

// NewExtractor creates a brand extractor.
func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{log: log.Named("brand"), css: css.NewParser(log)}
}

// Extract tries each supplied material in priority order: an explicit
// palette wins, then stylesheet, then logo, then template. Material that
// cannot be read at all fails the request; material that reads fine but
// holds no usable colors falls through to the next source with a warning.
// When nothing was supplied, or nothing yielded colors, the preset is nil
// and the theme defaults apply downstream.
func (x *Extractor) Extract(in Inputs) (*Preset, common.Warnings, error) {
	var warns common.Warnings

	sources := []struct {
		name    string
		present bool
		from    func() (*Preset, error)
	}{
		{"palette", len(in.Palette) > 0, func() (*Preset, error) { return x.FromPalette(in.Palette) }},
		{"stylesheet", len(in.Stylesheet) > 0, func() (*Preset, error) { return x.FromStylesheet(in.Stylesheet) }},
		{"logo", len(in.Logo) > 0, func() (*Preset, error) { return x.FromLogo(in.Logo) }},
		{"template", len(in.Template) > 0, func() (*Preset, error) { return x.FromTemplate(in.Template) }},
	}
	for _, s := range sources {
		if !s.present {
			continue
		}
		p, err := s.from()
		if err != nil {
			return nil, warns, err
		}
		if len(p.Colors) == 0 && p.Font == "" {
			warns.Add(common.WarnBrandMaterial, "%s yielded no usable brand colors", s.name)
			continue
		}
		x.log.Debug("Brand preset extracted",
			zap.Stringer("source", p.Source),
			zap.Strings("colors", p.Colors),
			zap.String("font", p.Font))
		return p, warns, nil
	}
	return nil, warns, nil
}

// cap truncates a color list to the preset limit.
func capColors(colors []string) []string {
	if len(colors) > MaxPaletteColors {
		return colors[:MaxPaletteColors]
	}
	return colors
}

// dropExtremes filters near-white and near-black colors out of an extracted
// list. Extraction protocols call this; explicit palettes are taken as
// given.
func dropExtremes(colors []string) []string {
	kept := colors[:0:len(colors)]
	for _, c := range colors {
		r, g, b, ok := hexChannels(c)
		if !ok {
			continue
		}
		if nearWhite(r, g, b) || nearBlack(r, g, b) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// The thresholds treat anything lighter than f0f0f0 as background white and
// anything darker than 0f0f0f as text black.
func nearWhite(r, g, b uint8) bool { return r > 240 && g > 240 && b > 240 }
func nearBlack(r, g, b uint8) bool { return r < 15 && g < 15 && b < 15 }

// hexChannels splits a normalized six digit hex color into channels.
func hexChannels(hex string) (r, g, b uint8, ok bool) {
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	var v uint32
	for i := range 6 {
		c := hex[i]
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint32(c-'A') + 10
		default:
			return 0, 0, 0, false
		}
		v = v<<4 | d
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
