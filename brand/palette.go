package brand

import (
	"infogen/common"
)

// FromPalette normalizes an explicit caller palette. Order is the caller's
// priority order and is kept; duplicates collapse onto their first position.
// A color that does not parse, or a list longer than MaxPaletteColors, is
// the caller's mistake and fails the request.
func (x *Extractor) FromPalette(colors []string) (*Preset, error) {
	if len(colors) > MaxPaletteColors {
		return nil, common.NewError(common.KindInputInvalid,
			"palette lists %d colors, the limit is %d", len(colors), MaxPaletteColors)
	}
	seen := make(map[string]bool, len(colors))
	normalized := make([]string, 0, len(colors))
	for _, c := range colors {
		hex, err := common.NormalizeHexColor(c)
		if err != nil {
			return nil, common.WrapError(common.KindInputInvalid, err, "parsing palette")
		}
		if seen[hex] {
			continue
		}
		seen[hex] = true
		normalized = append(normalized, hex)
	}
	return &Preset{Colors: normalized, Source: SourcePalette}, nil
}
