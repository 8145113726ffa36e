package brand

import (
	"sort"
	"strings"
)

// wellKnown maps vendor names mentioned in prompts to their published brand
// colors, four per brand in role order. Saves an extraction round trip when
// the caller just wants "standard OpenText blue".
var wellKnown = map[string][]string{
	"microsoft":  {"0078d4", "50e6ff", "00a4ef", "ffb900"},
	"google":     {"4285f4", "ea4335", "fbbc05", "34a853"},
	"opentext":   {"1b365d", "00a3e0", "6cc24a", "ffb81c"},
	"aws":        {"ff9900", "232f3e", "146eb4", "1b660f"},
	"azure":      {"0078d4", "50e6ff", "00bcf2", "7719aa"},
	"gcp":        {"4285f4", "db4437", "f4b400", "0f9d58"},
	"salesforce": {"00a1e0", "1798c1", "032d60", "ff6d00"},
	"slack":      {"4a154b", "36c5f0", "2eb67d", "ecb22e"},
	"github":     {"24292e", "0366d6", "28a745", "6f42c1"},
	"stripe":     {"635bff", "00d4ff", "80e9ff", "ff80b4"},
}

// WellKnown looks up a vendor preset by name, case insensitively.
func WellKnown(name string) (*Preset, bool) {
	colors, ok := wellKnown[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return &Preset{Colors: append([]string(nil), colors...), Source: SourcePalette}, true
}

// WellKnownNames returns the vendor names with published presets, sorted.
func WellKnownNames() []string {
	names := make([]string, 0, len(wellKnown))
	for name := range wellKnown {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
