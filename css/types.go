// Package css extracts brand signals from stylesheets. Corporate sites bury
// their identity in custom properties and component rules; the scanner walks
// every declaration with a tolerant tokenizer and keeps what it finds in the
// order the sheet introduces it.
package css

import "strings"

// Signals is what a stylesheet tells about a brand.
type Signals struct {
	// Colors holds six digit lowercase hex values without the hash,
	// deduplicated, first appearance first.
	Colors []string
	// Families holds font family names with quotes stripped. Generic
	// fallbacks like sans-serif never make the list.
	Families []string

	seenColor  map[string]bool
	seenFamily map[string]bool
}

// Empty reports whether the scan found nothing usable.
func (s *Signals) Empty() bool {
	return len(s.Colors) == 0 && len(s.Families) == 0
}

func (s *Signals) addColor(hex string) {
	if s.seenColor == nil {
		s.seenColor = make(map[string]bool)
	}
	if s.seenColor[hex] {
		return
	}
	s.seenColor[hex] = true
	s.Colors = append(s.Colors, hex)
}

func (s *Signals) addFamilies(names []string) {
	for _, n := range names {
		key := strings.ToLower(n)
		if s.seenFamily == nil {
			s.seenFamily = make(map[string]bool)
		}
		if s.seenFamily[key] {
			continue
		}
		s.seenFamily[key] = true
		s.Families = append(s.Families, n)
	}
}

// genericFamilies lists CSS wide keywords and generic fallbacks that carry
// no brand identity.
var genericFamilies = map[string]bool{
	"serif":         true,
	"sans-serif":    true,
	"monospace":     true,
	"cursive":       true,
	"fantasy":       true,
	"system-ui":     true,
	"ui-serif":      true,
	"ui-sans-serif": true,
	"ui-monospace":  true,
	"ui-rounded":    true,
	"math":          true,
	"emoji":         true,
	"fangsong":      true,
	"inherit":       true,
	"initial":       true,
	"unset":         true,
	"revert":        true,
}
