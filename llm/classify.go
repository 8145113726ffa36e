package llm

import (
	"strings"

	"infogen/brief"
)

// Signals are the request shaped facts known before any model call.
type Signals struct {
	Prompt      string
	Hint        brief.DiagramType
	HasHint     bool
	EntityCount int
	HasImages   bool
}

// complexityLexicon marks prompts that need the stronger models. Hits are
// counted per distinct term.
var complexityLexicon = []string{
	"marketecture", "architecture", "ecosystem", "cross-cutting",
	"integration", "platform", "multi-layer", "hierarchy",
	"organizational", "value chain", "business units",
}

// Classify picks the model tier for a request. Deterministic: images force
// vision, simple archetypes with a hint go fast, structural archetypes go
// premium, otherwise the prompt vocabulary decides.
func Classify(s Signals) Tier {
	if s.HasImages {
		return TierVision
	}
	if s.HasHint {
		switch s.Hint {
		case brief.DiagramTypeProcessFlow, brief.DiagramTypeTimeline, brief.DiagramTypeComparison:
			if s.EntityCount > 8 {
				return TierStandard
			}
			return TierFast
		case brief.DiagramTypeMarketecture, brief.DiagramTypeOrgStructure, brief.DiagramTypeHubSpoke, brief.DiagramTypeValueChain:
			return TierPremium
		}
	}
	prompt := strings.ToLower(s.Prompt)
	hits := 0
	for _, term := range complexityLexicon {
		if strings.Contains(prompt, term) {
			hits++
		}
	}
	switch {
	case hits >= 2:
		return TierPremium
	case hits == 1:
		return TierStandard
	default:
		return TierFast
	}
}
