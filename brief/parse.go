package brief

import (
	"encoding/json"
	"fmt"
	"strings"

	"infogen/common"
)

// Parse decodes a model response into a Brief. Markdown code fences around
// the JSON are tolerated, unknown fields are ignored.
func Parse(raw string) (*Brief, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		last := len(lines)
		if last > 1 && strings.HasPrefix(strings.TrimSpace(lines[last-1]), "```") {
			last--
		}
		text = strings.Join(lines[1:last], "\n")
	}

	var b Brief
	if err := json.Unmarshal([]byte(text), &b); err != nil {
		return nil, fmt.Errorf("unable to decode brief: %w", err)
	}
	return &b, nil
}

// Validate reports schema violations that require another model attempt.
// Repairable findings (duplicate ids, dangling references, sloppy casing)
// are not listed here, Normalize fixes those silently.
func Validate(b *Brief) []string {
	var problems []string

	if len(b.Entities) == 0 {
		problems = append(problems, "no entities defined")
	}
	for i, e := range b.Entities {
		if strings.TrimSpace(e.Label) == "" {
			problems = append(problems, fmt.Sprintf("entity %d has an empty label", i+1))
		}
	}

	colors := []struct{ name, value string }{
		{"theme.primary", b.Theme.Primary},
		{"theme.secondary", b.Theme.Secondary},
		{"theme.accent", b.Theme.Accent},
		{"theme.background", b.Theme.Background},
		{"theme.text", b.Theme.Text},
	}
	for _, c := range colors {
		if c.value == "" {
			continue
		}
		if _, err := common.NormalizeHexColor(c.value); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", c.name, err))
		}
	}

	return problems
}

// Normalize repairs a brief in place: canonical lowercase colors, synthesized
// and de-duplicated entity ids, pruned dangling references, theme and layer
// defaults. Repairs that change meaning surface as warnings.
func Normalize(b *Brief, warns *common.Warnings) {
	b.SchemaVersion = SchemaVersion
	if strings.TrimSpace(b.Title) == "" {
		b.Title = "Untitled Diagram"
	}

	seen := make(map[string]bool, len(b.Entities))
	for i := range b.Entities {
		e := &b.Entities[i]
		if strings.TrimSpace(e.ID) == "" {
			e.ID = fmt.Sprintf("entity_%d", i+1)
		}
		if seen[e.ID] {
			base := e.ID
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", base, n)
				if !seen[candidate] {
					e.ID = candidate
					break
				}
			}
			warns.Add(common.WarnEntityDedup, "entity id %q renamed to %q", base, e.ID)
		}
		seen[e.ID] = true
	}

	def := DefaultTheme()
	normColor(&b.Theme.Primary, def.Primary)
	normColor(&b.Theme.Secondary, def.Secondary)
	normColor(&b.Theme.Accent, def.Accent)
	normColor(&b.Theme.Background, def.Background)
	normColor(&b.Theme.Text, def.Text)
	if b.Theme.FontFamily == "" {
		b.Theme.FontFamily = def.FontFamily
	}
	if b.Theme.CornerRadius <= 0 {
		b.Theme.CornerRadius = def.CornerRadius
	}
	if b.Theme.Padding <= 0 {
		b.Theme.Padding = def.Padding
	}

	conns := b.Connections[:0]
	for _, c := range b.Connections {
		if !seen[c.FromID] || !seen[c.ToID] {
			warns.Add(common.WarnRefPruned, "connection %s->%s references an unknown entity", c.FromID, c.ToID)
			continue
		}
		conns = append(conns, c)
	}
	b.Connections = conns

	for i := range b.Layers {
		l := &b.Layers[i]
		if strings.TrimSpace(l.ID) == "" {
			l.ID = fmt.Sprintf("layer_%d", i+1)
		}
		members := l.EntityIDs[:0]
		for _, id := range l.EntityIDs {
			if !seen[id] {
				warns.Add(common.WarnRefPruned, "layer %q member %q does not exist", l.ID, id)
				continue
			}
			members = append(members, id)
		}
		l.EntityIDs = members
	}

	if len(b.Layers) == 0 && len(b.Entities) > 0 {
		ids := make([]string, len(b.Entities))
		for i, e := range b.Entities {
			ids[i] = e.ID
		}
		b.Layers = []Layer{{ID: "default_layer", Label: "Components", Position: LayerPositionMiddle, EntityIDs: ids}}
	}

	// Entities reference their layer through Group; backfill from layer
	// membership when the model left it empty.
	byLayer := make(map[string]string)
	for _, l := range b.Layers {
		for _, id := range l.EntityIDs {
			if _, ok := byLayer[id]; !ok {
				byLayer[id] = l.ID
			}
		}
	}
	for i := range b.Entities {
		if b.Entities[i].Group == "" {
			b.Entities[i].Group = byLayer[b.Entities[i].ID]
		}
	}
}

func normColor(c *string, fallback string) {
	if *c == "" {
		*c = fallback
		return
	}
	if n, err := common.NormalizeHexColor(*c); err == nil {
		*c = n
	} else {
		*c = fallback
	}
}

// diagramKeywords feeds the auto-detect pass, matched against the case
// folded prompt.
var diagramKeywords = map[DiagramType][]string{
	DiagramTypeMarketecture: {"marketecture", "architecture", "platform", "stack", "layers", "components"},
	DiagramTypeProcessFlow:  {"process", "flow", "steps", "workflow", "pipeline", "stages", "sequence"},
	DiagramTypeTechStack:    {"stack", "technology", "frontend", "backend", "infrastructure"},
	DiagramTypeComparison:   {"compare", "comparison", "versus", "options", "side by side"},
	DiagramTypeTimeline:     {"timeline", "history", "chronological", "events", "milestones", "dates"},
	DiagramTypeOrgStructure: {"org chart", "organization", "reporting", "structure", "hierarchy", "team"},
	DiagramTypeValueChain:   {"value chain", "chevron", "journey", "end-to-end", "progression"},
	DiagramTypeHubSpoke:     {"hub", "spoke", "central", "radial", "connected", "surrounding"},
}

// detectOrder fixes scan order so keyword ties resolve deterministically.
var detectOrder = []DiagramType{
	DiagramTypeMarketecture,
	DiagramTypeProcessFlow,
	DiagramTypeTechStack,
	DiagramTypeComparison,
	DiagramTypeTimeline,
	DiagramTypeOrgStructure,
	DiagramTypeValueChain,
	DiagramTypeHubSpoke,
}

// DetectDiagramType picks an archetype for a request. An explicit hint wins;
// otherwise keyword hits over the prompt decide, with ties going to the
// earlier archetype and zero hits defaulting to marketecture.
func DetectDiagramType(hint, prompt string) DiagramType {
	if hint != "" {
		normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(hint)), "_", "-")
		if dt, err := ParseDiagramType(normalized); err == nil {
			return dt
		}
	}

	folded := strings.ToLower(prompt)
	best := DiagramTypeMarketecture
	bestHits := 0
	for _, dt := range detectOrder {
		hits := 0
		for _, kw := range diagramKeywords[dt] {
			if strings.Contains(folded, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = dt, hits
		}
	}
	return best
}
