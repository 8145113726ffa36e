package brief

import "infogen/canvas"

// SchemaVersion accompanies every persisted brief. Bump on breaking changes
// to the wire format.
const SchemaVersion = 1

// Entity is a single box on the final diagram.
type Entity struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Group       string   `json:"group,omitempty"`
	Emphasis    Emphasis `json:"emphasis,omitempty"`
}

// Layer groups entities into a horizontal band. Cross-cutting layers render
// as full-width bands behind the blocks they span.
type Layer struct {
	ID        string        `json:"id"`
	Label     string        `json:"label"`
	Position  LayerPosition `json:"position,omitempty"`
	EntityIDs []string      `json:"entity_ids,omitempty"`
}

// Connection links two entities.
type Connection struct {
	FromID string         `json:"from_id"`
	ToID   string         `json:"to_id"`
	Label  string         `json:"label,omitempty"`
	Style  ConnectorStyle `json:"style,omitempty"`
}

// Theme carries the visual identity for one generation. Colors are six hex
// digits lowercase without the hash.
type Theme struct {
	Primary      string  `json:"primary"`
	Secondary    string  `json:"secondary"`
	Accent       string  `json:"accent"`
	Background   string  `json:"background"`
	Text         string  `json:"text"`
	FontFamily   string  `json:"font_family,omitempty"`
	CornerRadius float64 `json:"corner_radius,omitempty"`
	Padding      float64 `json:"padding,omitempty"`
}

// DefaultTheme returns the house style used when a brief names no colors.
func DefaultTheme() Theme {
	return Theme{
		Primary:      canvas.DefaultPrimary,
		Secondary:    canvas.DefaultSecondary,
		Accent:       canvas.DefaultAccent,
		Background:   canvas.DefaultBackground,
		Text:         canvas.DefaultText,
		FontFamily:   canvas.DefaultFontFamily,
		CornerRadius: canvas.DefaultCornerRadius,
		Padding:      canvas.TextPaddingH,
	}
}

// Brief is the structured diagram specification extracted from a prompt.
type Brief struct {
	SchemaVersion int          `json:"schema_version"`
	Title         string       `json:"title"`
	Subtitle      string       `json:"subtitle,omitempty"`
	DiagramType   DiagramType  `json:"diagram_type"`
	Entities      []Entity     `json:"entities"`
	Layers        []Layer      `json:"layers,omitempty"`
	Connections   []Connection `json:"connections,omitempty"`
	Theme         Theme        `json:"theme,omitempty"`
	LayoutHint    string       `json:"layout_hint,omitempty"`
}

// Entity returns the entity with the given id, nil when absent.
func (b *Brief) Entity(id string) *Entity {
	for i := range b.Entities {
		if b.Entities[i].ID == id {
			return &b.Entities[i]
		}
	}
	return nil
}

// CrossCutting returns the cross-cutting layers in declaration order.
func (b *Brief) CrossCutting() []Layer {
	var res []Layer
	for _, l := range b.Layers {
		if l.Position == LayerPositionCrossCutting {
			res = append(res, l)
		}
	}
	return res
}

// Members returns the entities belonging to a layer, in layer order.
func (b *Brief) Members(l Layer) []Entity {
	res := make([]Entity, 0, len(l.EntityIDs))
	for _, id := range l.EntityIDs {
		if e := b.Entity(id); e != nil {
			res = append(res, *e)
		}
	}
	return res
}
