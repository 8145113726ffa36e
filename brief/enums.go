// Package brief defines the structured diagram specification produced by the
// reasoning stage and consumed by the layout engine. The JSON form is the
// wire contract with the language models and the persistence format for
// stored briefs, versioned through SchemaVersion.
package brief

import (
	"encoding/json"
	"strings"
)

// Diagram archetype. The set is closed, one layout solver exists per value.
// ENUM(marketecture, process-flow, tech-stack, comparison, timeline, org-structure, value-chain, hub-spoke)
type DiagramType int

// Visual weight of an entity, mapped to theme colors by the solvers.
// ENUM(normal, primary, secondary, accent)
type Emphasis int

// Vertical placement of a layer.
// ENUM(top, middle, bottom, cross-cutting)
type LayerPosition int

// Connector rendering style.
// ENUM(arrow, dashed, bidirectional, plain)
type ConnectorStyle int

// parseLenient tolerates the snake_case spellings models occasionally emit.
func parseLenient(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return strings.ReplaceAll(s, "_", "-"), nil
}

// UnmarshalJSON accepts "process_flow" alongside "process-flow".
func (x *DiagramType) UnmarshalJSON(data []byte) error {
	s, err := parseLenient(data)
	if err != nil {
		return err
	}
	v, err := ParseDiagramType(s)
	if err != nil {
		return err
	}
	*x = v
	return nil
}

func (x *Emphasis) UnmarshalJSON(data []byte) error {
	s, err := parseLenient(data)
	if err != nil {
		return err
	}
	v, err := ParseEmphasis(s)
	if err != nil {
		return err
	}
	*x = v
	return nil
}

func (x *LayerPosition) UnmarshalJSON(data []byte) error {
	s, err := parseLenient(data)
	if err != nil {
		return err
	}
	v, err := ParseLayerPosition(s)
	if err != nil {
		return err
	}
	*x = v
	return nil
}

func (x *ConnectorStyle) UnmarshalJSON(data []byte) error {
	s, err := parseLenient(data)
	if err != nil {
		return err
	}
	v, err := ParseConnectorStyle(s)
	if err != nil {
		return err
	}
	*x = v
	return nil
}
