package model

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// rawRelationship accepts both relationship shapes the editor has emitted
// over time: the current sourceId/targetId form and the legacy
// source/target form. Normalization happens once here so the engine only
// ever sees the canonical Relationship.
type rawRelationship struct {
	ID                 string           `json:"id"`
	Kind               RelationshipKind `json:"kind"`
	SourceID           string           `json:"sourceId"`
	TargetID           string           `json:"targetId"`
	Source             string           `json:"source"`
	Target             string           `json:"target"`
	SourceMultiplicity string           `json:"sourceMultiplicity"`
	TargetMultiplicity string           `json:"targetMultiplicity"`
	Label              string           `json:"label"`
}

type rawDiagram struct {
	Elements      map[string]Element `json:"elements"`
	Relationships json.RawMessage    `json:"relationships"`
}

// decodeRelationships accepts both container shapes the editor has
// emitted: a map keyed by relationship id and a plain array.
func decodeRelationships(data json.RawMessage) (map[string]rawRelationship, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var asMap map[string]rawRelationship
	if err := json.Unmarshal(data, &asMap); err == nil {
		return asMap, nil
	}

	var asList []rawRelationship
	if err := json.Unmarshal(data, &asList); err != nil {
		return nil, fmt.Errorf("relationships must be a map or an array: %w", err)
	}
	out := make(map[string]rawRelationship, len(asList))
	for i, r := range asList {
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("rel_%d", i)
		}
		out[id] = r
	}
	return out, nil
}

// ParseDiagram reads a serialized logical model. Relationship references
// in the legacy source/target shape are normalized to sourceId/targetId.
func ParseDiagram(r io.Reader) (*Diagram, error) {
	var raw rawDiagram
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode diagram: %w", err)
	}

	rawRels, err := decodeRelationships(raw.Relationships)
	if err != nil {
		return nil, err
	}

	d := &Diagram{
		Elements:      make(map[string]Element, len(raw.Elements)),
		Relationships: make(map[string]Relationship, len(rawRels)),
	}
	for id, e := range raw.Elements {
		if e.ID == "" {
			e.ID = id
		}
		if e.Kind == "" {
			e.Kind = KindClass
		}
		d.Elements[id] = e
	}
	for id, r := range rawRels {
		rel := Relationship{
			ID:                 r.ID,
			Kind:               r.Kind,
			SourceID:           r.SourceID,
			TargetID:           r.TargetID,
			SourceMultiplicity: r.SourceMultiplicity,
			TargetMultiplicity: r.TargetMultiplicity,
			Label:              r.Label,
		}
		if rel.ID == "" {
			rel.ID = id
		}
		if rel.SourceID == "" {
			rel.SourceID = r.Source
		}
		if rel.TargetID == "" {
			rel.TargetID = r.Target
		}
		rel.Kind = RelationshipKind(strings.ToLower(string(rel.Kind)))
		d.Relationships[id] = rel
	}
	return d, nil
}

// ParseDiagramString parses a diagram from a string.
func ParseDiagramString(input string) (*Diagram, error) {
	return ParseDiagram(strings.NewReader(input))
}

// SortedElements returns the diagram elements ordered by name then id,
// giving deterministic iteration over the underlying map.
func (d *Diagram) SortedElements() []Element {
	elems := make([]Element, 0, len(d.Elements))
	for _, e := range d.Elements {
		elems = append(elems, e)
	}
	sort.Slice(elems, func(i, j int) bool {
		if elems[i].Name != elems[j].Name {
			return elems[i].Name < elems[j].Name
		}
		return elems[i].ID < elems[j].ID
	})
	return elems
}

// SortedRelationships returns the diagram relationships ordered by id.
func (d *Diagram) SortedRelationships() []Relationship {
	rels := make([]Relationship, 0, len(d.Relationships))
	for _, r := range d.Relationships {
		rels = append(rels, r)
	}
	sort.Slice(rels, func(i, j int) bool { return rels[i].ID < rels[j].ID })
	return rels
}
