// Package model defines the logical class-diagram model: elements with
// raw attribute declarations and typed relationships between them. The
// diagram is produced by the editing subsystem and is read-only input to
// the transformation engine.
package model

// ElementKind is the kind of a diagram element.
type ElementKind string

const (
	KindClass     ElementKind = "class"
	KindInterface ElementKind = "interface"
	KindEnum      ElementKind = "enum"
	KindNote      ElementKind = "note"
)

// RelationshipKind is the kind of a diagram relationship. Only
// association, aggregation, composition and generalization affect the
// relational schema; dependency and realization are ignored by the engine.
type RelationshipKind string

const (
	Association    RelationshipKind = "association"
	Aggregation    RelationshipKind = "aggregation"
	Composition    RelationshipKind = "composition"
	Generalization RelationshipKind = "generalization"
	Dependency     RelationshipKind = "dependency"
	Realization    RelationshipKind = "realization"
)

// AffectsSchema reports whether relationships of this kind contribute
// foreign keys or junction tables to the physical model.
func (k RelationshipKind) AffectsSchema() bool {
	switch k {
	case Association, Aggregation, Composition, Generalization:
		return true
	default:
		return false
	}
}

// Element is a single diagram node. Attributes and Methods hold the raw
// declaration strings as typed in the editor; methods are carried through
// untouched and never transformed.
type Element struct {
	ID         string      `json:"id"`
	Kind       ElementKind `json:"kind"`
	Name       string      `json:"name"`
	Attributes []string    `json:"attributes"`
	Methods    []string    `json:"methods,omitempty"`
}

// Relationship is a typed edge between two elements, with UML
// multiplicity strings on both ends.
type Relationship struct {
	ID                 string           `json:"id"`
	Kind               RelationshipKind `json:"kind"`
	SourceID           string           `json:"sourceId"`
	TargetID           string           `json:"targetId"`
	SourceMultiplicity string           `json:"sourceMultiplicity,omitempty"`
	TargetMultiplicity string           `json:"targetMultiplicity,omitempty"`
	Label              string           `json:"label,omitempty"`
}

// Diagram is one logical model: element and relationship maps keyed by id.
type Diagram struct {
	Elements      map[string]Element      `json:"elements"`
	Relationships map[string]Relationship `json:"relationships"`
}

// Element returns the element with the given id, or nil.
func (d *Diagram) Element(id string) *Element {
	if e, ok := d.Elements[id]; ok {
		return &e
	}
	return nil
}
