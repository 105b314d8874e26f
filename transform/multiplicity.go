package transform

import (
	"strconv"
	"strings"
)

// CardinalityKind classifies a multiplicity end as one or many.
type CardinalityKind string

const (
	// One means the effective maximum is at most a single instance.
	One CardinalityKind = "one"
	// Many means the effective maximum exceeds a single instance.
	Many CardinalityKind = "many"
)

// Multiplicity is the parsed form of a UML cardinality token.
type Multiplicity struct {
	Kind     CardinalityKind
	Optional bool
}

// IsMany reports whether the end admits more than one instance.
func (m Multiplicity) IsMany() bool { return m.Kind == Many }

// ParseMultiplicity parses a cardinality token: `*`, `n`/`N`, a bare
// integer, or a `min..max` range where max may be `*` or `n`. Unparseable
// input defaults to one and non-optional, which forces a NOT NULL column
// rather than silently widening nullability.
func ParseMultiplicity(token string) Multiplicity {
	token = strings.TrimSpace(token)

	switch token {
	case "*":
		return Multiplicity{Kind: Many, Optional: true}
	case "n", "N":
		return Multiplicity{Kind: Many}
	case "":
		return Multiplicity{Kind: One}
	}

	if lower, upper, ok := strings.Cut(token, ".."); ok {
		result := Multiplicity{Kind: One}
		if minVal, err := strconv.Atoi(strings.TrimSpace(lower)); err == nil && minVal == 0 {
			result.Optional = true
		}
		upper = strings.TrimSpace(upper)
		if upper == "*" || upper == "n" || upper == "N" {
			result.Kind = Many
			return result
		}
		if maxVal, err := strconv.Atoi(upper); err == nil && maxVal > 1 {
			result.Kind = Many
		}
		return result
	}

	if val, err := strconv.Atoi(token); err == nil {
		m := Multiplicity{Kind: One}
		if val > 1 {
			m.Kind = Many
		}
		if val == 0 {
			m.Optional = true
		}
		return m
	}

	return Multiplicity{Kind: One}
}
