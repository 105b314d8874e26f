package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMultiplicity(t *testing.T) {
	tests := []struct {
		token    string
		kind     CardinalityKind
		optional bool
	}{
		{"*", Many, true},
		{"n", Many, false},
		{"N", Many, false},
		{"1", One, false},
		{"0", One, true},
		{"2", Many, false},
		{"0..1", One, true},
		{"1..1", One, false},
		{"0..*", Many, true},
		{"1..*", Many, false},
		{"1..n", Many, false},
		{"2..4", Many, false},
		{"0..n", Many, true},
		{" 1..* ", Many, false},
		{"", One, false},
		{"garbage", One, false},
		{"a..b", One, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			m := ParseMultiplicity(tt.token)
			assert.Equal(t, tt.kind, m.Kind, "kind for %q", tt.token)
			assert.Equal(t, tt.optional, m.Optional, "optional for %q", tt.token)
		})
	}
}
