package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		label string
		want  Family
	}{
		{"fold", FamilyFold},
		{"call", FamilyCall},
		{"in_range", FamilyCall},
		{"limp", FamilyPassive},
		{"check", FamilyPassive},
		{"3bet", FamilyRaise},
		{"4bet", FamilyRaise},
		{"open", FamilyRaise},
		{"shove", FamilyRaise},

		// Variant labels resolve through their prefix.
		{"3bet_l", FamilyRaise},
		{"3bet_bluff", FamilyRaise},
		{"call_wide", FamilyCall},
		{"raise_small", FamilyRaise},

		// Case and whitespace are tolerated.
		{" 3BET ", FamilyRaise},

		// Unknown labels get the explicit default, not a guess.
		{"donk", FamilyUnknown},
		{"", FamilyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, FamilyOf(tt.label))
		})
	}
}

func TestPrecedenceOrdersFoldLast(t *testing.T) {
	assert.Less(t, Precedence(FamilyRaise), Precedence(FamilyCall))
	assert.Less(t, Precedence(FamilyCall), Precedence(FamilyPassive))
	assert.Less(t, Precedence(FamilyPassive), Precedence(FamilyUnknown))
	assert.Less(t, Precedence(FamilyUnknown), Precedence(FamilyFold))
}
