// Package actions classifies response-action labels into display families.
// Range books use an open vocabulary ("3bet", "3bet_l", "call", "limp",
// "in_range", ...), so classification works from an exact table with a
// longest-prefix fallback and an explicit default for unknown labels.
package actions

import "strings"

// Fold is the universal "not in range" response. It is never a member of
// a range book's vocabulary; clients append it to every session.
const Fold = "fold"

// InRange is the single label of legacy binary-mode ranges.
const InRange = "in_range"

// Family is the display category of an action label.
type Family int

const (
	FamilyRaise Family = iota
	FamilyCall
	FamilyPassive
	FamilyFold
	FamilyUnknown
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyRaise:
		return "raise"
	case FamilyCall:
		return "call"
	case FamilyPassive:
		return "passive"
	case FamilyFold:
		return "fold"
	default:
		return "unknown"
	}
}

var exact = map[string]Family{
	Fold:    FamilyFold,
	"call":  FamilyCall,
	InRange: FamilyCall,
	"limp":  FamilyPassive,
	"check": FamilyPassive,
	"open":  FamilyRaise,
	"raise": FamilyRaise,
	"3bet":  FamilyRaise,
	"4bet":  FamilyRaise,
	"5bet":  FamilyRaise,
	"shove": FamilyRaise,
	"jam":   FamilyRaise,
	"iso":   FamilyRaise,
}

// FamilyOf maps a label to its family. Variant labels resolve through
// their longest known prefix, so "3bet_l" and "3bet_bluff" land in the
// raise family alongside "3bet". Unrecognized labels are FamilyUnknown.
func FamilyOf(label string) Family {
	label = strings.ToLower(strings.TrimSpace(label))
	if f, ok := exact[label]; ok {
		return f
	}

	best := FamilyUnknown
	bestLen := 0
	for prefix, f := range exact {
		if len(prefix) > bestLen && strings.HasPrefix(label, prefix) {
			best = f
			bestLen = len(prefix)
		}
	}
	return best
}

// Precedence orders families for presenting a vocabulary: aggressive
// actions first, fold always last.
func Precedence(f Family) int {
	switch f {
	case FamilyRaise:
		return 0
	case FamilyCall:
		return 1
	case FamilyPassive:
		return 2
	case FamilyUnknown:
		return 3
	case FamilyFold:
		return 4
	default:
		return 5
	}
}
