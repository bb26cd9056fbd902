// Package hands models the 169 preflop starting-hand classes and the
// compact range notation used to describe sets of them.
package hands

import "fmt"

// Rank represents a card rank in preflop shorthand order.
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankChars = "23456789TJQKA"

// String returns the single-character shorthand for a rank.
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankChars[r])
}

// ParseRank converts a shorthand character to a Rank. Case is folded, so
// ranks tolerate lowercase the same way the suit designator does.
func ParseRank(c byte) (Rank, error) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	for i := 0; i < len(rankChars); i++ {
		if rankChars[i] == c {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("invalid rank %q", string(c))
}

// Hand is a starting-hand class in standard shorthand: "AA", "AKs", "T9o".
// High rank always comes first. Identity is by value, so hands are usable
// as map keys and compare with ==.
type Hand struct {
	High   Rank
	Low    Rank
	Suited bool
}

// ParseHand parses and canonicalizes shorthand notation. The rank order is
// normalized ("KAs" becomes "AKs") and non-pair hands must carry an 's' or
// 'o' designator.
func ParseHand(s string) (Hand, error) {
	if len(s) < 2 || len(s) > 3 {
		return Hand{}, fmt.Errorf("invalid hand %q", s)
	}

	r1, err := ParseRank(s[0])
	if err != nil {
		return Hand{}, fmt.Errorf("invalid hand %q: %w", s, err)
	}
	r2, err := ParseRank(s[1])
	if err != nil {
		return Hand{}, fmt.Errorf("invalid hand %q: %w", s, err)
	}
	if r1 < r2 {
		r1, r2 = r2, r1
	}

	if r1 == r2 {
		if len(s) == 3 {
			return Hand{}, fmt.Errorf("pair %q cannot be suited or offsuit", s)
		}
		return Hand{High: r1, Low: r2}, nil
	}

	if len(s) != 3 {
		return Hand{}, fmt.Errorf("non-pair hand %q must end in 's' or 'o'", s)
	}
	switch s[2] {
	case 's', 'S':
		return Hand{High: r1, Low: r2, Suited: true}, nil
	case 'o', 'O':
		return Hand{High: r1, Low: r2}, nil
	default:
		return Hand{}, fmt.Errorf("invalid suit designator in %q", s)
	}
}

// MustParseHand is ParseHand for literals in tests and tables.
func MustParseHand(s string) Hand {
	h, err := ParseHand(s)
	if err != nil {
		panic(err)
	}
	return h
}

// IsPair reports whether both ranks match.
func (h Hand) IsPair() bool {
	return h.High == h.Low
}

// String returns the canonical shorthand notation.
func (h Hand) String() string {
	if h.IsPair() {
		return h.High.String() + h.Low.String()
	}
	suffix := "o"
	if h.Suited {
		suffix = "s"
	}
	return h.High.String() + h.Low.String() + suffix
}

// AllHands returns all 169 starting-hand classes: 13 pairs, 78 suited and
// 78 offsuit combos.
func AllHands() []Hand {
	hands := make([]Hand, 0, 169)
	for r := Two; r <= Ace; r++ {
		hands = append(hands, Hand{High: r, Low: r})
	}
	for high := Three; high <= Ace; high++ {
		for low := Two; low < high; low++ {
			hands = append(hands, Hand{High: high, Low: low, Suited: true})
			hands = append(hands, Hand{High: high, Low: low, Suited: false})
		}
	}
	return hands
}
