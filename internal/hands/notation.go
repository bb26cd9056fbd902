package hands

import (
	"fmt"
	"strings"
)

// Set is an unordered collection of hands.
type Set map[Hand]struct{}

// Contains reports membership.
func (s Set) Contains(h Hand) bool {
	_, ok := s[h]
	return ok
}

// Add inserts a hand.
func (s Set) Add(h Hand) {
	s[h] = struct{}{}
}

// ParseRange expands compact range notation into a Set.
//
// Supported terms, comma separated:
//
//	"22+"       all pairs from 22 up to AA
//	"A5s+"      suited combos from A5s up to AKs
//	"ATo+"      offsuit combos from ATo up to AKo
//	"A5s-A9s"   explicit run, same high card, either order
//	"77-22"     pair run, either order
//	"QJo"       a single hand
//
// Terms that fail to parse are skipped; the returned error joins their
// messages so callers can log them without losing the rest of the range.
func ParseRange(spec string) (Set, error) {
	set := make(Set)
	if strings.TrimSpace(spec) == "" {
		return set, nil
	}

	var bad []string
	for _, term := range strings.Split(spec, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}

		var (
			expanded []Hand
			err      error
		)
		switch {
		case strings.HasSuffix(term, "+"):
			expanded, err = expandPlus(strings.TrimSuffix(term, "+"))
		case strings.Contains(term, "-"):
			expanded, err = expandDash(term)
		default:
			var h Hand
			h, err = ParseHand(term)
			expanded = []Hand{h}
		}
		if err != nil {
			bad = append(bad, err.Error())
			continue
		}
		for _, h := range expanded {
			set.Add(h)
		}
	}

	if len(bad) > 0 {
		return set, fmt.Errorf("unparseable range terms: %s", strings.Join(bad, "; "))
	}
	return set, nil
}

// expandPlus handles "22+", "A5s+", "ATo+". Pairs run up to AA; non-pairs
// raise the low rank to just below the high rank.
func expandPlus(base string) ([]Hand, error) {
	h, err := ParseHand(base)
	if err != nil {
		return nil, err
	}

	var out []Hand
	if h.IsPair() {
		for r := h.High; r <= Ace; r++ {
			out = append(out, Hand{High: r, Low: r})
		}
		return out, nil
	}
	for low := h.Low; low < h.High; low++ {
		out = append(out, Hand{High: h.High, Low: low, Suited: h.Suited})
	}
	return out, nil
}

// expandDash handles "A5s-A9s", "J8o-JTo" and pair runs like "77-22".
func expandDash(term string) ([]Hand, error) {
	parts := strings.Split(term, "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid dash notation %q", term)
	}
	start, err := ParseHand(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, err
	}
	end, err := ParseHand(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}

	if start.IsPair() && end.IsPair() {
		lo, hi := start.High, end.High
		if lo > hi {
			lo, hi = hi, lo
		}
		var out []Hand
		for r := lo; r <= hi; r++ {
			out = append(out, Hand{High: r, Low: r})
		}
		return out, nil
	}

	if start.High != end.High {
		return nil, fmt.Errorf("dash notation %q must share a high card", term)
	}
	if start.Suited != end.Suited {
		return nil, fmt.Errorf("dash notation %q must share suitedness", term)
	}

	lo, hi := start.Low, end.Low
	if lo > hi {
		lo, hi = hi, lo
	}
	var out []Hand
	for r := lo; r <= hi; r++ {
		out = append(out, Hand{High: start.High, Low: r, Suited: start.Suited})
	}
	return out, nil
}
