package hands

// ClosestInRange finds the range member nearest to h, used to show a
// player the boundary they missed. Pairs are matched against pairs by
// rank distance; non-pairs prefer candidates with the same suitedness and
// order by high-card distance, then low-card distance. Returns nil when
// the range offers no candidate.
func ClosestInRange(h Hand, set Set) *Hand {
	if len(set) == 0 {
		return nil
	}

	if h.IsPair() {
		var best *Hand
		for member := range set {
			if !member.IsPair() {
				continue
			}
			m := member
			if best == nil {
				best = &m
				continue
			}
			d, bd := absRank(m.High, h.High), absRank(best.High, h.High)
			if d < bd || (d == bd && m.High > best.High) {
				best = &m
			}
		}
		if best != nil {
			return best
		}
		// No pairs in range, fall through to non-pair matching.
	}

	candidates := make([]Hand, 0, len(set))
	for member := range set {
		if member.IsPair() {
			continue
		}
		if member.Suited == h.Suited {
			candidates = append(candidates, member)
		}
	}
	if len(candidates) == 0 {
		for member := range set {
			if !member.IsPair() {
				candidates = append(candidates, member)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if closerTo(h, c, best) {
			best = c
		}
	}
	return &best
}

// BottomOfCategory finds the weakest range member in h's category: same
// high card and suitedness for non-pairs, the lowest pair for pairs.
// Returns nil when the range holds nothing in that category.
func BottomOfCategory(h Hand, set Set) *Hand {
	var best *Hand
	for member := range set {
		m := member
		if h.IsPair() {
			if !m.IsPair() {
				continue
			}
			if best == nil || m.High < best.High {
				best = &m
			}
			continue
		}
		if m.IsPair() || m.High != h.High || m.Suited != h.Suited {
			continue
		}
		if best == nil || m.Low < best.Low {
			best = &m
		}
	}
	return best
}

// closerTo reports whether a is closer to h than b, comparing high-card
// distance before low-card distance. Canonical string order breaks full
// ties so map iteration order cannot flip the result.
func closerTo(h, a, b Hand) bool {
	ah, bh := absRank(a.High, h.High), absRank(b.High, h.High)
	if ah != bh {
		return ah < bh
	}
	al, bl := absRank(a.Low, h.Low), absRank(b.Low, h.Low)
	if al != bl {
		return al < bl
	}
	return a.String() < b.String()
}

func absRank(a, b Rank) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
