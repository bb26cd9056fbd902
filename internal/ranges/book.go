// Package ranges loads and queries the range book: the reference mapping
// from scenario (position, action, stack depth) to the correct response
// for every starting hand.
package ranges

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/rangedrill/internal/actions"
	"github.com/lox/rangedrill/internal/hands"
)

// Range is a fully expanded scenario range. Hands absent from Assignments
// are folds. Labels is the scenario's response vocabulary in presentation
// order and never contains "fold".
type Range struct {
	Assignments map[hands.Hand]string
	Labels      []string
}

// Size returns the number of hands carrying a non-fold assignment.
func (r *Range) Size() int {
	return len(r.Assignments)
}

// ActionFor returns the reference-correct response for a hand, which is
// "fold" for hands outside the range.
func (r *Range) ActionFor(h hands.Hand) string {
	if label, ok := r.Assignments[h]; ok {
		return label
	}
	return actions.Fold
}

// HandsFor returns the set of hands assigned to one label.
func (r *Range) HandsFor(label string) hands.Set {
	set := make(hands.Set)
	for h, l := range r.Assignments {
		if l == label {
			set.Add(h)
		}
	}
	return set
}

// AllAssigned returns every hand in the range regardless of label.
func (r *Range) AllAssigned() hands.Set {
	set := make(hands.Set, len(r.Assignments))
	for h := range r.Assignments {
		set.Add(h)
	}
	return set
}

// rangeSpec is one ranges.json leaf: either a bare range string (legacy
// binary mode, normalized to the single in_range label) or a map of
// action label to range string.
type rangeSpec struct {
	simple string
	multi  map[string]string
}

func (s *rangeSpec) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &s.simple); err == nil {
		return nil
	}
	s.simple = ""
	if err := json.Unmarshal(data, &s.multi); err != nil {
		return fmt.Errorf("range must be a string or a label map: %w", err)
	}
	return nil
}

// Book is the loaded range catalog keyed position → action → stack depth.
type Book struct {
	entries map[string]map[string]map[string]*Range
	logger  *log.Logger
}

// Load reads and expands a ranges.json file.
func Load(path string, logger *log.Logger) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read range book: %w", err)
	}
	return Parse(data, logger)
}

// Parse expands range book JSON. Unparseable range terms are logged and
// skipped so one typo cannot take down the whole book.
func Parse(data []byte, logger *log.Logger) (*Book, error) {
	logger = logger.WithPrefix("ranges")

	var raw map[string]map[string]map[string]rangeSpec
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse range book: %w", err)
	}

	book := &Book{
		entries: make(map[string]map[string]map[string]*Range, len(raw)),
		logger:  logger,
	}
	for position, byAction := range raw {
		book.entries[position] = make(map[string]map[string]*Range, len(byAction))
		for action, byDepth := range byAction {
			book.entries[position][action] = make(map[string]*Range, len(byDepth))
			for depth, spec := range byDepth {
				r, err := expand(spec)
				if err != nil {
					logger.Warn("skipping malformed range terms",
						"position", position, "action", action, "depth", depth, "error", err)
				}
				book.entries[position][action][depth] = r
			}
		}
	}
	return book, nil
}

// expand normalizes both leaf shapes into a Range. Errors report skipped
// terms; the returned Range still carries everything that parsed.
func expand(spec rangeSpec) (*Range, error) {
	r := &Range{Assignments: make(map[hands.Hand]string)}

	if spec.multi == nil {
		set, err := hands.ParseRange(spec.simple)
		for h := range set {
			r.Assignments[h] = actions.InRange
		}
		r.Labels = []string{actions.InRange}
		return r, err
	}

	var firstErr error
	labels := make([]string, 0, len(spec.multi))
	for label, rangeStr := range spec.multi {
		labels = append(labels, label)
		set, err := hands.ParseRange(rangeStr)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		for h := range set {
			r.Assignments[h] = label
		}
	}

	// JSON object order is not preserved, so vocabulary order comes from
	// family precedence with an alphabetical tie-break.
	sort.Slice(labels, func(i, j int) bool {
		pi := actions.Precedence(actions.FamilyOf(labels[i]))
		pj := actions.Precedence(actions.FamilyOf(labels[j]))
		if pi != pj {
			return pi < pj
		}
		return labels[i] < labels[j]
	})
	r.Labels = labels
	return r, firstErr
}

// Positions lists the book's positions in sorted order.
func (b *Book) Positions() []string {
	return sortedKeys(b.entries)
}

// ActionsFor lists the facing actions available for a position.
func (b *Book) ActionsFor(position string) []string {
	byAction, ok := b.entries[position]
	if !ok {
		return nil
	}
	return sortedKeys(byAction)
}

// StackDepthsFor lists the stack depths available for a position/action.
func (b *Book) StackDepthsFor(position, action string) []string {
	byAction, ok := b.entries[position]
	if !ok {
		return nil
	}
	byDepth, ok := byAction[action]
	if !ok {
		return nil
	}
	return sortedKeys(byDepth)
}

// Lookup resolves a scenario to its range, or nil when absent.
func (b *Book) Lookup(position, action, depth string) *Range {
	byAction, ok := b.entries[position]
	if !ok {
		return nil
	}
	byDepth, ok := byAction[action]
	if !ok {
		return nil
	}
	return byDepth[depth]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
