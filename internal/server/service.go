package server

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/rangedrill/internal/actions"
	"github.com/lox/rangedrill/internal/hands"
	"github.com/lox/rangedrill/internal/protocol"
	"github.com/lox/rangedrill/internal/randutil"
	"github.com/lox/rangedrill/internal/ranges"
)

// Service answers practice operations for a single client connection. A
// connection holds at most one active range, replaced in full by each
// successful session start.
type Service struct {
	book    *ranges.Book
	logger  *log.Logger
	rng     randutil.IntN
	all     []hands.Hand
	current *ranges.Range
}

// NewService creates a per-connection practice service.
func NewService(book *ranges.Book, logger *log.Logger) *Service {
	return &Service{
		book:   book,
		logger: logger.WithPrefix("practice"),
		rng:    randutil.New(time.Now().UnixNano()).IntN,
		all:    hands.AllHands(),
	}
}

// Positions lists the range book's positions.
func (s *Service) Positions() []string {
	return s.book.Positions()
}

// ActionsFor lists facing actions for a position.
func (s *Service) ActionsFor(position string) []string {
	return s.book.ActionsFor(position)
}

// StackDepthsFor lists stack depths for a position/action pair.
func (s *Service) StackDepthsFor(position, action string) []string {
	return s.book.StackDepthsFor(position, action)
}

// StartSession resolves the scenario to a range and activates it. A
// missing or empty range fails without touching any previous session.
func (s *Service) StartSession(position, action, depth string) protocol.SessionStartedData {
	r := s.book.Lookup(position, action, depth)
	if r == nil {
		return protocol.SessionStartedData{
			Success: false,
			Error:   fmt.Sprintf("no range for %s / %s / %s", position, action, depth),
		}
	}
	if r.Size() == 0 {
		return protocol.SessionStartedData{
			Success: false,
			Error:   fmt.Sprintf("range for %s / %s / %s is empty", position, action, depth),
		}
	}

	s.current = r
	s.logger.Info("Session started",
		"position", position, "action", action, "depth", depth,
		"rangeSize", r.Size(), "actions", r.Labels)

	return protocol.SessionStartedData{
		Success:          true,
		RangeSize:        r.Size(),
		AvailableActions: r.Labels,
	}
}

// NextHand deals a uniform random hand from all 169 classes.
func (s *Service) NextHand() (string, error) {
	if s.current == nil {
		return "", fmt.Errorf("no active practice session")
	}
	return s.all[s.rng(len(s.all))].String(), nil
}

// CheckAnswer judges a submitted action against the active range.
//
// The verdict carries the range boundary for correct non-fold answers
// (the weakest hand of the same category that still takes that action)
// and the nearest in-range hand when the player plays a hand they should
// have folded.
func (s *Service) CheckAnswer(handStr, userAction string) (protocol.VerdictData, error) {
	if s.current == nil {
		return protocol.VerdictData{}, fmt.Errorf("no active practice session")
	}

	h, err := hands.ParseHand(handStr)
	if err != nil {
		return protocol.VerdictData{}, err
	}

	actual := s.current.ActionFor(h)
	verdict := protocol.VerdictData{
		Correct:      userAction == actual,
		UserAction:   userAction,
		ActualAction: actual,
	}

	switch {
	case verdict.Correct && actual != actions.Fold:
		if bottom := hands.BottomOfCategory(h, s.current.HandsFor(actual)); bottom != nil {
			verdict.BottomOfRange = bottom.String()
		}
	case !verdict.Correct && actual == actions.Fold:
		if closest := hands.ClosestInRange(h, s.current.AllAssigned()); closest != nil {
			verdict.ClosestHand = closest.String()
		}
	}

	return verdict, nil
}
