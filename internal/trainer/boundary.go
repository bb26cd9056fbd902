// Package trainer implements the practice-session core: the scenario
// selection draft, the session state machine, answer scoring and
// feedback construction. Everything that touches the range data source
// goes through the boundary interfaces below, so the core never depends
// on a transport.
package trainer

import (
	"context"
	"errors"
)

// Scenario is a fully resolved practice context.
type Scenario struct {
	Position   string
	Action     string
	StackDepth string
}

// SessionInfo is the data source's answer to a session start.
type SessionInfo struct {
	RangeSize        int
	AvailableActions []string
}

// Verdict is the evaluator's judgment of one submitted answer, already
// normalized from whichever wire shape the server speaks. BottomOfRange
// and ClosestHand are optional; empty means not provided.
type Verdict struct {
	Correct       bool
	UserAction    string
	ActualAction  string
	BottomOfRange string
	ClosestHand   string
}

// Catalog resolves the dependent chain of valid scenario values.
type Catalog interface {
	Positions(ctx context.Context) ([]string, error)
	ActionsFor(ctx context.Context, position string) ([]string, error)
	StackDepthsFor(ctx context.Context, position, action string) ([]string, error)
}

// SessionStarter initializes a practice session for a scenario.
type SessionStarter interface {
	StartSession(ctx context.Context, scenario Scenario) (SessionInfo, error)
}

// HandFeed supplies the next hand to evaluate.
type HandFeed interface {
	NextHand(ctx context.Context) (string, error)
}

// Evaluator judges a submitted action against the reference range.
type Evaluator interface {
	CheckAnswer(ctx context.Context, hand, action string) (Verdict, error)
}

// Boundary bundles everything the session needs from the data source.
type Boundary interface {
	Catalog
	SessionStarter
	HandFeed
	Evaluator
}

// State machine and sequencing errors. ErrBusy and the precondition
// errors signal misuse of the controller, not data-source failures.
var (
	ErrNotResolved     = errors.New("scenario is not fully resolved")
	ErrSessionActive   = errors.New("a session is already active")
	ErrNotActive       = errors.New("no active session")
	ErrBusy            = errors.New("a request of this kind is already in flight")
	ErrNoHand          = errors.New("no hand has been dealt")
	ErrAlreadyAnswered = errors.New("current hand has already been answered")
	ErrNotPermitted    = errors.New("action is not in the session vocabulary")
)
