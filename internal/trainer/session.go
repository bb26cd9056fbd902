package trainer

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/rangedrill/internal/actions"
)

// State is the session controller's lifecycle state.
type State int

const (
	StateConfiguring State = iota
	StateActive
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Session is the practice-session state machine. It owns the active
// scenario, the permitted-action vocabulary and the current hand, and
// sequences all boundary calls: at most one request of each kind is in
// flight, enforced with explicit flags rather than UI state.
//
// Failed boundary calls clear their in-flight flag before returning, so
// the same operation can be retried with a fresh call.
type Session struct {
	mu      sync.Mutex
	logger  *log.Logger
	starter SessionStarter
	feed    HandFeed
	eval    Evaluator
	stats   *Statistics

	state       State
	scenario    Scenario
	rangeSize   int
	permitted   []string
	currentHand string
	answered    bool

	startInFlight   bool
	advanceInFlight bool
	submitInFlight  bool
}

// NewSession creates a controller in the Configuring state. Statistics
// are owned by the caller and survive ReturnToMenu.
func NewSession(boundary Boundary, stats *Statistics, logger *log.Logger) *Session {
	return &Session{
		logger:  logger.WithPrefix("trainer"),
		starter: boundary,
		feed:    boundary,
		eval:    boundary,
		stats:   stats,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Scenario returns the active scenario. Zero while Configuring.
func (s *Session) Scenario() Scenario {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scenario
}

// RangeSize returns the active range's hand count.
func (s *Session) RangeSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rangeSize
}

// PermittedActions returns the session's response vocabulary, fold
// always included, in presentation order.
func (s *Session) PermittedActions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.permitted)
}

// CurrentHand returns the hand awaiting an answer, empty when none is
// dealt yet.
func (s *Session) CurrentHand() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentHand
}

// CanSubmit reports whether an answer may be submitted right now.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateActive && s.currentHand != "" && !s.answered && !s.submitInFlight
}

// Stats exposes the running counters.
func (s *Session) Stats() *Statistics {
	return s.stats
}

// Start transitions Configuring → Active for a fully resolved selection.
// On failure the controller stays in Configuring with no partial session
// state.
func (s *Session) Start(ctx context.Context, sel *Selection) (SessionInfo, error) {
	s.mu.Lock()
	if s.state == StateActive {
		s.mu.Unlock()
		return SessionInfo{}, ErrSessionActive
	}
	if s.startInFlight {
		s.mu.Unlock()
		return SessionInfo{}, ErrBusy
	}
	if !sel.Resolved() {
		s.mu.Unlock()
		return SessionInfo{}, ErrNotResolved
	}
	scenario := sel.Scenario()
	s.startInFlight = true
	s.mu.Unlock()

	info, err := s.starter.StartSession(ctx, scenario)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.startInFlight = false
	if err != nil {
		s.logger.Error("Session start failed", "scenario", scenario, "error", err)
		return SessionInfo{}, fmt.Errorf("failed to start session: %w", err)
	}

	s.state = StateActive
	s.scenario = scenario
	s.rangeSize = info.RangeSize
	s.permitted = withFold(info.AvailableActions)
	s.currentHand = ""
	s.answered = false

	s.logger.Info("Session started",
		"position", scenario.Position, "action", scenario.Action,
		"depth", scenario.StackDepth, "rangeSize", info.RangeSize,
		"permitted", s.permitted)

	info.AvailableActions = slices.Clone(s.permitted)
	return info, nil
}

// Advance fetches the next hand. The previous hand stays in place when
// the fetch fails, and answering stays disallowed until a hand arrives.
func (s *Session) Advance(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return "", ErrNotActive
	}
	if s.advanceInFlight {
		s.mu.Unlock()
		return "", ErrBusy
	}
	s.advanceInFlight = true
	s.mu.Unlock()

	hand, err := s.feed.NextHand(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceInFlight = false
	if err != nil {
		s.logger.Error("Hand fetch failed", "error", err)
		return "", fmt.Errorf("failed to fetch next hand: %w", err)
	}

	s.currentHand = hand
	s.answered = false
	return hand, nil
}

// Submit evaluates the player's answer for the current hand: exactly one
// evaluation attempt, statistics updated atomically with feedback
// construction, and no automatic advance afterwards.
func (s *Session) Submit(ctx context.Context, action string) (Verdict, Feedback, error) {
	s.mu.Lock()
	if s.state != StateActive {
		s.mu.Unlock()
		return Verdict{}, Feedback{}, ErrNotActive
	}
	if s.currentHand == "" {
		s.mu.Unlock()
		return Verdict{}, Feedback{}, ErrNoHand
	}
	if s.answered {
		s.mu.Unlock()
		return Verdict{}, Feedback{}, ErrAlreadyAnswered
	}
	if s.submitInFlight {
		s.mu.Unlock()
		return Verdict{}, Feedback{}, ErrBusy
	}
	if !slices.Contains(s.permitted, action) {
		s.mu.Unlock()
		return Verdict{}, Feedback{}, fmt.Errorf("%w: %q", ErrNotPermitted, action)
	}
	hand := s.currentHand
	s.submitInFlight = true
	s.mu.Unlock()

	verdict, err := s.eval.CheckAnswer(ctx, hand, action)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitInFlight = false
	if err != nil {
		s.logger.Error("Evaluation failed", "hand", hand, "action", action, "error", err)
		return Verdict{}, Feedback{}, fmt.Errorf("failed to check answer: %w", err)
	}

	s.stats.Record(verdict.Correct)
	s.answered = true

	return verdict, FormatFeedback(verdict), nil
}

// ReturnToMenu transitions Active → Configuring, discarding the session
// but never the statistics.
func (s *Session) ReturnToMenu() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return ErrNotActive
	}

	s.state = StateConfiguring
	s.scenario = Scenario{}
	s.rangeSize = 0
	s.permitted = nil
	s.currentHand = ""
	s.answered = false

	s.logger.Info("Returned to configuration")
	return nil
}

// withFold normalizes a server vocabulary: an absent list means legacy
// binary mode, and fold is appended exactly once as the terminal option.
func withFold(available []string) []string {
	if len(available) == 0 {
		available = []string{actions.InRange}
	}
	out := make([]string, 0, len(available)+1)
	for _, a := range available {
		if a == actions.Fold {
			continue
		}
		out = append(out, a)
	}
	return append(out, actions.Fold)
}
