package trainer

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBoundary is a scripted data source for controller tests.
type fakeBoundary struct {
	startInfo  SessionInfo
	startErr   error
	startCalls int

	hands    []string
	handErr  error
	handIdx  int

	verdict   Verdict
	evalErr   error
	evalCalls int
}

func (f *fakeBoundary) Positions(ctx context.Context) ([]string, error) {
	return []string{"BTN", "BB"}, nil
}

func (f *fakeBoundary) ActionsFor(ctx context.Context, position string) ([]string, error) {
	return []string{"open"}, nil
}

func (f *fakeBoundary) StackDepthsFor(ctx context.Context, position, action string) ([]string, error) {
	return []string{"100bb"}, nil
}

func (f *fakeBoundary) StartSession(ctx context.Context, scenario Scenario) (SessionInfo, error) {
	f.startCalls++
	if f.startErr != nil {
		return SessionInfo{}, f.startErr
	}
	return f.startInfo, nil
}

func (f *fakeBoundary) NextHand(ctx context.Context) (string, error) {
	if f.handErr != nil {
		return "", f.handErr
	}
	hand := f.hands[f.handIdx%len(f.hands)]
	f.handIdx++
	return hand, nil
}

func (f *fakeBoundary) CheckAnswer(ctx context.Context, hand, action string) (Verdict, error) {
	f.evalCalls++
	if f.evalErr != nil {
		return Verdict{}, f.evalErr
	}
	return f.verdict, nil
}

func resolvedSelection() *Selection {
	sel := &Selection{}
	sel.SetPosition("BTN")
	sel.SetAction("open")
	sel.SetStackDepth("100bb")
	return sel
}

func newTestSession(boundary *fakeBoundary) *Session {
	return NewSession(boundary, NewStatistics(), log.New(io.Discard))
}

func TestSelectionCascade(t *testing.T) {
	sel := &Selection{}
	assert.False(t, sel.Resolved())

	// Dependent stages are ignored until their prerequisite is set.
	sel.SetAction("open")
	assert.Empty(t, sel.Action())
	sel.SetStackDepth("100bb")
	assert.Empty(t, sel.StackDepth())

	sel.SetPosition("BTN")
	sel.SetAction("open")
	sel.SetStackDepth("100bb")
	assert.True(t, sel.Resolved())

	// Changing the action resets the depth.
	sel.SetAction("3bet vs CO")
	assert.Empty(t, sel.StackDepth())
	assert.False(t, sel.Resolved())

	// Changing the position resets both.
	sel.SetStackDepth("50bb")
	sel.SetPosition("BB")
	assert.Empty(t, sel.Action())
	assert.Empty(t, sel.StackDepth())
}

func TestStartSession(t *testing.T) {
	boundary := &fakeBoundary{
		startInfo: SessionInfo{RangeSize: 42, AvailableActions: []string{"3bet", "call"}},
		hands:     []string{"AKs"},
	}
	s := newTestSession(boundary)
	require.Equal(t, StateConfiguring, s.State())

	info, err := s.Start(context.Background(), resolvedSelection())
	require.NoError(t, err)

	assert.Equal(t, StateActive, s.State())
	assert.Equal(t, 42, s.RangeSize())
	assert.Equal(t, []string{"3bet", "call", "fold"}, info.AvailableActions)
	assert.Equal(t, []string{"3bet", "call", "fold"}, s.PermittedActions())
	assert.Empty(t, s.CurrentHand())
	assert.False(t, s.CanSubmit())
}

func TestStartSessionFoldAppendedExactlyOnce(t *testing.T) {
	boundary := &fakeBoundary{
		startInfo: SessionInfo{RangeSize: 10, AvailableActions: []string{"3bet", "fold", "call"}},
	}
	s := newTestSession(boundary)

	_, err := s.Start(context.Background(), resolvedSelection())
	require.NoError(t, err)
	assert.Equal(t, []string{"3bet", "call", "fold"}, s.PermittedActions())
}

func TestStartSessionDefaultsToBinaryVocabulary(t *testing.T) {
	boundary := &fakeBoundary{startInfo: SessionInfo{RangeSize: 20}}
	s := newTestSession(boundary)

	_, err := s.Start(context.Background(), resolvedSelection())
	require.NoError(t, err)
	assert.Equal(t, []string{"in_range", "fold"}, s.PermittedActions())
}

func TestStartSessionRequiresResolvedSelection(t *testing.T) {
	boundary := &fakeBoundary{}
	s := newTestSession(boundary)

	sel := &Selection{}
	sel.SetPosition("BTN")

	_, err := s.Start(context.Background(), sel)
	assert.ErrorIs(t, err, ErrNotResolved)
	assert.Zero(t, boundary.startCalls, "boundary must not be called for an unresolved selection")
}

func TestStartSessionFailureLeavesConfiguring(t *testing.T) {
	boundary := &fakeBoundary{startErr: errors.New("range not found")}
	s := newTestSession(boundary)

	_, err := s.Start(context.Background(), resolvedSelection())
	require.Error(t, err)

	assert.Equal(t, StateConfiguring, s.State())
	assert.Zero(t, s.RangeSize())
	assert.Empty(t, s.PermittedActions())

	// The failure cleared the in-flight flag: retry works.
	boundary.startErr = nil
	boundary.startInfo = SessionInfo{RangeSize: 5}
	_, err = s.Start(context.Background(), resolvedSelection())
	assert.NoError(t, err)
}

func TestStartSessionNotCallableWhileActive(t *testing.T) {
	boundary := &fakeBoundary{startInfo: SessionInfo{RangeSize: 5}}
	s := newTestSession(boundary)

	_, err := s.Start(context.Background(), resolvedSelection())
	require.NoError(t, err)

	_, err = s.Start(context.Background(), resolvedSelection())
	assert.ErrorIs(t, err, ErrSessionActive)
}

func TestAdvance(t *testing.T) {
	boundary := &fakeBoundary{
		startInfo: SessionInfo{RangeSize: 5},
		hands:     []string{"AKs", "72o"},
	}
	s := newTestSession(boundary)

	_, err := s.Advance(context.Background())
	assert.ErrorIs(t, err, ErrNotActive)

	_, err = s.Start(context.Background(), resolvedSelection())
	require.NoError(t, err)

	hand, err := s.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKs", hand)
	assert.Equal(t, "AKs", s.CurrentHand())
	assert.True(t, s.CanSubmit())
}

func TestAdvanceFailureKeepsSessionActive(t *testing.T) {
	boundary := &fakeBoundary{
		startInfo: SessionInfo{RangeSize: 5},
		hands:     []string{"AKs"},
	}
	s := newTestSession(boundary)
	_, err := s.Start(context.Background(), resolvedSelection())
	require.NoError(t, err)

	boundary.handErr = errors.New("connection lost")
	_, err = s.Advance(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateActive, s.State())
	assert.Empty(t, s.CurrentHand())
	assert.False(t, s.CanSubmit())

	// Explicit retry succeeds once the feed recovers.
	boundary.handErr = nil
	hand, err := s.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKs", hand)
}

func TestSubmitCorrectAnswer(t *testing.T) {
	boundary := &fakeBoundary{
		startInfo: SessionInfo{RangeSize: 30, AvailableActions: []string{"3bet", "call"}},
		hands:     []string{"ATs"},
		verdict: Verdict{
			Correct:       true,
			UserAction:    "call",
			ActualAction:  "call",
			BottomOfRange: "A9s",
		},
	}
	s := newTestSession(boundary)
	_, err := s.Start(context.Background(), resolvedSelection())
	require.NoError(t, err)
	_, err = s.Advance(context.Background())
	require.NoError(t, err)

	verdict, fb, err := s.Submit(context.Background(), "call")
	require.NoError(t, err)

	assert.True(t, verdict.Correct)
	assert.Equal(t, TitleCorrect, fb.Title)
	require.Len(t, fb.Detail, 2)
	assert.Contains(t, fb.Detail[0], "call")
	assert.Contains(t, fb.Detail[1], "A9s")
	assert.Equal(t, "call", fb.EmphasizedAction)

	assert.Equal(t, 1, s.Stats().Correct())
	assert.Equal(t, 1, s.Stats().Total())
	assert.Equal(t, "100.0%", s.Stats().FormatAccuracy())

	// Answered: no resubmission until the next hand.
	assert.False(t, s.CanSubmit())
	_, _, err = s.Submit(context.Background(), "call")
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestSubmitIncorrectFold(t *testing.T) {
	boundary := &fakeBoundary{
		startInfo: SessionInfo{RangeSize: 30, AvailableActions: []string{"3bet", "call"}},
		hands:     []string{"KJo"},
		verdict: Verdict{
			Correct:      false,
			UserAction:   "fold",
			ActualAction: "3bet",
			ClosestHand:  "KQo",
		},
	}
	s := newTestSession(boundary)
	_, err := s.Start(context.Background(), resolvedSelection())
	require.NoError(t, err)
	_, err = s.Advance(context.Background())
	require.NoError(t, err)

	_, fb, err := s.Submit(context.Background(), "fold")
	require.NoError(t, err)

	assert.Equal(t, TitleIncorrect, fb.Title)
	require.Len(t, fb.Detail, 3)
	assert.Contains(t, fb.Detail[0], "fold")
	assert.Contains(t, fb.Detail[1], "3bet")
	assert.Contains(t, fb.Detail[2], "KQo")
	assert.Equal(t, "3bet", fb.EmphasizedAction)

	assert.Equal(t, 0, s.Stats().Correct())
	assert.Equal(t, 1, s.Stats().Total())
}

func TestSubmitPreconditions(t *testing.T) {
	boundary := &fakeBoundary{
		startInfo: SessionInfo{RangeSize: 5, AvailableActions: []string{"call"}},
		hands:     []string{"AKs"},
	}
	s := newTestSession(boundary)

	_, _, err := s.Submit(context.Background(), "call")
	assert.ErrorIs(t, err, ErrNotActive)

	_, err = s.Start(context.Background(), resolvedSelection())
	require.NoError(t, err)

	// No hand dealt yet.
	_, _, err = s.Submit(context.Background(), "call")
	assert.ErrorIs(t, err, ErrNoHand)

	_, err = s.Advance(context.Background())
	require.NoError(t, err)

	// An action outside the vocabulary is a programming error.
	_, _, err = s.Submit(context.Background(), "allin")
	assert.ErrorIs(t, err, ErrNotPermitted)
	assert.Zero(t, boundary.evalCalls)
}

func TestSubmitFailureLeavesStatisticsUntouched(t *testing.T) {
	boundary := &fakeBoundary{
		startInfo: SessionInfo{RangeSize: 5, AvailableActions: []string{"call"}},
		hands:     []string{"AKs"},
		evalErr:   errors.New("connection lost"),
	}
	s := newTestSession(boundary)
	_, err := s.Start(context.Background(), resolvedSelection())
	require.NoError(t, err)
	_, err = s.Advance(context.Background())
	require.NoError(t, err)

	_, _, err = s.Submit(context.Background(), "call")
	require.Error(t, err)

	assert.Zero(t, s.Stats().Total())
	assert.Equal(t, 1, boundary.evalCalls, "exactly one evaluation attempt per submit")

	// The hand is still unanswered; an explicit retry evaluates again.
	boundary.evalErr = nil
	boundary.verdict = Verdict{Correct: true, UserAction: "call", ActualAction: "call"}
	_, _, err = s.Submit(context.Background(), "call")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Stats().Total())
	assert.Equal(t, 2, boundary.evalCalls)
}

func TestReturnToMenu(t *testing.T) {
	boundary := &fakeBoundary{
		startInfo: SessionInfo{RangeSize: 5, AvailableActions: []string{"call"}},
		hands:     []string{"AKs"},
		verdict:   Verdict{Correct: true, UserAction: "call", ActualAction: "call"},
	}
	s := newTestSession(boundary)

	assert.ErrorIs(t, s.ReturnToMenu(), ErrNotActive)

	_, err := s.Start(context.Background(), resolvedSelection())
	require.NoError(t, err)
	_, err = s.Advance(context.Background())
	require.NoError(t, err)
	_, _, err = s.Submit(context.Background(), "call")
	require.NoError(t, err)

	require.NoError(t, s.ReturnToMenu())

	assert.Equal(t, StateConfiguring, s.State())
	assert.Empty(t, s.CurrentHand())
	assert.Empty(t, s.PermittedActions())
	assert.Equal(t, Scenario{}, s.Scenario())

	// Statistics survive the session.
	assert.Equal(t, 1, s.Stats().Total())
	assert.Equal(t, 1, s.Stats().Correct())
}
