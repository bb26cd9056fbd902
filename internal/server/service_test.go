package server

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rangedrill/internal/ranges"
)

const testBook = `{
	"BTN": {
		"open": {
			"100bb": "22+, A2s+, ATo+, K9s+, KJo+",
			"empty": ""
		}
	},
	"BB": {
		"3bet vs BTN": {
			"50bb": {
				"3bet": "QQ+, AKs, AKo",
				"3bet_l": "A5s-A2s, 87s, 98s",
				"call": "22-JJ, ATs+, KQs, AQo-ATo, JTs"
			}
		}
	}
}`

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := log.New(io.Discard)
	book, err := ranges.Parse([]byte(testBook), logger)
	require.NoError(t, err)
	return NewService(book, logger)
}

func TestServiceCatalog(t *testing.T) {
	s := newTestService(t)

	assert.Equal(t, []string{"BB", "BTN"}, s.Positions())
	assert.Equal(t, []string{"open"}, s.ActionsFor("BTN"))
	assert.Equal(t, []string{"100bb", "empty"}, s.StackDepthsFor("BTN", "open"))
	assert.Empty(t, s.ActionsFor("UTG"))
}

func TestStartSessionMultiAction(t *testing.T) {
	s := newTestService(t)

	resp := s.StartSession("BB", "3bet vs BTN", "50bb")
	require.True(t, resp.Success)
	assert.Equal(t, []string{"3bet", "3bet_l", "call"}, resp.AvailableActions)
	assert.Greater(t, resp.RangeSize, 0)
}

func TestStartSessionFailures(t *testing.T) {
	s := newTestService(t)

	resp := s.StartSession("BTN", "open", "200bb")
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)

	resp = s.StartSession("BTN", "open", "empty")
	assert.False(t, resp.Success)

	// A failed start never activates a session.
	_, err := s.NextHand()
	assert.Error(t, err)
}

func TestNextHandRequiresSession(t *testing.T) {
	s := newTestService(t)

	_, err := s.NextHand()
	assert.Error(t, err)

	require.True(t, s.StartSession("BTN", "open", "100bb").Success)

	s.rng = func(n int) int { return 0 }
	hand, err := s.NextHand()
	require.NoError(t, err)
	assert.Equal(t, "22", hand)
}

func TestCheckAnswerMultiAction(t *testing.T) {
	s := newTestService(t)
	require.True(t, s.StartSession("BB", "3bet vs BTN", "50bb").Success)

	// Correct 3bet carries the bottom of the pair category.
	v, err := s.CheckAnswer("AA", "3bet")
	require.NoError(t, err)
	assert.True(t, v.Correct)
	assert.Equal(t, "3bet", v.ActualAction)
	assert.Equal(t, "QQ", v.BottomOfRange)
	assert.Empty(t, v.ClosestHand)

	// Wrong label: incorrect, actual reported, no closest hand.
	v, err = s.CheckAnswer("AA", "call")
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.Equal(t, "call", v.UserAction)
	assert.Equal(t, "3bet", v.ActualAction)
	assert.Empty(t, v.ClosestHand)

	// Correct fold: no boundary hand for fold.
	v, err = s.CheckAnswer("72o", "fold")
	require.NoError(t, err)
	assert.True(t, v.Correct)
	assert.Equal(t, "fold", v.ActualAction)
	assert.Empty(t, v.BottomOfRange)

	// Playing a fold hand: nearest in-range hand comes back.
	v, err = s.CheckAnswer("T5o", "call")
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.Equal(t, "fold", v.ActualAction)
	assert.NotEmpty(t, v.ClosestHand)
}

func TestCheckAnswerBinaryMode(t *testing.T) {
	s := newTestService(t)
	resp := s.StartSession("BTN", "open", "100bb")
	require.True(t, resp.Success)
	assert.Equal(t, []string{"in_range"}, resp.AvailableActions)

	v, err := s.CheckAnswer("AA", "in_range")
	require.NoError(t, err)
	assert.True(t, v.Correct)
	assert.Equal(t, "in_range", v.ActualAction)
	assert.Equal(t, "22", v.BottomOfRange) // pairs bottom out at 22

	v, err = s.CheckAnswer("A9o", "in_range")
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.Equal(t, "fold", v.ActualAction)
	assert.Equal(t, "ATo", v.ClosestHand)
}

func TestCheckAnswerValidation(t *testing.T) {
	s := newTestService(t)

	_, err := s.CheckAnswer("AA", "3bet")
	assert.Error(t, err, "no session yet")

	require.True(t, s.StartSession("BTN", "open", "100bb").Success)
	_, err = s.CheckAnswer("notahand", "in_range")
	assert.Error(t, err)
}
