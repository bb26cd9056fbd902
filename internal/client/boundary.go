package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lox/rangedrill/internal/actions"
	"github.com/lox/rangedrill/internal/protocol"
	"github.com/lox/rangedrill/internal/trainer"
)

// The client is the trainer's data-source boundary.
var _ trainer.Boundary = (*Client)(nil)

// Positions lists the catalog's positions.
func (c *Client) Positions(ctx context.Context) ([]string, error) {
	resp, err := c.request(ctx, protocol.MessageTypeListPositions, nil)
	if err != nil {
		return nil, err
	}
	return decodeLabels(resp.Data)
}

// ActionsFor lists facing actions for a position.
func (c *Client) ActionsFor(ctx context.Context, position string) ([]string, error) {
	resp, err := c.request(ctx, protocol.MessageTypeListActions,
		protocol.ListActionsData{Position: position})
	if err != nil {
		return nil, err
	}
	return decodeLabels(resp.Data)
}

// StackDepthsFor lists stack depths for a position/action pair.
func (c *Client) StackDepthsFor(ctx context.Context, position, action string) ([]string, error) {
	resp, err := c.request(ctx, protocol.MessageTypeListStackDepths,
		protocol.ListStackDepthsData{Position: position, Action: action})
	if err != nil {
		return nil, err
	}
	return decodeLabels(resp.Data)
}

// StartSession asks the server to activate a scenario's range.
func (c *Client) StartSession(ctx context.Context, scenario trainer.Scenario) (trainer.SessionInfo, error) {
	resp, err := c.request(ctx, protocol.MessageTypeStartSession, protocol.StartSessionData{
		Position:   scenario.Position,
		Action:     scenario.Action,
		StackDepth: scenario.StackDepth,
	})
	if err != nil {
		return trainer.SessionInfo{}, err
	}

	var data protocol.SessionStartedData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return trainer.SessionInfo{}, fmt.Errorf("failed to decode session response: %w", err)
	}
	return sessionInfoFrom(data)
}

// NextHand fetches the next hand to evaluate.
func (c *Client) NextHand(ctx context.Context) (string, error) {
	resp, err := c.request(ctx, protocol.MessageTypeNextHand, nil)
	if err != nil {
		return "", err
	}

	var data protocol.HandData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to decode hand: %w", err)
	}
	if data.Hand == "" {
		return "", errors.New("server returned an empty hand")
	}
	return data.Hand, nil
}

// CheckAnswer submits an answer and normalizes the verdict.
func (c *Client) CheckAnswer(ctx context.Context, hand, action string) (trainer.Verdict, error) {
	resp, err := c.request(ctx, protocol.MessageTypeCheckAnswer,
		protocol.CheckAnswerData{Hand: hand, Action: action})
	if err != nil {
		return trainer.Verdict{}, err
	}

	var data protocol.VerdictData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return trainer.Verdict{}, fmt.Errorf("failed to decode verdict: %w", err)
	}
	return normalizeVerdict(data), nil
}

// sessionInfoFrom validates a start response. availableActions may be
// absent on legacy binary-mode servers, in which case the vocabulary
// defaults to the single in_range action.
func sessionInfoFrom(data protocol.SessionStartedData) (trainer.SessionInfo, error) {
	if !data.Success {
		if data.Error != "" {
			return trainer.SessionInfo{}, fmt.Errorf("session rejected: %s", data.Error)
		}
		return trainer.SessionInfo{}, errors.New("session rejected")
	}

	available := data.AvailableActions
	if len(available) == 0 {
		available = []string{actions.InRange}
	}
	return trainer.SessionInfo{
		RangeSize:        data.RangeSize,
		AvailableActions: available,
	}, nil
}

// normalizeVerdict maps both wire shapes onto the trainer's verdict so
// the core never special-cases the legacy binary mode.
func normalizeVerdict(data protocol.VerdictData) trainer.Verdict {
	v := trainer.Verdict{
		Correct:       data.Correct,
		UserAction:    data.UserAction,
		ActualAction:  data.ActualAction,
		BottomOfRange: data.BottomOfRange,
		ClosestHand:   data.ClosestHand,
	}

	if data.ActuallyInRange != nil {
		v.ActualAction = binaryAction(*data.ActuallyInRange)
		if data.InRange != nil {
			v.UserAction = binaryAction(*data.InRange)
		}
	}
	return v
}

func binaryAction(inRange bool) string {
	if inRange {
		return actions.InRange
	}
	return actions.Fold
}

func decodeLabels(data json.RawMessage) ([]string, error) {
	var list protocol.LabelListData
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to decode label list: %w", err)
	}
	return list.Labels, nil
}
