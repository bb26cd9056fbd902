// Package protocol defines the websocket message envelope and payloads
// for the practice protocol. Every client request carries a requestId and
// receives exactly one response with the same id.
package protocol

import (
	"encoding/json"
	"time"
)

// MessageType represents a websocket message type with type safety.
type MessageType string

const (
	// Client to server messages
	MessageTypeListPositions   MessageType = "list_positions"
	MessageTypeListActions     MessageType = "list_actions"
	MessageTypeListStackDepths MessageType = "list_stack_depths"
	MessageTypeStartSession    MessageType = "start_session"
	MessageTypeNextHand        MessageType = "next_hand"
	MessageTypeCheckAnswer     MessageType = "check_answer"

	// Server to client messages
	MessageTypePositionList   MessageType = "position_list"
	MessageTypeActionList     MessageType = "action_list"
	MessageTypeStackDepthList MessageType = "stack_depth_list"
	MessageTypeSessionStarted MessageType = "session_started"
	MessageTypeHand           MessageType = "hand"
	MessageTypeVerdict        MessageType = "verdict"
	MessageTypeError          MessageType = "error"
)

// String returns the string representation of the message type.
func (mt MessageType) String() string {
	return string(mt)
}

// Message is the base websocket message structure.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server payloads

type ListActionsData struct {
	Position string `json:"position"`
}

type ListStackDepthsData struct {
	Position string `json:"position"`
	Action   string `json:"action"`
}

type StartSessionData struct {
	Position   string `json:"position"`
	Action     string `json:"action"`
	StackDepth string `json:"stackDepth"`
}

type CheckAnswerData struct {
	Hand   string `json:"hand"`
	Action string `json:"action"`
}

// Server → Client payloads

type LabelListData struct {
	Labels []string `json:"labels"`
}

type SessionStartedData struct {
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	RangeSize int    `json:"rangeSize"`
	// AvailableActions is omitted by legacy binary-mode servers; clients
	// default it to ["in_range"].
	AvailableActions []string `json:"availableActions,omitempty"`
}

type HandData struct {
	Hand string `json:"hand"`
}

// VerdictData is the multi-action verdict shape. The legacy binary shape
// (InRange/ActuallyInRange) is still decoded for older servers; exactly
// one of the two shapes is populated per message.
type VerdictData struct {
	Correct       bool   `json:"correct"`
	UserAction    string `json:"userAction,omitempty"`
	ActualAction  string `json:"actualAction,omitempty"`
	BottomOfRange string `json:"bottomOfRange,omitempty"`
	ClosestHand   string `json:"closestHand,omitempty"`

	// Legacy binary-mode fields
	InRange         *bool `json:"in_range,omitempty"`
	ActuallyInRange *bool `json:"actually_in_range,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned by the server.
const (
	ErrCodeNoSession    = "no_session"
	ErrCodeRangeMissing = "range_not_found"
	ErrCodeBadRequest   = "bad_request"
	ErrCodeInternal     = "internal"
)
