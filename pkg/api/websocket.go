package api

import "encoding/json"

type (
	// EventType identifies the kind of change a builder reports
	EventType string

	// ChangeEvent is published after every successful builder mutation and
	// around ticket submissions
	ChangeEvent struct {
		Type      EventType     `json:"type"`
		SessionID SessionID     `json:"session_id"`
		Version   int64         `json:"version"`
		Selection Selection     `json:"selection"`
		Submit    *SubmitStatus `json:"submit,omitempty"`
		Timestamp int64         `json:"timestamp"`
	}

	// WebSocketEvent is an event sent to WebSocket clients
	WebSocketEvent struct {
		Type      EventType       `json:"type"`
		SessionID SessionID       `json:"session_id"`
		Data      json.RawMessage `json:"data"`
		Timestamp int64           `json:"timestamp"`
		Version   int64           `json:"version"`
	}

	// SubscribeRequest is sent by clients to narrow the event types they
	// receive
	SubscribeRequest struct {
		Type string             `json:"type"`
		Data ClientSubscription `json:"data"`
	}

	// ClientSubscription configures which events a WebSocket client receives
	ClientSubscription struct {
		EventTypes []EventType `json:"event_types,omitempty"`
	}

	// SubscribedResult is sent to clients with the current session state
	// when they connect
	SubscribedResult struct {
		Type      string          `json:"type"`
		SessionID SessionID       `json:"session_id"`
		Data      json.RawMessage `json:"data"`
		Version   int64           `json:"version"`
	}
)

const (
	EventTypeStepAdded           EventType = "step_added"
	EventTypeStepRemoved         EventType = "step_removed"
	EventTypeStepsReordered      EventType = "steps_reordered"
	EventTypeStepToggled         EventType = "step_toggled"
	EventTypeSelectionCleared    EventType = "selection_cleared"
	EventTypeParameterAdded      EventType = "parameter_added"
	EventTypeParameterUpdated    EventType = "parameter_updated"
	EventTypeParameterDeleted    EventType = "parameter_deleted"
	EventTypeParametersReordered EventType = "parameters_reordered"
	EventTypeParameterMoved      EventType = "parameter_moved"
	EventTypeSubmitStarted       EventType = "submit_started"
	EventTypeSubmitFinished      EventType = "submit_finished"
)
