package api

import (
	"regexp"
	"strings"
)

type (
	// SessionID is a unique identifier for a builder session
	SessionID string

	// TicketKey identifies an issue in the ticket tracker, e.g. "QA-123"
	TicketKey string

	// ListPosition addresses one slot of a reorderable list
	ListPosition struct {
		ListID string `json:"list_id"`
		Index  int    `json:"index"`
	}

	// MoveGesture is a completed drag reported by a gesture layer. A nil
	// Destination means the gesture was cancelled
	MoveGesture struct {
		Source      ListPosition  `json:"source"`
		Destination *ListPosition `json:"destination,omitempty"`
	}
)

const (
	// StepListID is the list ID of the top-level step list
	StepListID = "steps"

	paramListPrefix = "params-"
)

// ValidTicketKey matches a tracker key: a project prefix, a hyphen, and a
// number
var ValidTicketKey = regexp.MustCompile(`^[A-Z][A-Z0-9_]*-[0-9]+$`)

// ParamListID returns the list ID of a step's parameter list
func ParamListID(instanceID string) string {
	return paramListPrefix + instanceID
}

// ParseParamListID returns the step instance ID encoded in a parameter list
// ID
func ParseParamListID(listID string) (string, bool) {
	id, ok := strings.CutPrefix(listID, paramListPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// NormalizeTicketKey trims and upper-cases a ticket key
func NormalizeTicketKey[T ~string](key T) T {
	return T(strings.ToUpper(strings.TrimSpace(string(key))))
}

// IsValid returns true if the key is a well-formed tracker key
func (k TicketKey) IsValid() bool {
	return ValidTicketKey.MatchString(string(k))
}
