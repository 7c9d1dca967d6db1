package api

import "time"

type (
	// CatalogResponse reports the catalog load status and its templates
	CatalogResponse struct {
		Status     CatalogStatus       `json:"status"`
		Error      string              `json:"error,omitempty"`
		Steps      []StepTemplate      `json:"steps"`
		Parameters []ParameterTemplate `json:"parameters"`
	}

	// SessionResponse is the snapshot of one builder session together with
	// its derived views
	SessionResponse struct {
		ID          SessionID     `json:"id"`
		Version     int64         `json:"version"`
		Selection   Selection     `json:"selection"`
		Description string        `json:"description"`
		Payload     []StepPayload `json:"payload"`
		Submit      *SubmitStatus `json:"submit,omitempty"`
		CreatedAt   time.Time     `json:"created_at"`
	}

	// SessionsListResponse contains the IDs of all live sessions
	SessionsListResponse struct {
		Sessions []SessionID `json:"sessions"`
		Count    int         `json:"count"`
	}

	// AddStepRequest selects a step template
	AddStepRequest struct {
		TemplateID string `json:"template_id"`
	}

	// ReorderRequest moves one element of a list from one index to another
	ReorderRequest struct {
		From int `json:"from"`
		To   int `json:"to"`
	}

	// AddParameterRequest attaches a parameter template to a step. An empty
	// TemplateID attaches a blank custom parameter
	AddParameterRequest struct {
		TemplateID string `json:"template_id,omitempty"`
	}

	// ReorderParametersRequest moves a parameter within one step
	ReorderParametersRequest struct {
		StepInstanceID string `json:"step_instance_id"`
		From           int    `json:"from"`
		To             int    `json:"to"`
	}

	// MoveParameterRequest moves a parameter from one step to another
	MoveParameterRequest struct {
		SourceInstanceID string `json:"source_instance_id"`
		SourceIndex      int    `json:"source_index"`
		DestInstanceID   string `json:"dest_instance_id"`
		DestIndex        int    `json:"dest_index"`
	}

	// SubmitRequest pushes the session's description and payload to a ticket
	SubmitRequest struct {
		Ticket string `json:"ticket"`
	}

	// SubmitState tracks an outbound ticket update
	SubmitState string

	// SubmitStatus is the transient, dismissable result of a ticket update
	SubmitStatus struct {
		State      SubmitState `json:"state"`
		Ticket     TicketKey   `json:"ticket"`
		Message    string      `json:"message,omitempty"`
		StartedAt  time.Time   `json:"started_at"`
		FinishedAt time.Time   `json:"finished_at,omitzero"`
	}

	// TicketUpdateRequest carries a description and JSON payload to a ticket
	TicketUpdateRequest struct {
		Ticket      string `json:"ticket"`
		Description string `json:"description"`
		JSON        string `json:"json"`
	}

	// TicketUpdateResponse reports the outcome of a ticket update
	TicketUpdateResponse struct {
		Status string `json:"status"`
	}

	// GenerateTestRequest contains a structured test case description
	GenerateTestRequest struct {
		Description string `json:"description"`
	}

	// GenerateTestResponse contains a rendered test source file
	GenerateTestResponse struct {
		TestID  string `json:"test_id"`
		Path    string `json:"path"`
		Content string `json:"content"`
	}

	// HealthResponse provides service health information
	HealthResponse struct {
		Service  string        `json:"service"`
		Version  string        `json:"version"`
		Status   string        `json:"status"`
		Catalog  CatalogStatus `json:"catalog"`
		Sessions int           `json:"sessions"`
	}

	// MessageResponse contains a simple message string
	MessageResponse struct {
		Message string `json:"message"`
	}

	// ErrorResponse contains error details for failed requests
	ErrorResponse struct {
		Error  string `json:"error"`
		Status int    `json:"status,omitempty"`
	}
)

const (
	SubmitInProgress SubmitState = "in_progress"
	SubmitSucceeded  SubmitState = "succeeded"
	SubmitFailed     SubmitState = "failed"
)

// TicketStatusUpdated is the status reported after a successful update
const TicketStatusUpdated = "updated"
