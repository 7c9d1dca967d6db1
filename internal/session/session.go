package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kode4food/testgen/internal/builder"
	"github.com/kode4food/testgen/internal/ticket"
	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/log"
)

// Session is one builder session: a State plus the status of the most
// recent ticket submission
type Session struct {
	*builder.State
	ID        api.SessionID
	CreatedAt time.Time

	notifier   builder.Notifier
	submitting atomic.Bool
	mu         sync.Mutex
	submit     *api.SubmitStatus
}

var (
	ErrTicketRequired   = errors.New("jira ticket number is required")
	ErrSubmitInProgress = errors.New("ticket submission already in progress")
	ErrSubmitFailed     = errors.New("jira update failed")
)

const (
	// TicketRequiredMessage is shown when a submission names no ticket
	TicketRequiredMessage = "Please enter a Jira ticket number."

	submitSucceededPrefix = "Jira updated successfully: "
	submitFailedPrefix    = "Jira update failed: "
	defaultSubmitStatus   = "OK"
)

// Submit pushes the session's description and JSON payload to the ticket.
// Only one submission may be in flight at a time. The State is never
// modified, and editing may continue while the client call is running
func (s *Session) Submit(
	ctx context.Context, cl ticket.Client, key string,
) (*api.SubmitStatus, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrTicketRequired
	}
	tk, err := ticket.NormalizeKey(key)
	if err != nil {
		return nil, err
	}

	if !s.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer s.submitting.Store(false)

	art, err := s.Artifacts()
	if err != nil {
		return nil, err
	}
	req := &ticket.Request{
		Ticket:      tk,
		Description: art.Description,
		JSON:        art.JSON,
	}

	st := &api.SubmitStatus{
		State:     api.SubmitInProgress,
		Ticket:    tk,
		StartedAt: time.Now(),
	}
	s.setSubmit(api.EventTypeSubmitStarted, st)

	slog.Info("Submitting ticket update",
		log.SessionID(s.ID),
		log.Ticket(tk))

	res, err := cl.Update(ctx, req)
	st.FinishedAt = time.Now()
	if err != nil {
		st.State = api.SubmitFailed
		st.Message = submitFailedPrefix + err.Error()
		s.setSubmit(api.EventTypeSubmitFinished, st)
		slog.Warn("Ticket update failed",
			log.SessionID(s.ID),
			log.Ticket(tk),
			log.Error(err))
		return st, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	status := res.Status
	if status == "" {
		status = defaultSubmitStatus
	}
	st.State = api.SubmitSucceeded
	st.Message = submitSucceededPrefix + status
	s.setSubmit(api.EventTypeSubmitFinished, st)
	slog.Info("Ticket updated",
		log.SessionID(s.ID),
		log.Ticket(tk),
		log.Status(status))
	return st, nil
}

// Submitting returns true while a submission is in flight
func (s *Session) Submitting() bool {
	return s.submitting.Load()
}

// SubmitStatus returns a copy of the most recent submission status, or nil
// if there is none
func (s *Session) SubmitStatus() *api.SubmitStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submit == nil {
		return nil
	}
	res := *s.submit
	return &res
}

// DismissSubmit clears a finished submission's message. An in-flight
// submission cannot be dismissed
func (s *Session) DismissSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submit == nil || s.submit.State == api.SubmitInProgress {
		return false
	}
	s.submit = nil
	return true
}

// Response renders the session with its derived views
func (s *Session) Response() *api.SessionResponse {
	snap := s.Snapshot()
	return &api.SessionResponse{
		ID:          s.ID,
		Version:     snap.Version,
		Selection:   snap.Selection,
		Description: api.DescriptionOf(snap.Selection),
		Payload:     api.PayloadOf(snap.Selection),
		Submit:      s.SubmitStatus(),
		CreatedAt:   s.CreatedAt,
	}
}

func (s *Session) setSubmit(typ api.EventType, st *api.SubmitStatus) {
	s.mu.Lock()
	cp := *st
	s.submit = &cp
	s.mu.Unlock()

	if s.notifier == nil {
		return
	}
	snap := s.Snapshot()
	ev := cp
	s.notifier.Notify(&api.ChangeEvent{
		Type:      typ,
		SessionID: s.ID,
		Version:   snap.Version,
		Selection: snap.Selection,
		Submit:    &ev,
		Timestamp: time.Now().UnixMilli(),
	})
}
