package builder

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/kode4food/testgen/pkg/api"
)

type (
	// State is the working selection of one builder session. All methods
	// are safe for concurrent use
	State struct {
		catalog   *api.Catalog
		ids       IDGenerator
		notifier  Notifier
		sessionID api.SessionID
		expand    api.ExpandPolicy

		mu        sync.Mutex
		notifyMu  sync.Mutex
		selection api.Selection
		version   int64
		views     *views
	}

	// Notifier receives a change event after every successful mutation. It
	// must not mutate the State it observes
	Notifier interface {
		Notify(*api.ChangeEvent)
	}

	// NotifierFunc adapts a function to the Notifier interface
	NotifierFunc func(*api.ChangeEvent)

	// Option configures a State
	Option func(*State)

	// Snapshot is an immutable copy of the selection at one version
	Snapshot struct {
		Version   int64         `json:"version"`
		Selection api.Selection `json:"selection"`
	}

	// Artifacts holds both derived text views taken from one version
	Artifacts struct {
		Version     int64
		Description string
		JSON        string
	}

	views struct {
		version     int64
		description string
		payload     []api.StepPayload
		json        string
		jsonErr     error
	}

	mutation func(api.Selection) (api.Selection, bool)
)

// New creates an empty State drawing templates from the catalog. A nil
// catalog yields a State that refuses every template lookup
func New(cat *api.Catalog, opts ...Option) *State {
	s := &State{
		catalog:   cat,
		ids:       UUIDs{},
		expand:    api.ExpandPolicyExpanded,
		selection: api.Selection{},
	}
	if s.catalog == nil {
		s.catalog = &api.Catalog{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithIDs sets the generator used for instance and custom parameter IDs
func WithIDs(ids IDGenerator) Option {
	return func(s *State) {
		s.ids = ids
	}
}

// WithNotifier sets the observer of successful mutations
func WithNotifier(n Notifier) Option {
	return func(s *State) {
		s.notifier = n
	}
}

// WithSessionID stamps change events with the session they belong to
func WithSessionID(id api.SessionID) Option {
	return func(s *State) {
		s.sessionID = id
	}
}

// WithExpandPolicy selects whether newly added steps start expanded
func WithExpandPolicy(p api.ExpandPolicy) Option {
	return func(s *State) {
		s.expand = p
	}
}

func (f NotifierFunc) Notify(ev *api.ChangeEvent) {
	f(ev)
}

// Catalog returns the catalog the State draws templates from
func (s *State) Catalog() *api.Catalog {
	return s.catalog
}

// SessionID returns the session the State belongs to
func (s *State) SessionID() api.SessionID {
	return s.sessionID
}

// Version identifies the current selection value. It increases by one with
// every successful mutation
func (s *State) Version() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Len returns the number of selected steps
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selection)
}

// Snapshot returns a deep copy of the current selection
func (s *State) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Snapshot{
		Version:   s.version,
		Selection: s.selection.Clone(),
	}
}

// Description returns the numbered, newline-joined step labels
func (s *State) Description() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentViews().description
}

// ParametersPayload returns one typed payload entry per selected step
func (s *State) ParametersPayload() []api.StepPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePayload(s.currentViews().payload)
}

// PayloadJSON returns the payload serialized as a two-space indented JSON
// array
func (s *State) PayloadJSON() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentViews().payloadJSON()
}

// Artifacts returns the description and the serialized payload of the
// same selection version
func (s *State) Artifacts() (*Artifacts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.currentViews()
	js, err := v.payloadJSON()
	if err != nil {
		return nil, err
	}
	return &Artifacts{
		Version:     v.version,
		Description: v.description,
		JSON:        js,
	}, nil
}

func (s *State) currentViews() *views {
	if s.views != nil && s.views.version == s.version {
		return s.views
	}
	s.views = &views{
		version:     s.version,
		description: api.DescriptionOf(s.selection),
		payload:     api.PayloadOf(s.selection),
	}
	return s.views
}

func (s *State) apply(typ api.EventType, fn mutation) bool {
	s.mu.Lock()
	next, ok := fn(s.selection)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.selection = next
	s.version++
	ev := &api.ChangeEvent{
		Type:      typ,
		SessionID: s.sessionID,
		Version:   s.version,
		Selection: next.Clone(),
		Timestamp: time.Now().UnixMilli(),
	}

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()
	if s.notifier != nil {
		s.notifier.Notify(ev)
	}
	return true
}

func clonePayload(p []api.StepPayload) []api.StepPayload {
	res := make([]api.StepPayload, len(p))
	for i, sp := range p {
		res[i] = api.StepPayload{
			StepLabel:  sp.StepLabel,
			Parameters: append(api.Params{}, sp.Parameters...),
		}
	}
	return res
}

func (v *views) payloadJSON() (string, error) {
	if v.json == "" && v.jsonErr == nil {
		data, err := json.MarshalIndent(v.payload, "", "  ")
		v.json, v.jsonErr = string(data), err
	}
	return v.json, v.jsonErr
}
