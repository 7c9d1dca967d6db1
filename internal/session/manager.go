package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kode4food/testgen/internal/builder"
	"github.com/kode4food/testgen/internal/config"
	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/log"
)

type (
	// Manager creates and tracks builder sessions
	Manager struct {
		sessions *lruCache[api.SessionID, *Session]
		notifier builder.Notifier
		expand   api.ExpandPolicy
		newIDs   func() builder.IDGenerator
	}

	// ManagerOption configures a Manager
	ManagerOption func(*Manager)
)

var ErrSessionNotFound = errors.New("session not found")

// NewManager creates a Manager bounded by the configured session cache size.
// Every session's changes are reported to the notifier
func NewManager(
	cfg *config.Config, n builder.Notifier, opts ...ManagerOption,
) *Manager {
	m := &Manager{
		notifier: n,
		expand:   cfg.Session.ExpandPolicy,
		newIDs: func() builder.IDGenerator {
			return builder.UUIDs{}
		},
	}
	m.sessions = newLRUCache(cfg.Session.CacheSize, m.evicted)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithIDs sets the generator factory used for each new session
func WithIDs(fn func() builder.IDGenerator) ManagerOption {
	return func(m *Manager) {
		m.newIDs = fn
	}
}

// Create starts a new session drawing from the catalog
func (m *Manager) Create(cat *api.Catalog) *Session {
	id := api.SessionID(uuid.NewString())
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		notifier:  m.notifier,
	}
	s.State = builder.New(cat,
		builder.WithSessionID(id),
		builder.WithIDs(m.newIDs()),
		builder.WithExpandPolicy(m.expand),
		builder.WithNotifier(m.notifier),
	)
	m.sessions.put(id, s)

	used := s.Catalog()
	slog.Info("Session created",
		log.SessionID(id),
		slog.Int("steps", len(used.Steps)),
		slog.Int("parameters", len(used.Parameters)))
	return s
}

// Get returns the session with the given ID
func (m *Manager) Get(id api.SessionID) (*Session, error) {
	if s, ok := m.sessions.get(id); ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
}

// Delete discards the session with the given ID
func (m *Manager) Delete(id api.SessionID) error {
	if _, ok := m.sessions.remove(id); !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	slog.Info("Session deleted",
		log.SessionID(id))
	return nil
}

// List returns the IDs of all live sessions, most recently used first
func (m *Manager) List() []api.SessionID {
	return m.sessions.keys()
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	return m.sessions.len()
}

func (m *Manager) evicted(id api.SessionID, _ *Session) {
	slog.Info("Session evicted",
		log.SessionID(id))
}
