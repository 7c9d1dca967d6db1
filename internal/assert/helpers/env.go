package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/kode4food/testgen/internal/catalog"
	"github.com/kode4food/testgen/internal/config"
	"github.com/kode4food/testgen/internal/events"
	"github.com/kode4food/testgen/internal/server"
	"github.com/kode4food/testgen/internal/session"
)

// TestServerEnv holds all the components needed for API testing
type TestServerEnv struct {
	Config   *config.Config
	Catalog  *catalog.Store
	Sessions *session.Manager
	EventHub *events.Hub
	Ticket   *MockTicketClient
	Server   *server.Server
	Cleanup  func()
}

// NewTestServerEnv creates a server over a loaded in-memory catalog, a
// mock ticket client, and a fresh event hub
func NewTestServerEnv(t *testing.T) *TestServerEnv {
	t.Helper()
	cfg := NewTestConfig()
	store := NewTestStore(t, cfg)
	return newTestServerEnv(cfg, store)
}

// NewTestServerEnvWithStore creates a server over the given catalog store
func NewTestServerEnvWithStore(
	cfg *config.Config, store *catalog.Store,
) *TestServerEnv {
	return newTestServerEnv(cfg, store)
}

func newTestServerEnv(
	cfg *config.Config, store *catalog.Store,
) *TestServerEnv {
	hub := events.NewHub()
	sessions := session.NewManager(cfg, hub)
	tc := NewMockTicketClient()
	srv := server.NewServer(cfg, store, sessions, hub, tc)

	return &TestServerEnv{
		Config:   cfg,
		Catalog:  store,
		Sessions: sessions,
		EventHub: hub,
		Ticket:   tc,
		Server:   srv,
		Cleanup: func() {
			srv.CloseWebSockets()
			hub.Close()
		},
	}
}

// StartHTTP serves the environment's routes on a local listener. The
// listener is closed when the test ends
func (e *TestServerEnv) StartHTTP(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(e.Server.SetupRoutes())
	t.Cleanup(ts.Close)
	return ts
}

// WithTestEnv creates a test server environment, executes the provided
// function with it, and ensures cleanup happens automatically
func WithTestEnv(t *testing.T, fn func(*TestServerEnv)) {
	t.Helper()
	env := NewTestServerEnv(t)
	defer env.Cleanup()
	fn(env)
}
