package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	app "github.com/kode4food/testgen"
	"github.com/kode4food/testgen/internal/catalog"
	"github.com/kode4food/testgen/internal/config"
	"github.com/kode4food/testgen/internal/events"
	"github.com/kode4food/testgen/internal/server"
	"github.com/kode4food/testgen/internal/session"
	"github.com/kode4food/testgen/internal/ticket"
	"github.com/kode4food/testgen/pkg/log"
)

type testgen struct {
	cfg        *config.Config
	source     catalog.Source
	catalog    *catalog.Store
	eventHub   *events.Hub
	sessions   *session.Manager
	ticket     ticket.Client
	apiServer  *server.Server
	httpServer *http.Server
	cancel     context.CancelFunc
	quit       chan os.Signal
}

var (
	ErrOpenCatalog  = errors.New("failed to open catalog source")
	ErrTicketClient = errors.New("failed to create ticket client")
)

func main() {
	cfg := config.NewDefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", log.Error(err))
		os.Exit(1)
	}

	s := &testgen{
		cfg:  cfg,
		quit: make(chan os.Signal, 1),
	}
	s.setupLogging()

	if err := s.run(); err != nil {
		slog.Error("Failed to start application", log.Error(err))
		os.Exit(1)
	}
}

func (s *testgen) run() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	defer cancel()

	if err := s.initializeCatalog(ctx); err != nil {
		return err
	}
	if err := s.initializeTicket(); err != nil {
		_ = s.source.Close()
		return err
	}
	s.startServer()

	signal.Notify(s.quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(s.quit)
	<-s.quit

	s.shutdown()
	return nil
}

func (s *testgen) setupLogging() {
	level, _ := log.ParseLevel(s.cfg.LogLevel)

	env := os.Getenv("ENV")
	logger := log.NewWithLevel(app.Name, env, app.Version, level)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level)

	slog.Info("Test builder starting",
		slog.String("log_level", s.cfg.LogLevel))

	slog.Info("Configuration loaded",
		slog.String("catalog_url", s.cfg.Catalog.URL),
		slog.String("steps_key", s.cfg.Catalog.StepsKey),
		slog.String("parameters_key", s.cfg.Catalog.ParametersKey),
		slog.Bool("ticket_configured", s.cfg.TicketConfigured()),
		slog.Int("session_cache_size", s.cfg.Session.CacheSize),
		slog.String("api_host", s.cfg.APIHost),
		slog.Int("api_port", s.cfg.APIPort))
}

// initializeCatalog opens the source and starts the first load in the
// background. Sessions cannot be created until it completes
func (s *testgen) initializeCatalog(ctx context.Context) error {
	src, err := catalog.OpenSource(
		ctx, s.cfg.Catalog.URL, s.cfg.CatalogTimeout(),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenCatalog, err)
	}
	s.source = src
	s.catalog = catalog.NewStore(catalog.NewLoader(src, s.cfg))

	go func() {
		_ = s.catalog.Load(ctx)
	}()
	return nil
}

func (s *testgen) initializeTicket() error {
	tc, err := ticket.NewFromConfig(s.cfg)
	switch {
	case err == nil:
		s.ticket = tc
	case errors.Is(err, ticket.ErrTicketNotConfigured):
		slog.Warn("Ticket submission disabled", log.Error(err))
	default:
		return fmt.Errorf("%w: %w", ErrTicketClient, err)
	}
	return nil
}

func (s *testgen) startServer() {
	s.eventHub = events.NewHub()
	s.sessions = session.NewManager(s.cfg, s.eventHub)

	s.apiServer = server.NewServer(
		s.cfg, s.catalog, s.sessions, s.eventHub, s.ticket,
	)
	mux := s.apiServer.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.APIHost, s.cfg.APIPort),
		Handler: mux,
	}

	go func() {
		slog.Info("HTTP server starting",
			slog.String("addr", s.httpServer.Addr))
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", log.Error(err))
		}
	}()
}

func (s *testgen) shutdown() {
	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(
		context.Background(), s.cfg.ShutdownTimeout,
	)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", log.Error(err))
	}

	s.apiServer.CloseWebSockets()
	s.cancel()
	s.eventHub.Close()

	if err := s.source.Close(); err != nil {
		slog.Error("Catalog source close failed", log.Error(err))
	}

	slog.Info("Server exited")
}
