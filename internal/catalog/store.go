package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/log"
)

// Store holds the most recently loaded catalog and its load status. Until a
// load succeeds the catalog is not ready; a failed reload keeps serving the
// previously loaded catalog
type Store struct {
	loader  *Loader
	catalog *api.Catalog
	raw     map[string][]byte
	status  api.CatalogStatus
	err     error
	mu      sync.RWMutex
}

var ErrCatalogNotReady = errors.New("catalog not ready")

// NewStore creates a Store in the loading state
func NewStore(l *Loader) *Store {
	return &Store{
		loader: l,
		status: api.CatalogLoading,
	}
}

// Load runs the loader and records the outcome
func (s *Store) Load(ctx context.Context) error {
	res, err := s.loader.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.err = err
	if err != nil {
		slog.Error("Catalog load failed", log.Error(err))
		if s.catalog == nil {
			s.status = api.CatalogFailed
		}
		return err
	}

	s.catalog = res.Catalog
	s.raw = res.Raw
	s.status = api.CatalogReady
	return nil
}

// Catalog returns the loaded catalog, or ErrCatalogNotReady carrying the
// load error while no catalog is available
func (s *Store) Catalog() (*api.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.catalog != nil {
		return s.catalog, nil
	}
	if s.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogNotReady, s.err)
	}
	return nil, ErrCatalogNotReady
}

// Status returns the load status and the last load error message
func (s *Store) Status() (api.CatalogStatus, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return s.status, s.err.Error()
	}
	return s.status, ""
}

// Raw returns the text of a loaded resource
func (s *Store) Raw(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.raw[key]
	return data, ok
}

// Resource reads an auxiliary resource from the catalog source
func (s *Store) Resource(ctx context.Context, key string) ([]byte, error) {
	return s.loader.ReadResource(ctx, key)
}

// Response renders the catalog status for API clients
func (s *Store) Response() *api.CatalogResponse {
	status, msg := s.Status()
	res := &api.CatalogResponse{
		Status:     status,
		Error:      msg,
		Steps:      []api.StepTemplate{},
		Parameters: []api.ParameterTemplate{},
	}
	if cat, err := s.Catalog(); err == nil {
		res.Steps = cat.Steps
		res.Parameters = cat.Parameters
	}
	return res
}
