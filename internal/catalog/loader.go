package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/kode4food/testgen/internal/config"
	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/log"
)

type (
	// Loader reads and parses the catalog resources from a Source, retrying
	// transient failures
	Loader struct {
		source       Source
		stepsKey     string
		paramsKey    string
		paramDefault string
		timeout      time.Duration
		newBackOff   func() backoff.BackOff
	}

	// LoaderOption configures a Loader
	LoaderOption func(*Loader)

	// Result is a loaded catalog along with the raw resource text it was
	// parsed from
	Result struct {
		Catalog *api.Catalog
		Raw     map[string][]byte
	}
)

var ErrCatalogLoad = errors.New("failed to load catalog")

// NewLoader creates a Loader for the keys and retry policy in cfg
func NewLoader(
	src Source, cfg *config.Config, opts ...LoaderOption,
) *Loader {
	maxElapsed := cfg.CatalogRetryMaxElapsed()
	l := &Loader{
		source:       src,
		stepsKey:     cfg.Catalog.StepsKey,
		paramsKey:    cfg.Catalog.ParametersKey,
		paramDefault: cfg.Catalog.ParamDefault,
		timeout:      cfg.CatalogTimeout(),
		newBackOff: func() backoff.BackOff {
			if maxElapsed <= 0 {
				return &backoff.StopBackOff{}
			}
			bo := backoff.NewExponentialBackOff()
			bo.MaxElapsedTime = maxElapsed
			return bo
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithBackOff replaces the retry policy applied to each resource read
func WithBackOff(fn func() backoff.BackOff) LoaderOption {
	return func(l *Loader) {
		l.newBackOff = fn
	}
}

// Keys returns the resource keys the loader reads
func (l *Loader) Keys() []string {
	return []string{l.stepsKey, l.paramsKey}
}

// Load reads both resources concurrently and parses them. Both must
// succeed
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	var steps, params []byte
	var stepsErr, paramsErr error

	var wg sync.WaitGroup
	wg.Go(func() {
		steps, stepsErr = l.ReadResource(ctx, l.stepsKey)
	})
	wg.Go(func() {
		params, paramsErr = l.ReadResource(ctx, l.paramsKey)
	})
	wg.Wait()

	if err := errors.Join(stepsErr, paramsErr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogLoad, err)
	}

	cat := &api.Catalog{
		Steps:      ParseSteps(string(steps)),
		Parameters: ParseParameters(string(params), l.paramDefault),
	}
	slog.Info("Catalog loaded",
		slog.Int("steps", len(cat.Steps)),
		slog.Int("parameters", len(cat.Parameters)))

	return &Result{
		Catalog: cat,
		Raw: map[string][]byte{
			l.stepsKey:  steps,
			l.paramsKey: params,
		},
	}, nil
}

// ReadResource reads one resource, retrying transient failures. A missing
// resource is not retried
func (l *Loader) ReadResource(
	ctx context.Context, key string,
) ([]byte, error) {
	var data []byte
	op := func() error {
		rctx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()

		res, err := l.source.ReadAll(rctx, key)
		if err != nil {
			if errors.Is(err, ErrResourceNotFound) {
				return backoff.Permanent(err)
			}
			slog.Warn("Catalog read failed",
				log.Key(key),
				log.Error(err))
			return err
		}
		data = res
		return nil
	}

	bo := backoff.WithContext(l.newBackOff(), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return data, nil
}
