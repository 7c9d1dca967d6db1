package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	"github.com/kode4food/testgen/internal/catalog"
	"github.com/kode4food/testgen/internal/config"
	"github.com/kode4food/testgen/pkg/api"
)

const (
	// TestStepsText is the step resource served by NewTestSource
	TestStepsText = "Open login page\nEnter credentials\nClick save\n"

	// TestParametersText is the parameter resource served by NewTestSource
	TestParametersText = "username\npassword\ntimeout\n"
)

// NewTestConfig creates a default configuration with debug logging enabled
// and catalog retries disabled
func NewTestConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.LogLevel = "debug"
	cfg.Catalog.URL = "mem://"
	cfg.Catalog.RetryMaxElapsed = 0
	return cfg
}

// NewTestCatalog returns the catalog described by the test resources
func NewTestCatalog() *api.Catalog {
	return &api.Catalog{
		Steps: catalog.ParseSteps(TestStepsText),
		Parameters: catalog.ParseParameters(
			TestParametersText, config.DefaultCatalogParamDefault,
		),
	}
}

// NewMemSource creates an in-memory blob source holding the given resources.
// The source is closed when the test ends
func NewMemSource(t *testing.T, files map[string]string) *catalog.BlobSource {
	t.Helper()
	src := catalog.NewBlobSource(memblob.OpenBucket(nil))
	t.Cleanup(func() { _ = src.Close() })

	ctx := context.Background()
	for key, text := range files {
		require.NoError(t, src.Put(ctx, key, []byte(text)))
	}
	return src
}

// NewTestSource creates an in-memory source holding the test resources
func NewTestSource(t *testing.T) *catalog.BlobSource {
	t.Helper()
	return NewMemSource(t, map[string]string{
		config.DefaultCatalogStepsKey:      TestStepsText,
		config.DefaultCatalogParametersKey: TestParametersText,
	})
}

// NewTestStore creates a catalog store over the test resources and loads it
func NewTestStore(t *testing.T, cfg *config.Config) *catalog.Store {
	t.Helper()
	store := catalog.NewStore(catalog.NewLoader(NewTestSource(t), cfg))
	require.NoError(t, store.Load(context.Background()))
	return store
}
