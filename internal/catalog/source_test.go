package catalog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	"github.com/kode4food/testgen/internal/catalog"
)

func TestBlobSource(t *testing.T) {
	ctx := context.Background()
	src := catalog.NewBlobSource(memblob.OpenBucket(nil))
	defer func() { _ = src.Close() }()

	t.Run("missing_key", func(t *testing.T) {
		_, err := src.ReadAll(ctx, "steps.txt")
		assert.ErrorIs(t, err, catalog.ErrResourceNotFound)
	})

	t.Run("put_and_read", func(t *testing.T) {
		require.NoError(t, src.Put(ctx, "steps.txt", []byte("a\nb\n")))
		data, err := src.ReadAll(ctx, "steps.txt")
		assert.NoError(t, err)
		assert.Equal(t, "a\nb\n", string(data))
	})
}

func TestOpenSourceFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	err := os.WriteFile(
		filepath.Join(dir, "params.txt"), []byte("user\n"), 0o644,
	)
	require.NoError(t, err)

	src, err := catalog.OpenSource(ctx, "file://"+dir, time.Second)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	_, ok := src.(*catalog.BlobSource)
	assert.True(t, ok)

	data, err := src.ReadAll(ctx, "params.txt")
	assert.NoError(t, err)
	assert.Equal(t, "user\n", string(data))
}

func TestOpenSourceInvalidScheme(t *testing.T) {
	_, err := catalog.OpenSource(
		context.Background(), "nosuch://bucket", time.Second,
	)
	assert.Error(t, err)
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/files/step-mappings.csv":
				_, _ = w.Write([]byte("Open page\nClick save\n"))
			case "/files/broken.csv":
				w.WriteHeader(http.StatusBadGateway)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		},
	))
	defer srv.Close()

	ctx := context.Background()
	src, err := catalog.OpenSource(ctx, srv.URL+"/files/", time.Second)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	_, ok := src.(*catalog.HTTPSource)
	assert.True(t, ok)

	data, err := src.ReadAll(ctx, "step-mappings.csv")
	assert.NoError(t, err)
	assert.Equal(t, "Open page\nClick save\n", string(data))

	_, err = src.ReadAll(ctx, "missing.csv")
	assert.ErrorIs(t, err, catalog.ErrResourceNotFound)

	_, err = src.ReadAll(ctx, "broken.csv")
	assert.ErrorIs(t, err, catalog.ErrHTTPStatus)
	assert.Contains(t, err.Error(), "HTTP 502")
}
