package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

type (
	// Source reads named catalog resources
	Source interface {
		ReadAll(ctx context.Context, key string) ([]byte, error)
		Close() error
	}

	// BlobSource reads resources from a gocloud.dev bucket, supporting local
	// files, S3, GCS, Azure Blob Storage, and in-memory buckets
	BlobSource struct {
		bucket *blob.Bucket
	}

	// HTTPSource reads resources as files below a base URL
	HTTPSource struct {
		client *http.Client
		base   string
	}
)

var (
	ErrResourceNotFound = errors.New("catalog resource not found")
	ErrHTTPStatus       = errors.New("catalog resource request failed")
)

var (
	_ Source = (*BlobSource)(nil)
	_ Source = (*HTTPSource)(nil)
)

// OpenSource opens the source named by rawURL: an HTTPSource for http and
// https URLs, a BlobSource for any bucket URL gocloud.dev understands
func OpenSource(
	ctx context.Context, rawURL string, timeout time.Duration,
) (Source, error) {
	if strings.HasPrefix(rawURL, "http://") ||
		strings.HasPrefix(rawURL, "https://") {
		return NewHTTPSource(rawURL, timeout), nil
	}
	return OpenBlobSource(ctx, rawURL)
}

// OpenBlobSource opens the bucket at bucketURL
func OpenBlobSource(
	ctx context.Context, bucketURL string,
) (*BlobSource, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, err
	}
	return NewBlobSource(bucket), nil
}

// NewBlobSource wraps an already opened bucket
func NewBlobSource(bucket *blob.Bucket) *BlobSource {
	return &BlobSource{bucket: bucket}
}

func (s *BlobSource) ReadAll(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, key)
		}
		return nil, err
	}
	return data, nil
}

// Put stores a resource in the bucket
func (s *BlobSource) Put(ctx context.Context, key string, data []byte) error {
	return s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType: "text/plain; charset=utf-8",
	})
}

func (s *BlobSource) Close() error {
	return s.bucket.Close()
}

// NewHTTPSource creates a source reading <base>/<key>
func NewHTTPSource(base string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		base:   strings.TrimSuffix(base, "/"),
	}
}

func (s *HTTPSource) ReadAll(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, s.base+"/"+url.PathEscape(key), nil,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/plain, text/csv, */*")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrResourceNotFound, key)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %s: HTTP %d",
			ErrHTTPStatus, key, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *HTTPSource) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
