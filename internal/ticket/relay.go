package ticket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/log"
)

// RelayClient forwards ticket updates to a relay service that holds the
// tracker credentials
type RelayClient struct {
	httpClient *http.Client
	endpoint   string
}

var _ Client = (*RelayClient)(nil)

// NewRelayClient creates a RelayClient posting to endpoint
func NewRelayClient(endpoint string, timeout time.Duration) *RelayClient {
	return &RelayClient{
		httpClient: &http.Client{Timeout: newHTTPTimeout(timeout)},
		endpoint:   trimBaseURL(endpoint),
	}
}

// Update posts the request to the relay and returns the status it reports
func (c *RelayClient) Update(
	ctx context.Context, req *Request,
) (*Response, error) {
	key, err := NormalizeKey(string(req.Ticket))
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(api.TicketUpdateRequest{
		Ticket:      string(key),
		Description: req.Description,
		JSON:        req.JSON,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.endpoint, bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	dur := time.Since(start)
	if err != nil {
		slog.Error("Ticket relay request failed",
			log.Ticket(key),
			slog.Duration("duration", dur),
			log.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := gjson.GetBytes(respBody, "error").String()
		if msg == "" {
			msg = string(respBody)
		}
		slog.Error("Ticket relay returned error",
			log.Ticket(key),
			slog.Int("status_code", resp.StatusCode),
			log.ErrorString(msg))
		return nil, fmt.Errorf("%w: HTTP %d: %s",
			ErrUpdateFailed, resp.StatusCode, msg)
	}

	return &Response{
		Status: gjson.GetBytes(respBody, "status").String(),
	}, nil
}
