package ticket

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kode4food/testgen/internal/config"
	"github.com/kode4food/testgen/pkg/api"
)

type (
	// Client updates a ticket with a description and a JSON attachment
	Client interface {
		Update(context.Context, *Request) (*Response, error)
	}

	// Request carries the content pushed to a ticket
	Request struct {
		Ticket      api.TicketKey
		Description string
		JSON        string
	}

	// Response reports the tracker's outcome
	Response struct {
		Status string
	}
)

const userAgent = "testgen/1.0"

var (
	ErrInvalidTicket       = errors.New("invalid ticket key")
	ErrTicketNotConfigured = errors.New("ticket client not configured")
	ErrUpdateFailed        = errors.New("ticket update failed")
)

// NormalizeKey trims and upper-cases key, returning ErrInvalidTicket if the
// result is not a well-formed tracker key
func NormalizeKey(key string) (api.TicketKey, error) {
	res := api.NormalizeTicketKey(api.TicketKey(key))
	if !res.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTicket, key)
	}
	return res, nil
}

// NewFromConfig builds the ticket client described by cfg. A relay URL is
// preferred over direct Jira access
func NewFromConfig(cfg *config.Config) (Client, error) {
	tc := cfg.Ticket
	timeout := cfg.TicketTimeout()
	switch {
	case tc.RelayURL != "":
		return NewRelayClient(tc.RelayURL, timeout), nil
	case tc.JiraBaseURL != "":
		return NewJiraClient(&JiraOptions{
			BaseURL:    tc.JiraBaseURL,
			Username:   tc.JiraUsername,
			APIToken:   tc.JiraAPIToken,
			APIVersion: tc.JiraAPIVersion,
			Timeout:    timeout,
		}), nil
	default:
		return nil, ErrTicketNotConfigured
	}
}

func trimBaseURL(u string) string {
	return strings.TrimSuffix(strings.TrimSpace(u), "/")
}

func newHTTPTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return time.Duration(config.DefaultTicketTimeout) * time.Millisecond
	}
	return timeout
}
