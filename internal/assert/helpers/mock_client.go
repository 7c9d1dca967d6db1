package helpers

import (
	"context"
	"sync"

	"github.com/kode4food/testgen/internal/ticket"
	"github.com/kode4food/testgen/pkg/api"
)

// MockTicketClient is a ticket.Client that records requests and returns
// configured outcomes
type MockTicketClient struct {
	status   string
	err      error
	gate     chan struct{}
	requests []*ticket.Request
	invoked  chan api.TicketKey
	mu       sync.Mutex
}

var _ ticket.Client = (*MockTicketClient)(nil)

// NewMockTicketClient creates a mock client that reports "updated"
func NewMockTicketClient() *MockTicketClient {
	return &MockTicketClient{
		status:  api.TicketStatusUpdated,
		invoked: make(chan api.TicketKey, 16),
	}
}

// Update records the request, waits on the gate if one is set, and returns
// the configured status or error
func (c *MockTicketClient) Update(
	ctx context.Context, req *ticket.Request,
) (*ticket.Response, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	gate := c.gate
	status, err := c.status, c.err
	c.mu.Unlock()

	select {
	case c.invoked <- req.Ticket:
	default:
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}
	return &ticket.Response{Status: status}, nil
}

// SetStatus configures the status returned on success
func (c *MockTicketClient) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

// SetError configures the mock to fail every update
func (c *MockTicketClient) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Block makes subsequent updates wait until the returned release function is
// called
func (c *MockTicketClient) Block() (release func()) {
	gate := make(chan struct{})
	c.mu.Lock()
	c.gate = gate
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { close(gate) })
	}
}

// Invoked returns a channel that receives the ticket of every update
func (c *MockTicketClient) Invoked() <-chan api.TicketKey {
	return c.invoked
}

// Requests returns a copy of every recorded request
func (c *MockTicketClient) Requests() []*ticket.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]*ticket.Request, len(c.requests))
	copy(res, c.requests)
	return res
}
