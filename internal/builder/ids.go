package builder

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

type (
	// IDGenerator produces unique identifiers for step instances and custom
	// parameters
	IDGenerator interface {
		NextInstanceID() string
		NextParameterID() string
	}

	// CounterIDs is a monotonic IDGenerator local to one State
	CounterIDs struct {
		prefix string
		next   atomic.Int64
	}

	// UUIDs is an IDGenerator backed by random UUIDs
	UUIDs struct{}
)

var (
	_ IDGenerator = (*CounterIDs)(nil)
	_ IDGenerator = UUIDs{}
)

// NewCounterIDs creates a counter-based generator whose IDs start with prefix
func NewCounterIDs(prefix string) *CounterIDs {
	return &CounterIDs{prefix: prefix}
}

func (c *CounterIDs) NextInstanceID() string {
	return fmt.Sprintf("%s_step_%d", c.prefix, c.next.Add(1))
}

func (c *CounterIDs) NextParameterID() string {
	return fmt.Sprintf("%s_auto_%d", c.prefix, c.next.Add(1))
}

func (UUIDs) NextInstanceID() string {
	return uuid.NewString()
}

func (UUIDs) NextParameterID() string {
	return "p_auto_" + uuid.NewString()
}
