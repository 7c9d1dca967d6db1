package events

import (
	"sync"

	"github.com/kode4food/caravan"
	"github.com/kode4food/caravan/message"
	"github.com/kode4food/caravan/topic"

	"github.com/kode4food/testgen/internal/builder"
	"github.com/kode4food/testgen/pkg/api"
)

// Hub publishes change events to a caravan topic. Each consumer receives
// every event published after it was created
type Hub struct {
	topic  topic.Topic[*api.ChangeEvent]
	prod   topic.Producer[*api.ChangeEvent]
	closed bool
	mu     sync.RWMutex
}

var _ builder.Notifier = (*Hub)(nil)

// NewHub creates a Hub backed by a fresh topic
func NewHub() *Hub {
	t := caravan.NewTopic[*api.ChangeEvent]()
	return &Hub{
		topic: t,
		prod:  t.NewProducer(),
	}
}

// Notify publishes the event. Events published after Close are dropped
func (h *Hub) Notify(ev *api.ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	message.Send(h.prod, ev)
}

// NewConsumer creates a consumer of events published from now on. The
// caller must Close it
func (h *Hub) NewConsumer() topic.Consumer[*api.ChangeEvent] {
	return h.topic.NewConsumer()
}

// Close stops publication
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	h.prod.Close()
}
