package wait

import (
	"testing"
	"time"

	"github.com/kode4food/caravan/topic"

	"github.com/kode4food/testgen/internal/events"
	"github.com/kode4food/testgen/pkg/api"
)

type Wait struct {
	t        *testing.T
	consumer topic.Consumer[*api.ChangeEvent]
	timeout  time.Duration
}

const DefaultTimeout = time.Second * 5

func On(t *testing.T, consumer topic.Consumer[*api.ChangeEvent]) *Wait {
	return &Wait{
		t:        t,
		consumer: consumer,
		timeout:  DefaultTimeout,
	}
}

func (w *Wait) WithTimeout(timeout time.Duration) *Wait {
	res := *w
	res.timeout = timeout
	return &res
}

// ForEvents waits for matching events from the consumer and returns them
func (w *Wait) ForEvents(
	count int, filter events.EventFilter,
) []*api.ChangeEvent {
	w.t.Helper()

	deadline := time.NewTimer(w.timeout)
	defer deadline.Stop()

	res := make([]*api.ChangeEvent, 0, count)
	for len(res) < count {
		select {
		case ev, ok := <-w.consumer.Receive():
			if !ok {
				w.t.Fatalf(
					"event consumer closed before receiving %d events", count,
				)
			}
			if filter(ev) {
				res = append(res, ev)
			}
		case <-deadline.C:
			w.t.Fatalf("timeout waiting for %d events", count)
		}
	}
	return res
}

// ForEvent waits for a single matching event
func (w *Wait) ForEvent(filter events.EventFilter) *api.ChangeEvent {
	w.t.Helper()
	return w.ForEvents(1, filter)[0]
}

// Session matches events of the given types for one session
func Session(id api.SessionID, types ...api.EventType) events.EventFilter {
	return events.AndFilters(
		events.FilterSession(id), events.FilterEvents(types...),
	)
}
