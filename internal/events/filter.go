package events

import (
	"github.com/kode4food/testgen/pkg/api"
	"github.com/kode4food/testgen/pkg/util"
)

type EventFilter func(*api.ChangeEvent) bool

func FilterSession(id api.SessionID) EventFilter {
	return func(ev *api.ChangeEvent) bool {
		return ev != nil && ev.SessionID == id
	}
}

func FilterEvents(eventTypes ...api.EventType) EventFilter {
	lookup := util.SetOf(eventTypes...)
	return func(ev *api.ChangeEvent) bool {
		return ev != nil && lookup.Contains(ev.Type)
	}
}

// FilterSince matches selection changes newer than the given version.
// Submission events do not change the selection and always match
func FilterSince(version int64) EventFilter {
	return func(ev *api.ChangeEvent) bool {
		return ev != nil && (ev.Submit != nil || ev.Version > version)
	}
}

func AndFilters(filters ...EventFilter) EventFilter {
	return func(ev *api.ChangeEvent) bool {
		for _, filter := range filters {
			if !filter(ev) {
				return false
			}
		}
		return true
	}
}

func OrFilters(filters ...EventFilter) EventFilter {
	return func(ev *api.ChangeEvent) bool {
		for _, filter := range filters {
			if filter(ev) {
				return true
			}
		}
		return false
	}
}
