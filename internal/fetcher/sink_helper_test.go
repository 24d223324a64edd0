package fetcher_test

import (
	"time"

	"github.com/rohmanhakim/nps-sites/internal/metadata"
)

type errorEvent struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
	details     string
	attrs       []metadata.Attribute
}

type cacheEvent struct {
	event metadata.CacheEvent
	key   string
}

// mockMetadataSink is a test double for metadata.MetadataSink
type mockMetadataSink struct {
	fetchEvents []metadata.FetchEvent
	errorEvents []errorEvent
	cacheEvents []cacheEvent
}

func (m *mockMetadataSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errorEvents = append(m.errorEvents, errorEvent{
		packageName: packageName,
		action:      action,
		cause:       cause,
		details:     details,
		attrs:       attrs,
	})
}

func (m *mockMetadataSink) RecordFetch(event metadata.FetchEvent) {
	m.fetchEvents = append(m.fetchEvents, event)
}

func (m *mockMetadataSink) RecordCache(event metadata.CacheEvent, key string, attrs []metadata.Attribute) {
	m.cacheEvents = append(m.cacheEvents, cacheEvent{event: event, key: key})
}

func (m *mockMetadataSink) countCache(event metadata.CacheEvent) int {
	n := 0
	for _, e := range m.cacheEvents {
		if e.event == event {
			n++
		}
	}
	return n
}
