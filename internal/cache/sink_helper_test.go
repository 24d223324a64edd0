package cache_test

import (
	"time"

	"github.com/rohmanhakim/nps-sites/internal/metadata"
)

type recordedError struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
	details     string
}

type recordedCache struct {
	event metadata.CacheEvent
	key   string
}

// metadataSinkSpy captures everything recorded so tests can assert on it.
type metadataSinkSpy struct {
	errors []recordedError
	caches []recordedCache
}

func (m *metadataSinkSpy) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errors = append(m.errors, recordedError{
		packageName: packageName,
		action:      action,
		cause:       cause,
		details:     details,
	})
}

func (m *metadataSinkSpy) RecordFetch(event metadata.FetchEvent) {}

func (m *metadataSinkSpy) RecordCache(event metadata.CacheEvent, key string, attrs []metadata.Attribute) {
	m.caches = append(m.caches, recordedCache{event: event, key: key})
}

func (m *metadataSinkSpy) cacheEvents(event metadata.CacheEvent) []string {
	var keys []string
	for _, c := range m.caches {
		if c.event == event {
			keys = append(keys, c.key)
		}
	}
	return keys
}
