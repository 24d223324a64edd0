package cache

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/rohmanhakim/nps-sites/internal/metadata"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
)

/*
Responsibilities
- Hold the request-key → Value mapping for the whole process
- Load it once from the backend at startup
- Persist the full mapping after every insert (write-through)

Cache Semantics
- A present key is fresh forever: no TTL, no invalidation
- Keys are request identities (plain URLs or canonical query keys)
- A broken backend never fails a lookup; it only costs network calls
*/

type Store struct {
	backend      Backend
	entries      map[string]Value
	metadataSink metadata.MetadataSink
}

// NewStore returns an empty Store over backend. Call Load to read what the
// backend already holds.
func NewStore(backend Backend, metadataSink metadata.MetadataSink) *Store {
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return &Store{
		backend:      backend,
		entries:      make(map[string]Value),
		metadataSink: metadataSink,
	}
}

// Open is NewStore followed by Load.
func Open(backend Backend, metadataSink metadata.MetadataSink) *Store {
	s := NewStore(backend, metadataSink)
	s.Load()
	return s
}

// Load replaces the in-memory mapping with the backend contents and returns
// the number of entries read. A missing, unreadable or corrupt backend yields
// an empty mapping; the failure is recorded, never returned.
func (s *Store) Load() int {
	entries, err := s.backend.Load()
	if err != nil {
		s.recordError("Store.Load", asCacheError(err, ErrCauseReadFailure, s.backend.Location()))
		s.entries = make(map[string]Value)
		return 0
	}
	if entries == nil {
		entries = make(map[string]Value)
	}
	s.entries = entries
	s.metadataSink.RecordCache(metadata.CacheLoaded, s.backend.Location(), []metadata.Attribute{
		metadata.NewAttr(metadata.AttrCount, strconv.Itoa(len(entries))),
	})
	return len(entries)
}

// Save overwrites the backend with the full in-memory mapping.
func (s *Store) Save() failure.ClassifiedError {
	if err := s.backend.Save(s.entries); err != nil {
		cacheErr := asCacheError(err, ErrCauseWriteFailure, s.backend.Location())
		s.recordError("Store.Save", cacheErr)
		return cacheErr
	}
	return nil
}

func (s *Store) Get(key string) (Value, bool) {
	value, ok := s.entries[key]
	return value, ok
}

// Put inserts or overwrites key and persists immediately. On a persist
// failure the entry stays in memory and the recoverable error is returned.
func (s *Store) Put(key string, value Value) failure.ClassifiedError {
	s.entries[key] = value
	if err := s.Save(); err != nil {
		return err
	}
	s.metadataSink.RecordCache(metadata.CacheStored, key, []metadata.Attribute{
		metadata.NewAttr(metadata.AttrKind, string(value.Kind())),
	})
	return nil
}

func (s *Store) Len() int {
	return len(s.entries)
}

// Keys returns every key in ascending byte order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) Location() string {
	return s.backend.Location()
}

func (s *Store) recordError(action string, err *CacheError) {
	s.metadataSink.RecordError(
		time.Now(),
		"cache",
		action,
		mapCacheErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, err.Location),
		},
	)
}

func asCacheError(err error, cause CacheErrorCause, location string) *CacheError {
	var cacheErr *CacheError
	if errors.As(err, &cacheErr) {
		return cacheErr
	}
	return newCacheError(cause, location, err)
}
