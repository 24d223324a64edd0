package metadata

import (
	"time"
)

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause MUST NOT be used to decide whether a step is re-prompted,
	   recovered or aborted; that is what failure.Severity is for.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

Meaning:
  - The failure does not map cleanly to any known category.

# CauseNetworkFailure

Meaning:
  - Failure caused by network transport or remote availability.

Examples:
  - DNS resolution failures
  - Connection resets
  - Non-success HTTP status

# CauseContentInvalid

Meaning:
  - Content was fetched but could not be processed meaningfully.

Examples:
  - Body is not valid JSON where JSON was expected
  - Expected markup container or field is absent

# CauseStorageFailure

Meaning:
  - Failure while reading or writing the response cache.

Examples:
  - Corrupt cache file
  - Write permission errors
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseContentInvalid
	CauseStorageFailure
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

// CacheEvent describes what the cache did for a request key.
type CacheEvent string

const (
	CacheHit     CacheEvent = "hit"
	CacheMiss    CacheEvent = "miss"
	CacheStored  CacheEvent = "stored"
	CacheLoaded  CacheEvent = "loaded"
	CacheIgnored CacheEvent = "ignored"
)

type FetchEvent struct {
	FetchURL    string
	HTTPStatus  int
	Duration    time.Duration
	ContentType string
	SizeBytes   int
	Digest      string
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL        AttributeKey = "url"
	AttrHost       AttributeKey = "host"
	AttrPath       AttributeKey = "path"
	AttrField      AttributeKey = "field"
	AttrSelector   AttributeKey = "selector"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrKind       AttributeKey = "kind"
	AttrCount      AttributeKey = "count"
	AttrMessage    AttributeKey = "message"
)
