package cache

import (
	"fmt"

	"github.com/rohmanhakim/nps-sites/internal/metadata"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
)

type CacheErrorCause string

const (
	ErrCauseReadFailure   CacheErrorCause = "read failed"
	ErrCauseParseFailure  CacheErrorCause = "parse failed"
	ErrCauseEncodeFailure CacheErrorCause = "encode failed"
	ErrCauseWriteFailure  CacheErrorCause = "write failed"
)

// CacheError is raised by the Store and its backends. Every cache failure
// is constructed recoverable: a broken cache degrades to cold-cache
// behaviour and never aborts a lookup.
type CacheError struct {
	Message   string
	Retryable bool
	Cause     CacheErrorCause
	Location  string
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache error: %s: %s", e.Cause, e.Message)
}

func (e *CacheError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapCacheErrorToMetadataCause maps cache-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapCacheErrorToMetadataCause(err *CacheError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseReadFailure, ErrCauseParseFailure:
		return metadata.CauseStorageFailure
	case ErrCauseEncodeFailure, ErrCauseWriteFailure:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}

func newCacheError(cause CacheErrorCause, location string, err error) *CacheError {
	return &CacheError{
		Message:   err.Error(),
		Retryable: true,
		Cause:     cause,
		Location:  location,
	}
}
