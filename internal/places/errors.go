package places

import (
	"fmt"

	"github.com/rohmanhakim/nps-sites/internal/metadata"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
)

type RequestErrorCause string

const (
	ErrCauseMissingAPIKey RequestErrorCause = "missing api key"
	ErrCauseMissingOrigin RequestErrorCause = "missing origin"
)

// RequestError means a search could not be built, so nothing was sent.
type RequestError struct {
	Message   string
	Retryable bool
	Cause     RequestErrorCause
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("places request error: %s: %s", e.Cause, e.Message)
}

func (e *RequestError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapRequestErrorToMetadataCause maps places-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapRequestErrorToMetadataCause(err *RequestError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseMissingAPIKey, ErrCauseMissingOrigin:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
