package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/nps-sites/internal/metadata"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
)

type TransportErrorCause string

const (
	ErrCauseInvalidRequest        TransportErrorCause = "invalid request"
	ErrCauseNetworkFailure        TransportErrorCause = "network issues"
	ErrCauseNonSuccessStatus      TransportErrorCause = "non-success status"
	ErrCauseReadResponseBodyError TransportErrorCause = "failed to read response body"
	ErrCauseCanceled              TransportErrorCause = "canceled"
)

// TransportError means no usable response came back. Nothing is cached.
type TransportError struct {
	Message    string
	Retryable  bool
	Cause      TransportErrorCause
	URL        string
	StatusCode int
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: %s (%d): %s", e.Cause, e.StatusCode, e.URL)
	}
	return fmt.Sprintf("transport error: %s: %s", e.Cause, e.Message)
}

func (e *TransportError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

type DecodeErrorCause string

const (
	ErrCauseInvalidJSON     DecodeErrorCause = "invalid json"
	ErrCauseUnexpectedShape DecodeErrorCause = "unexpected shape"
)

// DecodeError means a response arrived but is not the structured payload
// that was asked for. Nothing is cached.
type DecodeError struct {
	Message   string
	Retryable bool
	Cause     DecodeErrorCause
	URL       string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s: %s", e.Cause, e.Message)
}

func (e *DecodeError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err failure.ClassifiedError) metadata.ErrorCause {
	switch e := err.(type) {
	case *TransportError:
		switch e.Cause {
		case ErrCauseNetworkFailure, ErrCauseNonSuccessStatus, ErrCauseReadResponseBodyError:
			return metadata.CauseNetworkFailure
		default:
			return metadata.CauseUnknown
		}
	case *DecodeError:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
