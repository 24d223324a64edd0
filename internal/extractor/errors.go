package extractor

import (
	"fmt"

	"github.com/rohmanhakim/nps-sites/internal/metadata"
	"github.com/rohmanhakim/nps-sites/pkg/failure"
)

type StructureErrorCause string

const (
	ErrCauseNotHTML          StructureErrorCause = "not html"
	ErrCauseMissingElement   StructureErrorCause = "missing element"
	ErrCauseMissingAttribute StructureErrorCause = "missing attribute"
	ErrCauseEmptyText        StructureErrorCause = "empty text"
	ErrCauseUnresolvableLink StructureErrorCause = "unresolvable link"
)

// StructureError means expected markup was absent. Field names what was
// being extracted and Selector the anchor that failed to match.
type StructureError struct {
	Message   string
	Retryable bool
	Cause     StructureErrorCause
	Field     string
	Selector  string
}

func (e *StructureError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("structure error: %s: %s (%s)", e.Cause, e.Field, e.Selector)
	}
	return fmt.Sprintf("structure error: %s: %s", e.Cause, e.Message)
}

func (e *StructureError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func missingElement(field, selector string) *StructureError {
	return &StructureError{
		Message:   fmt.Sprintf("no element matches %q", selector),
		Retryable: false,
		Cause:     ErrCauseMissingElement,
		Field:     field,
		Selector:  selector,
	}
}

// mapStructureErrorToMetadataCause maps extractor-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapStructureErrorToMetadataCause(err *StructureError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotHTML, ErrCauseMissingElement, ErrCauseMissingAttribute, ErrCauseEmptyText, ErrCauseUnresolvableLink:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
