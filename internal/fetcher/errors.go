package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/aoc-cache/internal/metadata"
	"github.com/rohmanhakim/aoc-cache/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseNetworkFailure        = "network issues"
	ErrCauseReadResponseBodyError = "failed to read response body"
	ErrCauseUnauthorized          = "unauthorized"
	ErrCauseNotFound              = "not found"
	ErrCauseRequestInvalid        = "client error"
	ErrCauseRequest5xx            = "5xx"
)

// FetchError carries the status code alongside the cause so a caller
// can tell a bad credential (unauthorized) from a bad URL (not found,
// client error) without re-parsing messages.
type FetchError struct {
	Message    string
	Retryable  bool
	Cause      FetchErrorCause
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s", e.Cause)
}

func (e *FetchError) Severity() failure.Severity {
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
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNetworkFailure:
		return metadata.CauseNetworkFailure
	case ErrCauseReadResponseBodyError:
		return metadata.CauseNetworkFailure
	case ErrCauseUnauthorized:
		return metadata.CauseAccessDenied
	case ErrCauseNotFound:
		return metadata.CauseRequestInvalid
	case ErrCauseRequestInvalid:
		return metadata.CauseRequestInvalid
	default:
		return metadata.CauseUnknown
	}
}
