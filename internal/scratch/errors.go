package scratch

import (
	"fmt"

	"github.com/rohmanhakim/aoc-cache/pkg/failure"
)

type ScratchErrorCause string

const (
	ErrCausePathError ScratchErrorCause = "path error"
)

type ScratchError struct {
	Message   string
	Retryable bool
	Cause     ScratchErrorCause
}

func (e *ScratchError) Error() string {
	return fmt.Sprintf("scratch error: %s", e.Cause)
}

func (e *ScratchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
