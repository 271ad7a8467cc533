package errs

import (
	"errors"
	"net/http"
)

// Request & Input-Validation Errors
var ErrInvalidSubmission = errors.New(InvalidSubmissionMessage)

// InvalidSubmissionMessage is the only validation feedback a caller receives.
const InvalidSubmissionMessage = "Invalid contact submission"

// NewInvalidSubmissionError wraps a validation failure. The per-field detail
// stays in Cause for logging; the caller only sees the generic message.
func NewInvalidSubmissionError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidSubmission,
		Cause:      cause,
	}
}

func IsInvalidSubmissionError(err error) bool {
	return errors.Is(err, ErrInvalidSubmission)
}
