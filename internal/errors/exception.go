package errors

import (
	"errors"
	"net/http"
)

// Error kinds are part of the API contract; clients branch on them.
const (
	KindValidation        = "validation"
	KindNotFound          = "not_found"
	KindNoBillableWork    = "no_billable_work"
	KindNoTrackedTime     = "no_tracked_time"
	KindConcurrentBilling = "concurrent_billing_conflict"
	KindConflict          = "conflict"
	KindStorageFailure    = "storage_failure"
)

type Exception struct {
	Kind       string
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// Validation wraps a caller-fault message as a 400 exception.
func Validation(message string) *Exception {
	return &Exception{
		Kind:       KindValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// From normalizes any error into an Exception. Unknown errors are reported
// as storage failures so backend details never leak to clients.
func From(err error) *Exception {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Exception{
		Kind:       KindStorageFailure,
		Message:    "internal storage failure",
		StatusCode: http.StatusInternalServerError,
	}
}

func StatusCode(err error) int {
	return From(err).StatusCode
}
