package errors

import "net/http"

var ErrNoTrackedTime = &Exception{
	Kind:       KindNoTrackedTime,
	Message:    "completed tasks have no tracked time",
	StatusCode: http.StatusUnprocessableEntity,
}
