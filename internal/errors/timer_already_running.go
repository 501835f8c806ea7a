package errors

import "net/http"

var ErrTimerAlreadyRunning = &Exception{
	Kind:       KindConflict,
	Message:    "a timer is already running for this task",
	StatusCode: http.StatusConflict,
}
