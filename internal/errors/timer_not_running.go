package errors

import "net/http"

var ErrTimerNotRunning = &Exception{
	Kind:       KindConflict,
	Message:    "no running timer for this task",
	StatusCode: http.StatusConflict,
}
