package errors

import "net/http"

var ErrNoBillableWork = &Exception{
	Kind:       KindNoBillableWork,
	Message:    "no completed unbilled tasks to invoice",
	StatusCode: http.StatusUnprocessableEntity,
}
