package errors

import "net/http"

var ErrTaskAlreadyBilled = &Exception{
	Kind:       KindConflict,
	Message:    "task is referenced by an invoice and cannot be deleted",
	StatusCode: http.StatusConflict,
}
