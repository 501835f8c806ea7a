package errors

import "net/http"

var ErrProjectNotFound = &Exception{
	Kind:       KindNotFound,
	Message:    "project not found",
	StatusCode: http.StatusNotFound,
}
