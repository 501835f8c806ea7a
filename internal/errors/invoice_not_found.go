package errors

import "net/http"

var ErrInvoiceNotFound = &Exception{
	Kind:       KindNotFound,
	Message:    "invoice not found",
	StatusCode: http.StatusNotFound,
}
