package errors

import "net/http"

var ErrProjectHasInvoices = &Exception{
	Kind:       KindConflict,
	Message:    "project has invoices and cannot be deleted",
	StatusCode: http.StatusConflict,
}
