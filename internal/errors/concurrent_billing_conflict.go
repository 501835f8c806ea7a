package errors

import "net/http"

var ErrConcurrentBillingConflict = &Exception{
	Kind:       KindConcurrentBilling,
	Message:    "another invoice claimed these tasks first",
	StatusCode: http.StatusConflict,
}
