package helpers

import (
	"net/http"

	"github.com/fallsafe/voucher-email/internal/models"
)

// RespondHTTP writes a handler response to rw. The body is already serialized JSON.
// A zero status code is written as 200.
func RespondHTTP(response models.Response, rw http.ResponseWriter) {
	for k, v := range response.Headers {
		rw.Header().Set(k, v)
	}
	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	rw.WriteHeader(statusCode)
	_, _ = rw.Write([]byte(response.Body))
}
