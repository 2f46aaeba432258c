// Package models provides the core data structures exchanged between the runtime, the handler and the providers.
package models

// Request is the canonical voucher request, normalised from either invocation shape.
type Request struct {
	Email        string
	VoucherCount int
}

// Response defines the structure returned to the invoker: an HTTP status code and a serialized JSON body.
type Response struct {
	Body       string
	Headers    map[string]string
	StatusCode int
}
