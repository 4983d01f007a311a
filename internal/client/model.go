package client

import "net/http"

// CircuitBreakerResponse is a fully read upstream response.
type CircuitBreakerResponse struct {
	Body       []byte
	StatusCode int
	Header     http.Header
}
