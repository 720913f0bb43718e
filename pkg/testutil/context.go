package testutil

import (
	"net/http"
	"time"

	"amlscope/pkg/requestcontext"
)

// WithRequestID adds a request ID to the request context, as the requestid
// middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithRequestTime stamps the request arrival time, as the requesttime
// middleware would.
func WithRequestTime(req *http.Request, at time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), at))
}
