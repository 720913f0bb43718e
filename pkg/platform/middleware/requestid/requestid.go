// Package requestid tags each request with an identifier for log correlation.
package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"amlscope/pkg/requestcontext"
)

// Header carries the request ID in both directions.
const Header = "X-Request-ID"

// maxInboundLen bounds caller-supplied IDs.
const maxInboundLen = 128

// Middleware reuses a caller-supplied X-Request-ID or mints a UUID, stores it
// in the context, and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(Header)
		if reqID == "" || len(reqID) > maxInboundLen {
			reqID = uuid.NewString()
		}
		w.Header().Set(Header, reqID)
		ctx := requestcontext.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
