package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/bloghub/blog-management/pkg/logger"
)

// RequestID propagates an inbound trace id, or mints one, and binds it to
// the request-scoped logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		w.Header().Set("X-Trace-ID", traceID)
		ctx := logger.With(r.Context(), "trace_id", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
