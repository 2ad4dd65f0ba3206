package middleware

import (
	"net/http"

	"github.com/empmanager/personnel-management/pkg/logger"
	"github.com/google/uuid"
)

// TraceHeader carries the request trace id, minted here unless the caller
// already sent one.
const TraceHeader = "X-Trace-ID"

// RequestID tags every request with a trace id and binds it to the
// request-scoped logger, so every log line of the request carries it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}
		w.Header().Set(TraceHeader, traceID)

		ctx := logger.With(r.Context(), "trace_id", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
