package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/empmanager/personnel-management/pkg/logger"
)

// Recovery converts panics into a 500 response instead of tearing down the
// connection. The panic value never reaches the client; the stack goes to
// the request-scoped logger so it carries the trace id.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.From(r.Context()).Error("panic recovered",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"type":"internal","code":"INTERNAL_ERROR","message":"internal server error"}`))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
