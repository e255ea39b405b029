package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	h "eventsplatform/internal/delivery/http/helpers"
	"eventsplatform/internal/domain"
)

// Recovery turns a panic in next into a logged 500 response.
func Recovery(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered",
				"panic", rec,
				"path", r.URL.Path,
				"method", r.Method,
				"stack", string(debug.Stack()),
			)
			h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, domain.MsgInternalError)
		}()
		next.ServeHTTP(w, r)
	})
}
