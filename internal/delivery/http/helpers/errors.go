package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventsplatform/internal/domain"
)

// StatusFor maps a service error to its HTTP status and error code.
// Ownership failures are reported as 404 so foreign resources look absent.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrCodeBadRequest
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// WriteServiceError writes err using StatusFor. Unclassified errors are logged
// and answered with a generic message.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, code := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, status, code, domain.MsgInternalError)
		return
	}
	msg, ok := domain.MessageOf(err)
	if !ok {
		msg = err.Error()
	}
	WriteJSONError(w, status, code, msg)
}
