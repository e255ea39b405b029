package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"eventsplatform/internal/delivery/http/helpers"
	"eventsplatform/internal/domain"
)

// Health check messages.
const (
	MsgDatabaseUp   = "Conexión a la base de datos exitosa"
	MsgDatabaseDown = "No se pudo conectar a la base de datos"
)

const pingTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController answers liveness and database checks.
type HealthController struct {
	Logger *slog.Logger
	DB     Pinger
}

func NewHealthController(logger *slog.Logger, db Pinger) *HealthController {
	return &HealthController{Logger: logger, DB: db}
}

// TestDB godoc
// @Summary Check database connectivity
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Failure 503 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/test-db [get]
func (c *HealthController) TestDB(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()
	if err := c.DB.Ping(ctx); err != nil {
		c.Logger.ErrorContext(r.Context(), "database ping failed", "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeInternalError, MsgDatabaseDown)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MsgDatabaseUp, nil)
}

// Healthz godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /healthz [get]
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, "ok", nil)
}

var _ Pinger = (domain.Store)(nil)
