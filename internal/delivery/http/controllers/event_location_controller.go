package controllers

import (
	"log/slog"
	"net/http"

	"eventsplatform/internal/delivery/http/helpers"
	"eventsplatform/internal/delivery/http/middleware"
	"eventsplatform/internal/domain"
)

// EventLocationSuccessResponse is the success envelope for location writes.
type EventLocationSuccessResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    *domain.EventLocation `json:"data"`
}

// EventLocationListResponse is the body of GET /api/event-location.
type EventLocationListResponse struct {
	Collection []*domain.EventLocation `json:"collection"`
	Pagination *domain.Pagination      `json:"pagination"`
}

// EventLocationController serves the authenticated user's venues. Every route is owner scoped.
type EventLocationController struct {
	Logger  *slog.Logger
	Service domain.EventLocationService
}

func NewEventLocationController(logger *slog.Logger, svc domain.EventLocationService) *EventLocationController {
	return &EventLocationController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEventLocations godoc
// @Summary List my event locations
// @Tags event-locations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 15, max 100)"
// @Param offset query int false "Rows to skip (default 0)"
// @Success 200 {object} controllers.EventLocationListResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event-location [get]
func (c *EventLocationController) ListEventLocations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, middleware.MsgMissingToken)
		return
	}
	params := helpers.ParsePagination(r)
	locations, total, err := c.Service.ListByUser(r.Context(), userID, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	pagination := domain.NewPagination(params, total)
	helpers.WriteCollection(w, locations, &pagination)
}

// GetEventLocation godoc
// @Summary Get one of my event locations
// @Tags event-locations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event location ID"
// @Success 200 {object} domain.EventLocation
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event-location/{id} [get]
func (c *EventLocationController) GetEventLocation(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := c.target(w, r)
	if !ok {
		return
	}
	location, err := c.Service.GetByID(r.Context(), id, userID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, location)
}

// CreateEventLocation godoc
// @Summary Create an event location
// @Tags event-locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param location body domain.EventLocationInput true "Location data"
// @Success 201 {object} controllers.EventLocationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event-location [post]
func (c *EventLocationController) CreateEventLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, middleware.MsgMissingToken)
		return
	}
	var in domain.EventLocationInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	location, err := c.Service.Create(r.Context(), userID, &in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, domain.MsgLocationCreated, location)
}

// UpdateEventLocation godoc
// @Summary Update one of my event locations
// @Tags event-locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event location ID"
// @Param location body domain.EventLocationInput true "Location data"
// @Success 200 {object} controllers.EventLocationSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event-location/{id} [put]
func (c *EventLocationController) UpdateEventLocation(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := c.target(w, r)
	if !ok {
		return
	}
	var in domain.EventLocationInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	location, err := c.Service.Update(r.Context(), id, userID, &in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.MsgLocationUpdated, location)
}

// DeleteEventLocation godoc
// @Summary Delete one of my event locations
// @Description Fails while any event still takes place at the location.
// @Tags event-locations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event location ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event-location/{id} [delete]
func (c *EventLocationController) DeleteEventLocation(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := c.target(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.MsgLocationDeleted, nil)
}

func (c *EventLocationController) target(w http.ResponseWriter, r *http.Request) (userID, id int64, ok bool) {
	userID, ok = middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, middleware.MsgMissingToken)
		return 0, 0, false
	}
	id, ok = helpers.PathID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, domain.MsgLocationNotFoundForUser)
		return 0, 0, false
	}
	return userID, id, true
}
