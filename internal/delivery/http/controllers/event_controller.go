package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventsplatform/internal/delivery/http/helpers"
	"eventsplatform/internal/delivery/http/middleware"
	"eventsplatform/internal/domain"
)

// MsgInvalidStartDateFilter is returned for a startdate query value that is not YYYY-MM-DD.
const MsgInvalidStartDateFilter = "El filtro de fecha debe tener el formato AAAA-MM-DD"

// EventSuccessResponse is the success envelope for event writes.
type EventSuccessResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *domain.Event `json:"data"`
}

// EventListResponse is the body of GET /api/event.
type EventListResponse struct {
	Collection []*domain.Event    `json:"collection"`
	Pagination *domain.Pagination `json:"pagination"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Paginated event listing with creator, location and tags. Filters are optional and combined with AND.
// @Tags events
// @Produce json
// @Param name query string false "Case-insensitive substring of the event name"
// @Param startdate query string false "Start day, YYYY-MM-DD"
// @Param tag query string false "Case-insensitive substring of a tag name"
// @Param limit query int false "Page size (default 15, max 100)"
// @Param offset query int false "Rows to skip (default 0)"
// @Success 200 {object} controllers.EventListResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.EventFilter{Name: q.Get("name"), Tag: q.Get("tag")}
	if s := q.Get("startdate"); s != "" {
		day, err := time.Parse(time.DateOnly, s)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, MsgInvalidStartDateFilter)
			return
		}
		filter.StartDate = &day
	}
	params := helpers.ParsePagination(r)

	events, total, err := c.Service.List(r.Context(), filter, params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	pagination := domain.NewPagination(params, total)
	helpers.WriteCollection(w, events, &pagination)
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} domain.Event
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, domain.MsgEventNotFound)
		return
	}
	event, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create an event
// @Description The authenticated user becomes the event's creator. max_assistance may not exceed the location's max_capacity.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body domain.EventInput true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, middleware.MsgMissingToken)
		return
	}
	var in domain.EventInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	event, err := c.Service.Create(r.Context(), userID, &in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, domain.MsgEventCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Only the creator may update. Omitting tags keeps the current ones; an empty list clears them.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param event body domain.EventInput true "Event data"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/{id} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, middleware.MsgMissingToken)
		return
	}
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, domain.MsgEventNotFoundForUpdate)
		return
	}
	var in domain.EventInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	event, err := c.Service.Update(r.Context(), id, userID, &in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.MsgEventUpdated, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Only the creator may delete, and only while nobody is enrolled.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, middleware.MsgMissingToken)
		return
	}
	id, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, domain.MsgEventNotFoundForDelete)
		return
	}
	if err := c.Service.Delete(r.Context(), id, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.MsgEventDeleted, nil)
}
