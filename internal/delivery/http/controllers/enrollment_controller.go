package controllers

import (
	"log/slog"
	"net/http"

	"eventsplatform/internal/delivery/http/helpers"
	"eventsplatform/internal/delivery/http/middleware"
	"eventsplatform/internal/domain"
)

// EnrollmentListResponse is the body of GET /api/event/{id}/enrollments.
type EnrollmentListResponse struct {
	Collection []*domain.EnrollmentDetail `json:"collection"`
}

// EnrollmentController exposes the enrollment lifecycle of an event.
type EnrollmentController struct {
	Logger  *slog.Logger
	Service domain.EnrollmentService
}

func NewEnrollmentController(logger *slog.Logger, svc domain.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		Logger:  logger,
		Service: svc,
	}
}

// Enroll godoc
// @Summary Enroll in an event
// @Description Enrolls the authenticated user. The event must be enabled, start after today and have a free spot.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/{id}/enrollment [post]
func (c *EnrollmentController) Enroll(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := c.target(w, r)
	if !ok {
		return
	}
	if _, err := c.Service.Enroll(r.Context(), eventID, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, domain.MsgEnrolled, nil)
}

// Unenroll godoc
// @Summary Leave an event
// @Description Removes the authenticated user's enrollment. Not allowed on or after the event's start day.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 429 {object} helpers.APIResponse "error.code: too_many_requests"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/{id}/enrollment [delete]
func (c *EnrollmentController) Unenroll(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := c.target(w, r)
	if !ok {
		return
	}
	if _, err := c.Service.Unenroll(r.Context(), eventID, userID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.MsgUnenrolled, nil)
}

// ListEnrollments godoc
// @Summary List an event's participants
// @Tags enrollments
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.EnrollmentListResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/event/{id}/enrollments [get]
func (c *EnrollmentController) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	eventID, ok := helpers.PathID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, domain.MsgEventNotFound)
		return
	}
	list, err := c.Service.ListEnrollments(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteCollection(w, list, nil)
}

func (c *EnrollmentController) target(w http.ResponseWriter, r *http.Request) (eventID, userID int64, ok bool) {
	userID, ok = middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, middleware.MsgMissingToken)
		return 0, 0, false
	}
	eventID, ok = helpers.PathID(r, "id")
	if !ok {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, domain.MsgEventNotFound)
		return 0, 0, false
	}
	return eventID, userID, true
}
