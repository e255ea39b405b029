package http

import (
	"log/slog"
	"net/http"
	"strings"

	"eventsplatform/internal/delivery/http/controllers"
	"eventsplatform/internal/delivery/http/middleware"
	"eventsplatform/internal/domain"
	"eventsplatform/internal/metrics"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterDeps collects what NewRouter needs to build the handler tree.
type RouterDeps struct {
	Logger             *slog.Logger
	DB                 controllers.Pinger
	Users              domain.UserService
	Events             domain.EventService
	EventLocations     domain.EventLocationService
	Enrollments        domain.EnrollmentService
	TokenVerifier      domain.TokenVerifier
	RateLimiter        *middleware.RateLimiter
	CORSAllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes and the
// global middleware chain.
func NewRouter(d RouterDeps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userController := controllers.NewUserController(logger, d.Users)
	eventController := controllers.NewEventController(logger, d.Events)
	locationController := controllers.NewEventLocationController(logger, d.EventLocations)
	enrollmentController := controllers.NewEnrollmentController(logger, d.Enrollments)
	healthController := controllers.NewHealthController(logger, d.DB)

	auth := middleware.RequireAuth(d.TokenVerifier, logger)
	limit := d.RateLimiter.Wrap

	mux := http.NewServeMux()
	var methods []string
	handle := func(pattern string, h http.Handler) {
		if method, _, ok := strings.Cut(pattern, " "); ok {
			methods = append(methods, method)
		}
		mux.Handle(pattern, h)
	}

	// Users
	handle("POST /api/user/register", limit(userController.Register))
	handle("POST /api/user/login", limit(userController.Login))

	// Events
	handle("GET /api/event", http.HandlerFunc(eventController.ListEvents))
	handle("GET /api/event/{id}", http.HandlerFunc(eventController.GetEvent))
	handle("POST /api/event", auth(eventController.CreateEvent))
	handle("PUT /api/event/{id}", auth(eventController.UpdateEvent))
	handle("DELETE /api/event/{id}", auth(eventController.DeleteEvent))

	// Enrollments
	handle("POST /api/event/{id}/enrollment", limit(auth(enrollmentController.Enroll)))
	handle("DELETE /api/event/{id}/enrollment", limit(auth(enrollmentController.Unenroll)))
	handle("GET /api/event/{id}/enrollments", http.HandlerFunc(enrollmentController.ListEnrollments))

	// Event locations
	handle("GET /api/event-location", auth(locationController.ListEventLocations))
	handle("GET /api/event-location/{id}", auth(locationController.GetEventLocation))
	handle("POST /api/event-location", auth(locationController.CreateEventLocation))
	handle("PUT /api/event-location/{id}", auth(locationController.UpdateEventLocation))
	handle("DELETE /api/event-location/{id}", auth(locationController.DeleteEventLocation))

	// Health and operations
	handle("GET /api/test-db", http.HandlerFunc(healthController.TestDB))
	handle("GET /healthz", http.HandlerFunc(healthController.Healthz))
	handle("GET /metrics", metrics.Handler())

	// Swagger
	handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = metrics.HTTPMiddleware(mux)
	handler = middleware.CORS(d.CORSAllowedOrigins, methods, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(logger, handler)
	return handler
}
