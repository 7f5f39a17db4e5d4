package http

import (
	"net/http"

	"home-service-booking/internal/delivery/http/handler"
	"home-service-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	bookingHandler    *handler.BookingHandler
	providerHandler   *handler.ProviderHandler
	adminHandler      *handler.AdminHandler
	metricsHandler    http.Handler
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	bookingHandler *handler.BookingHandler,
	providerHandler *handler.ProviderHandler,
	adminHandler *handler.AdminHandler,
	metricsHandler http.Handler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		bookingHandler:    bookingHandler,
		providerHandler:   providerHandler,
		adminHandler:      adminHandler,
		metricsHandler:    metricsHandler,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Operational endpoints
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Bookings
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.HandleFunc("", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	bookings.HandleFunc("", r.bookingHandler.ListBookings).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}", r.bookingHandler.GetBooking).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}/status", r.bookingHandler.UpdateStatus).Methods(http.MethodPatch)
	bookings.HandleFunc("/{id}/accept", r.bookingHandler.AcceptBooking).Methods(http.MethodPost)
	bookings.HandleFunc("/{id}/reject", r.bookingHandler.RejectBooking).Methods(http.MethodPost)
	bookings.HandleFunc("/{id}/cancel", r.bookingHandler.CancelBooking).Methods(http.MethodPost)
	bookings.HandleFunc("/{id}/events", r.bookingHandler.GetBookingEvents).Methods(http.MethodGet)

	// Providers
	providers := api.PathPrefix("/providers").Subrouter()
	providers.HandleFunc("", r.providerHandler.ListProviders).Methods(http.MethodGet)
	providers.HandleFunc("", r.providerHandler.RegisterProvider).Methods(http.MethodPost)
	providers.HandleFunc("/{id}", r.providerHandler.GetProvider).Methods(http.MethodGet)
	providers.HandleFunc("/{id}/bookings", r.providerHandler.GetProviderBookings).Methods(http.MethodGet)
	providers.HandleFunc("/{id}/availability", r.providerHandler.UpdateAvailability).Methods(http.MethodPatch)

	// Admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/events", r.adminHandler.GetEventHistory).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/assign", r.adminHandler.AssignProvider).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id}/override-status", r.adminHandler.OverrideStatus).Methods(http.MethodPost)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
