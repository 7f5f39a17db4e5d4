package handler

import (
	"errors"
	"net/http"

	"home-service-booking/internal/usecase"
	"home-service-booking/pkg/response"
)

// writeUsecaseError maps usecase errors to HTTP responses.
// Store failures are reported with the fallback message only.
func writeUsecaseError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, usecase.ErrBookingNotFound):
		response.NotFound(w, "Booking not found")
	case errors.Is(err, usecase.ErrProviderNotFound):
		response.NotFound(w, "Provider not found")
	case errors.Is(err, usecase.ErrProviderExists):
		response.Error(w, http.StatusConflict, "Provider already exists", nil)
	case errors.Is(err, usecase.ErrProviderMismatch):
		response.Forbidden(w, "Provider not assigned to this booking")
	case errors.Is(err, usecase.ErrInvalidTransition), errors.Is(err, usecase.ErrInvalidState):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, usecase.ErrConflict):
		response.Error(w, http.StatusConflict, "Booking was modified concurrently, retry the request", nil)
	case errors.Is(err, usecase.ErrNoProviderAvailable):
		response.Error(w, http.StatusConflict, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
