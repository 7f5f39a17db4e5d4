package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"home-service-booking/internal/delivery/dto"
	"home-service-booking/internal/domain/entity"
	"home-service-booking/internal/usecase"
	"home-service-booking/pkg/response"
	"home-service-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to create booking")
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.BookingFilter{
		CustomerID: query.Get("customer_id"),
		ProviderID: query.Get("provider_id"),
		Status:     entity.BookingStatus(query.Get("status")),
	}

	bookings, err := h.bookingUsecase.ListBookings(r.Context(), filter)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get bookings")
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingUsecase.GetBooking(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeUsecaseError(w, err, "Failed to get booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", booking)
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.TransitionStatus(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to update booking status")
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated successfully", booking)
}

func (h *BookingHandler) AcceptBooking(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProviderAction(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.AcceptBooking(r.Context(), mux.Vars(r)["id"], req.ProviderID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to accept booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking accepted successfully", booking)
}

func (h *BookingHandler) RejectBooking(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProviderAction(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.RejectAssignment(r.Context(), mux.Vars(r)["id"], req.ProviderID)
	if err != nil {
		writeUsecaseError(w, err, "Failed to reject booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking rejected successfully", booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	// The body is optional
	var req dto.CancelBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CancelBooking(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to cancel booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking cancelled successfully", booking)
}

func (h *BookingHandler) GetBookingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.bookingUsecase.GetBookingEvents(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeUsecaseError(w, err, "Failed to get booking events")
		return
	}

	response.Success(w, http.StatusOK, "Booking events retrieved successfully", events)
}

func (h *BookingHandler) decodeProviderAction(w http.ResponseWriter, r *http.Request) (*dto.ProviderActionRequest, bool) {
	var req dto.ProviderActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return nil, false
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}

	return &req, true
}
