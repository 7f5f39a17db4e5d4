package handler

import (
	"encoding/json"
	"net/http"

	"home-service-booking/internal/delivery/dto"
	"home-service-booking/internal/domain/entity"
	"home-service-booking/internal/usecase"
	"home-service-booking/pkg/response"
	"home-service-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewAdminHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *AdminHandler) GetEventHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.EventFilter{
		BookingID: query.Get("booking_id"),
		EventType: entity.EventType(query.Get("event_type")),
	}

	events, err := h.bookingUsecase.GetEventHistory(r.Context(), filter)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get event history")
		return
	}

	response.Success(w, http.StatusOK, "Event history retrieved successfully", events)
}

func (h *AdminHandler) AssignProvider(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.AssignProvider(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to assign provider")
		return
	}

	response.Success(w, http.StatusOK, "Provider assigned successfully", booking)
}

func (h *AdminHandler) OverrideStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.OverrideStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.OverrideStatus(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to override booking status")
		return
	}

	response.Success(w, http.StatusOK, "Booking status overridden successfully", booking)
}
