package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"home-service-booking/internal/delivery/dto"
	"home-service-booking/internal/domain/entity"
	"home-service-booking/internal/usecase"
	"home-service-booking/pkg/response"
	"home-service-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type ProviderHandler struct {
	providerUsecase usecase.ProviderUsecase
	validator       *validator.CustomValidator
}

func NewProviderHandler(providerUsecase usecase.ProviderUsecase, validator *validator.CustomValidator) *ProviderHandler {
	return &ProviderHandler{
		providerUsecase: providerUsecase,
		validator:       validator,
	}
}

func (h *ProviderHandler) RegisterProvider(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	provider, err := h.providerUsecase.RegisterProvider(r.Context(), &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to register provider")
		return
	}

	response.Success(w, http.StatusCreated, "Provider registered successfully", provider)
}

func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	provider, err := h.providerUsecase.GetProvider(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeUsecaseError(w, err, "Failed to get provider")
		return
	}

	response.Success(w, http.StatusOK, "Provider retrieved successfully", provider)
}

func (h *ProviderHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := &entity.ProviderFilter{
		ServiceType: query.Get("service_type"),
	}

	if raw := query.Get("is_available"); raw != "" {
		isAvailable, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid is_available value", nil)
			return
		}
		filter.IsAvailable = &isAvailable
	}

	providers, err := h.providerUsecase.ListProviders(r.Context(), filter)
	if err != nil {
		writeUsecaseError(w, err, "Failed to get providers")
		return
	}

	response.Success(w, http.StatusOK, "Providers retrieved successfully", providers)
}

func (h *ProviderHandler) GetProviderBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.providerUsecase.GetProviderBookings(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeUsecaseError(w, err, "Failed to get provider bookings")
		return
	}

	response.Success(w, http.StatusOK, "Provider bookings retrieved successfully", bookings)
}

func (h *ProviderHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	provider, err := h.providerUsecase.UpdateAvailability(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeUsecaseError(w, err, "Failed to update provider availability")
		return
	}

	response.Success(w, http.StatusOK, "Provider availability updated successfully", provider)
}
