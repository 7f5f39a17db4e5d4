package dto

import "time"

// Request DTOs

// CreateProviderRequest registers a provider. An empty id is generated.
type CreateProviderRequest struct {
	ID           string   `json:"id" validate:"omitempty,max=100"`
	Name         string   `json:"name" validate:"required,min=2,max=255"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        string   `json:"phone" validate:"omitempty,max=50"`
	ServiceTypes []string `json:"service_types" validate:"required,min=1,dive,required"`
	IsAvailable  *bool    `json:"is_available"`
}

type UpdateAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

// Response DTOs

type ProviderResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	ServiceTypes []string  `json:"service_types"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProviderListResponse struct {
	Providers []ProviderResponse `json:"providers"`
	Total     int                `json:"total"`
}
