package dto

// Request DTOs

type AssignProviderRequest struct {
	ProviderID string `json:"provider_id" validate:"required"`
}

// OverrideStatusRequest forces a status regardless of the transition table
type OverrideStatusRequest struct {
	Status string  `json:"status" validate:"required,booking_status"`
	Reason *string `json:"reason"`
}
