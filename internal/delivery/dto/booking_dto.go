package dto

import (
	"time"
)

// Request DTOs

type CreateBookingRequest struct {
	CustomerID    string     `json:"customer_id" validate:"required,max=100"`
	CustomerName  string     `json:"customer_name" validate:"required,max=255"`
	ServiceType   string     `json:"service_type" validate:"required,max=100"`
	Description   string     `json:"description"`
	Address       string     `json:"address" validate:"required"`
	ScheduledTime *time.Time `json:"scheduled_time"`
}

// UpdateStatusRequest is a generic status change. Missing actor fields default to the system actor.
type UpdateStatusRequest struct {
	Status             string  `json:"status" validate:"required,booking_status"`
	UpdatedBy          string  `json:"updated_by"`
	UpdatedByType      string  `json:"updated_by_type" validate:"omitempty,actor_type"`
	CancellationReason *string `json:"cancellation_reason"`
}

// ProviderActionRequest is sent by a provider accepting or rejecting a booking
type ProviderActionRequest struct {
	ProviderID string `json:"provider_id" validate:"required"`
}

type CancelBookingRequest struct {
	CancelledBy     string  `json:"cancelled_by"`
	CancelledByType string  `json:"cancelled_by_type" validate:"omitempty,actor_type"`
	Reason          *string `json:"reason"`
}

// Response DTOs

type BookingResponse struct {
	ID                 string            `json:"id"`
	CustomerID         string            `json:"customer_id"`
	CustomerName       string            `json:"customer_name"`
	ServiceType        string            `json:"service_type"`
	Description        string            `json:"description"`
	Address            string            `json:"address"`
	ScheduledTime      *time.Time        `json:"scheduled_time,omitempty"`
	Status             string            `json:"status"`
	ProviderID         *string           `json:"provider_id"`
	AssignedProvider   *ProviderResponse `json:"assigned_provider,omitempty"`
	CancelledBy        *string           `json:"cancelled_by,omitempty"`
	CancellationReason *string           `json:"cancellation_reason,omitempty"`
	Version            int64             `json:"version"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
