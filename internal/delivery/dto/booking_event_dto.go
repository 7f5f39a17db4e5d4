package dto

import (
	"time"

	"home-service-booking/internal/domain/entity"
)

// Response DTOs

type BookingEventResponse struct {
	ID              int64       `json:"id"`
	BookingID       string      `json:"booking_id"`
	EventType       string      `json:"event_type"`
	EventData       entity.JSON `json:"event_data"`
	PerformedBy     string      `json:"performed_by"`
	PerformedByType string      `json:"performed_by_type"`
	CreatedAt       time.Time   `json:"created_at"`
}

type BookingEventListResponse struct {
	Events []BookingEventResponse `json:"events"`
	Total  int                    `json:"total"`
}

// EventHistoryResponse is an event with a summary of the booking it belongs to
type EventHistoryResponse struct {
	BookingEventResponse
	CustomerName string `json:"customer_name"`
	ServiceType  string `json:"service_type"`
}

type EventHistoryListResponse struct {
	Events []EventHistoryResponse `json:"events"`
	Total  int                    `json:"total"`
}
