package converter

import (
	"home-service-booking/internal/delivery/dto"
	"home-service-booking/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:                 booking.ID,
		CustomerID:         booking.CustomerID,
		CustomerName:       booking.CustomerName,
		ServiceType:        booking.ServiceType,
		Description:        booking.Description,
		Address:            booking.Address,
		ScheduledTime:      booking.ScheduledTime,
		Status:             string(booking.Status),
		ProviderID:         booking.ProviderID,
		CancelledBy:        booking.CancelledBy,
		CancellationReason: booking.CancellationReason,
		Version:            booking.Version,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}
}

// BookingWithProviderToResponse also embeds the assigned provider when known
func BookingWithProviderToResponse(booking *entity.Booking, provider *entity.Provider) *dto.BookingResponse {
	response := BookingToResponse(booking)
	if response != nil && provider != nil {
		response.AssignedProvider = ProviderToResponse(provider)
	}
	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}
