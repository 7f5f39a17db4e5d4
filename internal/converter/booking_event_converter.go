package converter

import (
	"home-service-booking/internal/delivery/dto"
	"home-service-booking/internal/domain/entity"
)

// BookingEventToResponse converts a BookingEvent entity to BookingEventResponse DTO
func BookingEventToResponse(event *entity.BookingEvent) *dto.BookingEventResponse {
	if event == nil {
		return nil
	}

	return &dto.BookingEventResponse{
		ID:              event.ID,
		BookingID:       event.BookingID,
		EventType:       string(event.EventType),
		EventData:       event.EventData,
		PerformedBy:     event.PerformedBy,
		PerformedByType: string(event.PerformedByType),
		CreatedAt:       event.CreatedAt,
	}
}

func BookingEventsToResponses(events []entity.BookingEvent) []dto.BookingEventResponse {
	responses := make([]dto.BookingEventResponse, len(events))
	for i := range events {
		responses[i] = *BookingEventToResponse(&events[i])
	}
	return responses
}

// EventHistoryToResponses converts joined history rows to EventHistoryResponse DTOs
func EventHistoryToResponses(entries []entity.EventHistoryEntry) []dto.EventHistoryResponse {
	responses := make([]dto.EventHistoryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = dto.EventHistoryResponse{
			BookingEventResponse: dto.BookingEventResponse{
				ID:              entry.ID,
				BookingID:       entry.BookingID,
				EventType:       string(entry.EventType),
				EventData:       entry.EventData,
				PerformedBy:     entry.PerformedBy,
				PerformedByType: string(entry.PerformedByType),
				CreatedAt:       entry.CreatedAt,
			},
			CustomerName: entry.CustomerName,
			ServiceType:  entry.ServiceType,
		}
	}
	return responses
}
