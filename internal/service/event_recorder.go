package service

import (
	"context"
	"time"

	"home-service-booking/internal/domain/entity"
	"home-service-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventRecorder appends the audit event of a booking mutation inside the caller's transaction
type EventRecorder interface {
	RecordCreated(ctx context.Context, tx *gorm.DB, booking *entity.Booking) (*entity.BookingEvent, error)
	RecordStatusChanged(ctx context.Context, tx *gorm.DB, bookingID string, payload entity.StatusChangedPayload, actorID string, actorType entity.ActorType, at time.Time) (*entity.BookingEvent, error)
	RecordProviderAssigned(ctx context.Context, tx *gorm.DB, bookingID, providerID, assignedBy string, at time.Time) (*entity.BookingEvent, error)
}

type eventRecorder struct {
	log       *logrus.Logger
	eventRepo repository.BookingEventRepository
}

func NewEventRecorder(log *logrus.Logger, eventRepo repository.BookingEventRepository) EventRecorder {
	return &eventRecorder{
		log:       log,
		eventRepo: eventRepo,
	}
}

// RecordCreated logs a created event attributed to the customer
func (s *eventRecorder) RecordCreated(ctx context.Context, tx *gorm.DB, booking *entity.Booking) (*entity.BookingEvent, error) {
	payload := entity.CreatedPayload{
		BookingData: entity.BookingSnapshot{
			CustomerID:    booking.CustomerID,
			CustomerName:  booking.CustomerName,
			ServiceType:   booking.ServiceType,
			Description:   booking.Description,
			Address:       booking.Address,
			ScheduledTime: booking.ScheduledTime,
		},
	}
	return s.record(ctx, tx, booking.ID, payload, booking.CustomerID, entity.ActorTypeCustomer, booking.CreatedAt)
}

// RecordStatusChanged logs a status_updated event with from/to values
func (s *eventRecorder) RecordStatusChanged(ctx context.Context, tx *gorm.DB, bookingID string, payload entity.StatusChangedPayload, actorID string, actorType entity.ActorType, at time.Time) (*entity.BookingEvent, error) {
	return s.record(ctx, tx, bookingID, payload, actorID, actorType, at)
}

// RecordProviderAssigned logs a provider_assigned event.
// Assignments made by anyone but the system are attributed to an admin.
func (s *eventRecorder) RecordProviderAssigned(ctx context.Context, tx *gorm.DB, bookingID, providerID, assignedBy string, at time.Time) (*entity.BookingEvent, error) {
	actorType := entity.ActorTypeAdmin
	if assignedBy == entity.SystemActor {
		actorType = entity.ActorTypeSystem
	}
	payload := entity.ProviderAssignedPayload{ProviderID: providerID}
	return s.record(ctx, tx, bookingID, payload, assignedBy, actorType, at)
}

func (s *eventRecorder) record(ctx context.Context, tx *gorm.DB, bookingID string, payload entity.EventPayload, actorID string, actorType entity.ActorType, at time.Time) (*entity.BookingEvent, error) {
	event, err := entity.NewBookingEvent(bookingID, payload, actorID, actorType, at)
	if err != nil {
		s.log.Warnf("Failed to build booking event: %+v", err)
		return nil, err
	}

	if err := s.eventRepo.Create(tx.WithContext(ctx), event); err != nil {
		s.log.Warnf("Failed to append booking event: %+v", err)
		return nil, err
	}

	return event, nil
}
