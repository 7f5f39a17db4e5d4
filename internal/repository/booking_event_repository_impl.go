package repository

import (
	"home-service-booking/internal/domain/entity"
	domainRepo "home-service-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type bookingEventRepository struct{}

func NewBookingEventRepository() domainRepo.BookingEventRepository {
	return &bookingEventRepository{}
}

func (r *bookingEventRepository) Create(db *gorm.DB, event *entity.BookingEvent) error {
	return db.Create(event).Error
}

// FindByBookingID returns the events of one booking, newest first.
// The auto-increment id breaks ties between events recorded in the same instant.
func (r *bookingEventRepository) FindByBookingID(db *gorm.DB, bookingID string) ([]entity.BookingEvent, error) {
	var events []entity.BookingEvent
	err := db.Where("booking_id = ?", bookingID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *bookingEventRepository) FindHistory(db *gorm.DB, filter *entity.EventFilter, limit int) ([]entity.EventHistoryEntry, error) {
	var entries []entity.EventHistoryEntry
	query := db.Table("booking_events").
		Select(`
			booking_events.id,
			booking_events.booking_id,
			booking_events.event_type,
			booking_events.event_data,
			booking_events.performed_by,
			booking_events.performed_by_type,
			booking_events.created_at,
			bookings.customer_name,
			bookings.service_type
		`).
		Joins("JOIN bookings ON bookings.id = booking_events.booking_id")

	if filter != nil {
		if filter.BookingID != "" {
			query = query.Where("booking_events.booking_id = ?", filter.BookingID)
		}
		if filter.EventType != "" {
			query = query.Where("booking_events.event_type = ?", filter.EventType)
		}
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.
		Order("booking_events.created_at DESC").
		Order("booking_events.id DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
