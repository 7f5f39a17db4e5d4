package repository

import (
	"home-service-booking/internal/domain/entity"

	"gorm.io/gorm"
)

type BookingEventRepository interface {
	Create(db *gorm.DB, event *entity.BookingEvent) error
	FindByBookingID(db *gorm.DB, bookingID string) ([]entity.BookingEvent, error)
	FindHistory(db *gorm.DB, filter *entity.EventFilter, limit int) ([]entity.EventHistoryEntry, error)
}
