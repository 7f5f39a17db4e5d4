package repository

import (
	"home-service-booking/internal/domain/entity"

	"gorm.io/gorm"
)

// BookingRepository is the Booking Store contract.
// The db handle is passed per call so callers control the transaction.
type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id string) (*entity.Booking, error)
	FindAll(db *gorm.DB, filter *entity.BookingFilter) ([]entity.Booking, error)
	// UpdateFields applies fields only if the stored version still equals expectedVersion,
	// and bumps the version. It returns the number of affected rows.
	UpdateFields(db *gorm.DB, id string, expectedVersion int64, fields map[string]interface{}) (int64, error)
}
