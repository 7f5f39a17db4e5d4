package repository

import (
	"home-service-booking/internal/domain/entity"

	"gorm.io/gorm"
)

// ProviderRepository is the Provider Directory contract.
// FindAll ordering is the directory order used as the assignment tie-break.
type ProviderRepository interface {
	Create(db *gorm.DB, provider *entity.Provider) error
	FindByID(db *gorm.DB, id string) (*entity.Provider, error)
	FindAll(db *gorm.DB, filter *entity.ProviderFilter) ([]entity.Provider, error)
	UpdateAvailability(db *gorm.DB, id string, isAvailable bool) (int64, error)
	Count(db *gorm.DB) (int64, error)
}
