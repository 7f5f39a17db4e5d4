package repository

import (
	"errors"
	"strings"

	"home-service-booking/internal/domain/entity"
	domainRepo "home-service-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type providerRepository struct{}

func NewProviderRepository() domainRepo.ProviderRepository {
	return &providerRepository{}
}

func (r *providerRepository) Create(db *gorm.DB, provider *entity.Provider) error {
	return db.Create(provider).Error
}

func (r *providerRepository) FindByID(db *gorm.DB, id string) (*entity.Provider, error) {
	var provider entity.Provider
	err := db.Where("id = ?", id).First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

// FindAll returns providers in directory order (oldest first, then by id).
// Service type matching is exact tag membership on the comma separated list.
func (r *providerRepository) FindAll(db *gorm.DB, filter *entity.ProviderFilter) ([]entity.Provider, error) {
	var providers []entity.Provider
	query := db.Model(&entity.Provider{})

	if filter != nil {
		if filter.IsAvailable != nil {
			query = query.Where("is_available = ?", *filter.IsAvailable)
		}
		if filter.ServiceType != "" {
			query = query.Where(`(',' || service_types || ',') LIKE ? ESCAPE '\'`, "%,"+escapeLike(filter.ServiceType)+",%")
		}
		if len(filter.ExcludeIDs) > 0 {
			query = query.Where("id NOT IN ?", filter.ExcludeIDs)
		}
	}

	err := query.Order("created_at ASC").Order("id ASC").Find(&providers).Error
	if err != nil {
		return nil, err
	}

	// LIKE is case-insensitive on SQLite; keep only exact tag members
	if filter != nil && filter.ServiceType != "" {
		matched := providers[:0]
		for _, p := range providers {
			if p.Offers(filter.ServiceType) {
				matched = append(matched, p)
			}
		}
		providers = matched
	}
	return providers, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *providerRepository) UpdateAvailability(db *gorm.DB, id string, isAvailable bool) (int64, error) {
	result := db.Model(&entity.Provider{}).
		Where("id = ?", id).
		Update("is_available", isAvailable)
	return result.RowsAffected, result.Error
}

func (r *providerRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Provider{}).Count(&count).Error
	return count, err
}
