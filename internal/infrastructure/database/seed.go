package database

import (
	"fmt"
	"time"

	"home-service-booking/internal/domain/entity"
	"home-service-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultProviders is the directory loaded into an empty providers table
func DefaultProviders(now time.Time) []entity.Provider {
	return []entity.Provider{
		{
			ID:           "provider-1",
			Name:         "Rajesh Kumar",
			Email:        "rajesh.kumar@example.com",
			Phone:        "+91-98765-43210",
			ServiceTypes: entity.ServiceTypes{"plumbing", "electrical"},
			IsAvailable:  true,
			CreatedAt:    now,
		},
		{
			ID:           "provider-2",
			Name:         "Priya Sharma",
			Email:        "priya.sharma@example.com",
			Phone:        "+91-98765-43211",
			ServiceTypes: entity.ServiceTypes{"cleaning", "plumbing"},
			IsAvailable:  true,
			CreatedAt:    now.Add(time.Millisecond),
		},
		{
			ID:           "provider-3",
			Name:         "Amit Patel",
			Email:        "amit.patel@example.com",
			Phone:        "+91-98765-43212",
			ServiceTypes: entity.ServiceTypes{"electrical", "handyman"},
			IsAvailable:  true,
			CreatedAt:    now.Add(2 * time.Millisecond),
		},
	}
}

// SeedProviders inserts the default providers when the directory is empty.
// It returns the number of providers inserted.
func SeedProviders(db *gorm.DB, providerRepo repository.ProviderRepository) (int, error) {
	count, err := providerRepo.Count(db)
	if err != nil {
		return 0, fmt.Errorf("failed to count providers: %w", err)
	}
	if count > 0 {
		logrus.Debugf("Provider directory already has %d entries, skipping seed", count)
		return 0, nil
	}

	providers := DefaultProviders(time.Now().UTC())
	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range providers {
			if err := providerRepo.Create(tx, &providers[i]); err != nil {
				return fmt.Errorf("failed to seed provider %s: %w", providers[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logrus.Infof("Seeded %d providers", len(providers))
	return len(providers), nil
}
