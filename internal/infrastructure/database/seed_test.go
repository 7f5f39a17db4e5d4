package database

import (
	"fmt"
	"testing"

	"home-service-booking/internal/domain/entity"
	"home-service-booking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:seed_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestSeedProviders_EmptyDirectory(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProviderRepository()

	inserted, err := SeedProviders(db, repo)
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	providers, err := repo.FindAll(db, &entity.ProviderFilter{ServiceType: "plumbing"})
	require.NoError(t, err)
	require.Len(t, providers, 2)
	assert.Equal(t, "provider-1", providers[0].ID)
	assert.Equal(t, "provider-2", providers[1].ID)
}

func TestSeedProviders_SkipsWhenPopulated(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProviderRepository()

	_, err := SeedProviders(db, repo)
	require.NoError(t, err)

	inserted, err := SeedProviders(db, repo)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	count, err := repo.Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
