package usecase

import (
	"context"
	"testing"

	"home-service-booking/internal/delivery/dto"
	"home-service-booking/internal/domain/entity"
	domainRepo "home-service-booking/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestListProviders_Filters(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.addProvider(t, "provider-1", "plumbing", "electrical")
	env.addProvider(t, "provider-2", "cleaning", "plumbing")
	env.addProvider(t, "provider-3", "electrical", "handyman")
	_, err := env.providerRepo.UpdateAvailability(env.db, "provider-2", false)
	require.NoError(t, err)

	all, err := env.providers.ListProviders(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 3, all.Total)
	assert.Equal(t, "provider-1", all.Providers[0].ID)

	plumbers, err := env.providers.ListProviders(ctx, &entity.ProviderFilter{ServiceType: "plumbing"})
	require.NoError(t, err)
	assert.Equal(t, 2, plumbers.Total)

	available, err := env.providers.ListProviders(ctx, &entity.ProviderFilter{IsAvailable: boolPtr(true), ServiceType: "plumbing"})
	require.NoError(t, err)
	require.Equal(t, 1, available.Total)
	assert.Equal(t, "provider-1", available.Providers[0].ID)

	unavailable, err := env.providers.ListProviders(ctx, &entity.ProviderFilter{IsAvailable: boolPtr(false)})
	require.NoError(t, err)
	require.Equal(t, 1, unavailable.Total)
	assert.Equal(t, "provider-2", unavailable.Providers[0].ID)
}

func TestUpdateAvailability(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.addProvider(t, "provider-1", "plumbing")

	_, err := env.providers.UpdateAvailability(ctx, "provider-9", &dto.UpdateAvailabilityRequest{IsAvailable: boolPtr(false)})
	assert.ErrorIs(t, err, ErrProviderNotFound)

	resp, err := env.providers.UpdateAvailability(ctx, "provider-1", &dto.UpdateAvailabilityRequest{IsAvailable: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, resp.IsAvailable)

	booking := env.createBooking(t, "plumbing")
	_, err = env.assignment.AssignProviderToBooking(ctx, booking.ID, "plumbing")
	assert.ErrorIs(t, err, ErrNoProviderAvailable)

	_, err = env.providers.UpdateAvailability(ctx, "provider-1", &dto.UpdateAvailabilityRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetProviderBookings(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.addProvider(t, "provider-1", "plumbing")
	env.addProvider(t, "provider-2", "cleaning")

	_, err := env.bookings.CreateBooking(ctx, newCreateRequest("plumbing"))
	require.NoError(t, err)
	_, err = env.bookings.CreateBooking(ctx, newCreateRequest("plumbing"))
	require.NoError(t, err)
	_, err = env.bookings.CreateBooking(ctx, newCreateRequest("cleaning"))
	require.NoError(t, err)

	resp, err := env.providers.GetProviderBookings(ctx, "provider-1")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	for _, b := range resp.Bookings {
		assert.Equal(t, "provider-1", *b.ProviderID)
	}

	none, err := env.providers.GetProviderBookings(ctx, "provider-3")
	require.NoError(t, err)
	assert.Zero(t, none.Total)
}

func TestRegisterProvider(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.addProvider(t, "provider-1", "plumbing")

	resp, err := env.providers.RegisterProvider(ctx, &dto.CreateProviderRequest{
		ID:           "provider-4",
		Name:         "Meera Iyer",
		Email:        "meera.iyer@example.com",
		ServiceTypes: []string{" painting ", "plumbing", "painting"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"painting", "plumbing"}, resp.ServiceTypes)
	assert.True(t, resp.IsAvailable)

	fetched, err := env.providers.GetProvider(ctx, "provider-4")
	require.NoError(t, err)
	assert.Equal(t, "Meera Iyer", fetched.Name)

	_, err = env.providers.RegisterProvider(ctx, &dto.CreateProviderRequest{
		ID: "provider-4", Name: "Duplicate", Email: "dup@example.com", ServiceTypes: []string{"cleaning"},
	})
	assert.ErrorIs(t, err, ErrProviderExists)

	_, err = env.providers.RegisterProvider(ctx, &dto.CreateProviderRequest{
		Name: "Comma Person", Email: "comma@example.com", ServiceTypes: []string{"a,b"},
	})
	assert.ErrorIs(t, err, ErrValidation)

	generated, err := env.providers.RegisterProvider(ctx, &dto.CreateProviderRequest{
		Name: "Ravi Menon", Email: "ravi@example.com", ServiceTypes: []string{"painting"}, IsAvailable: boolPtr(false),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, generated.ID)
	assert.False(t, generated.IsAvailable)

	painters, err := env.providers.ListProviders(ctx, &entity.ProviderFilter{ServiceType: "painting"})
	require.NoError(t, err)
	require.Equal(t, 2, painters.Total)
	assert.Equal(t, "provider-4", painters.Providers[0].ID)

	_, err = env.providers.GetProvider(ctx, "provider-9")
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

// blindProviderRepository misses every lookup, as if a concurrent insert landed
// between the existence check and the insert
type blindProviderRepository struct {
	domainRepo.ProviderRepository
}

func (blindProviderRepository) FindByID(*gorm.DB, string) (*entity.Provider, error) {
	return nil, nil
}

func TestRegisterProvider_DuplicateInsertIsReportedAsExists(t *testing.T) {
	env := setupTestEnv(t)
	env.addProvider(t, "provider-1", "plumbing")
	providers := env.providers.(*providerUsecase)
	providers.providerRepo = blindProviderRepository{env.providerRepo}

	_, err := providers.RegisterProvider(context.Background(), &dto.CreateProviderRequest{
		ID: "provider-1", Name: "Late Duplicate", Email: "late@example.com", ServiceTypes: []string{"cleaning"},
	})
	assert.ErrorIs(t, err, ErrProviderExists)
	assert.NotErrorIs(t, err, ErrStore)

	count, err := env.providerRepo.Count(env.db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
