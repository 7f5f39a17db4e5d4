package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"home-service-booking/internal/converter"
	"home-service-booking/internal/delivery/dto"
	"home-service-booking/internal/domain/entity"
	"home-service-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProviderUsecase interface {
	RegisterProvider(ctx context.Context, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error)
	GetProvider(ctx context.Context, providerID string) (*dto.ProviderResponse, error)
	ListProviders(ctx context.Context, filter *entity.ProviderFilter) (*dto.ProviderListResponse, error)
	GetProviderBookings(ctx context.Context, providerID string) (*dto.BookingListResponse, error)
	UpdateAvailability(ctx context.Context, providerID string, req *dto.UpdateAvailabilityRequest) (*dto.ProviderResponse, error)
}

type providerUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	providerRepo repository.ProviderRepository
	bookingRepo  repository.BookingRepository
	now          func() time.Time
}

func NewProviderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	providerRepo repository.ProviderRepository,
	bookingRepo repository.BookingRepository,
) ProviderUsecase {
	return &providerUsecase{
		db:           db,
		log:          log,
		providerRepo: providerRepo,
		bookingRepo:  bookingRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// RegisterProvider adds a provider to the directory. New providers sort last
// in directory order and are available unless stated otherwise.
func (u *providerUsecase) RegisterProvider(ctx context.Context, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	serviceTypes, err := normalizeServiceTypes(req.ServiceTypes)
	if err != nil {
		return nil, err
	}

	provider := &entity.Provider{
		ID:           strings.TrimSpace(req.ID),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		ServiceTypes: serviceTypes,
		IsAvailable:  req.IsAvailable == nil || *req.IsAvailable,
		CreatedAt:    u.now(),
	}
	if provider.ID == "" {
		provider.ID = uuid.NewString()
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeError("begin transaction", tx.Error)
	}
	defer tx.Rollback()

	existing, err := u.providerRepo.FindByID(tx, provider.ID)
	if err != nil {
		u.log.Warnf("Failed to find provider %s: %+v", provider.ID, err)
		return nil, storeError("find provider", err)
	}
	if existing != nil {
		return nil, ErrProviderExists
	}

	if err := u.providerRepo.Create(tx, provider); err != nil {
		if isDuplicateKeyError(err, "providers_pkey") {
			return nil, ErrProviderExists
		}
		u.log.Warnf("Failed to create provider: %+v", err)
		return nil, storeError("create provider", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError("commit provider", err)
	}

	u.log.Infof("Provider registered: id=%s, services=%s", provider.ID, strings.Join(provider.ServiceTypes, ","))
	return converter.ProviderToResponse(provider), nil
}

func (u *providerUsecase) GetProvider(ctx context.Context, providerID string) (*dto.ProviderResponse, error) {
	provider, err := u.providerRepo.FindByID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to find provider %s: %+v", providerID, err)
		return nil, storeError("find provider", err)
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	return converter.ProviderToResponse(provider), nil
}

func (u *providerUsecase) ListProviders(ctx context.Context, filter *entity.ProviderFilter) (*dto.ProviderListResponse, error) {
	providers, err := u.providerRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list providers: %+v", err)
		return nil, storeError("list providers", err)
	}

	return &dto.ProviderListResponse{
		Providers: converter.ProvidersToResponses(providers),
		Total:     len(providers),
	}, nil
}

// GetProviderBookings returns every booking the provider is or was last assigned to
func (u *providerUsecase) GetProviderBookings(ctx context.Context, providerID string) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindAll(u.db.WithContext(ctx), &entity.BookingFilter{ProviderID: providerID})
	if err != nil {
		u.log.Warnf("Failed to find bookings for provider %s: %+v", providerID, err)
		return nil, storeError("find provider bookings", err)
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// UpdateAvailability toggles whether the provider is eligible for automatic assignment
func (u *providerUsecase) UpdateAvailability(ctx context.Context, providerID string, req *dto.UpdateAvailabilityRequest) (*dto.ProviderResponse, error) {
	if req.IsAvailable == nil {
		return nil, ErrValidation
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeError("begin transaction", tx.Error)
	}
	defer tx.Rollback()

	provider, err := u.providerRepo.FindByID(tx, providerID)
	if err != nil {
		u.log.Warnf("Failed to find provider %s: %+v", providerID, err)
		return nil, storeError("find provider", err)
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	if _, err := u.providerRepo.UpdateAvailability(tx, providerID, *req.IsAvailable); err != nil {
		u.log.Warnf("Failed to update availability of provider %s: %+v", providerID, err)
		return nil, storeError("update provider availability", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError("commit provider availability", err)
	}

	provider.IsAvailable = *req.IsAvailable
	u.log.Infof("Provider %s availability set to %t", providerID, provider.IsAvailable)

	return converter.ProviderToResponse(provider), nil
}

// normalizeServiceTypes trims and de-duplicates skill tags. Commas are rejected
// because the directory stores tags as a comma separated list.
func normalizeServiceTypes(raw []string) (entity.ServiceTypes, error) {
	seen := make(map[string]bool, len(raw))
	var out entity.ServiceTypes
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" || strings.Contains(tag, ",") {
			return nil, fmt.Errorf("%w: invalid service type %q", ErrValidation, tag)
		}
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: at least one service type is required", ErrValidation)
	}
	return out, nil
}
