package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"home-service-booking/config"
	"home-service-booking/internal/domain/entity"
	"home-service-booking/internal/domain/repository"
	"home-service-booking/internal/infrastructure/metrics"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Sleeper blocks for the given delay between assignment attempts
type Sleeper func(time.Duration)

// AssignmentUsecase picks available providers for bookings and recovers from provider rejections
type AssignmentUsecase interface {
	AssignProviderToBooking(ctx context.Context, bookingID, serviceType string) (*entity.Provider, error)
	HandleProviderRejection(ctx context.Context, bookingID, providerID string) error
}

type assignmentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	providerRepo repository.ProviderRepository
	lifecycle    BookingLifecycleUsecase
	metrics      *metrics.Metrics
	cfg          config.AssignmentConfig
	sleep        Sleeper
}

// NewAssignmentUsecase builds the engine; a nil sleep falls back to time.Sleep
func NewAssignmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	providerRepo repository.ProviderRepository,
	lifecycle BookingLifecycleUsecase,
	m *metrics.Metrics,
	cfg config.AssignmentConfig,
	sleep Sleeper,
) AssignmentUsecase {
	if sleep == nil {
		sleep = time.Sleep
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &assignmentUsecase{
		db:           db,
		log:          log,
		providerRepo: providerRepo,
		lifecycle:    lifecycle,
		metrics:      m,
		cfg:          cfg,
		sleep:        sleep,
	}
}

// AssignProviderToBooking assigns the first available provider offering serviceType.
// Retryable failures are retried up to MaxRetries times, waiting BaseDelay*n before retry n.
func (u *assignmentUsecase) AssignProviderToBooking(ctx context.Context, bookingID, serviceType string) (*entity.Provider, error) {
	return u.assignWithRetry(ctx, bookingID, serviceType, nil)
}

// HandleProviderRejection marks the booking rejected on behalf of its assigned provider and
// tries to hand it to somebody else. A failed reassignment leaves the booking rejected
// and is not reported to the caller.
func (u *assignmentUsecase) HandleProviderRejection(ctx context.Context, bookingID, providerID string) error {
	booking, err := u.lifecycle.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return ErrProviderMismatch
		}
		return err
	}
	if !booking.IsAssignedTo(providerID) {
		return ErrProviderMismatch
	}

	if _, err := u.lifecycle.TransitionStatus(ctx, bookingID, entity.BookingStatusRejected, providerID, entity.ActorTypeProvider, nil); err != nil {
		return err
	}
	u.metrics.ProviderRejections.Inc()
	u.log.Infof("Provider %s rejected booking %s, reassigning", providerID, bookingID)

	provider, err := u.assignWithRetry(ctx, bookingID, booking.ServiceType, []string{providerID})
	if err != nil {
		u.metrics.ReassignmentFailures.Inc()
		u.log.Errorf("Failed to reassign booking %s after rejection by %s: %+v", bookingID, providerID, err)
		return nil
	}

	u.log.Infof("Booking %s reassigned to provider %s", bookingID, provider.ID)
	return nil
}

func (u *assignmentUsecase) assignWithRetry(ctx context.Context, bookingID, serviceType string, excludeIDs []string) (*entity.Provider, error) {
	var lastErr error

	for attempt := 0; attempt <= u.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := u.cfg.BaseDelay * time.Duration(attempt)
			u.log.Infof("Assignment for booking %s failed, retrying in %s (%d/%d)", bookingID, delay, attempt, u.cfg.MaxRetries)
			u.metrics.AssignmentRetries.Inc()
			u.metrics.AssignmentBackoff.Observe(delay.Seconds())
			u.sleep(delay)
		}

		provider, err := u.tryAssign(ctx, bookingID, serviceType, excludeIDs)
		if err == nil {
			u.metrics.AssignmentAttempts.WithLabelValues("success").Inc()
			return provider, nil
		}

		lastErr = err
		if !IsRetryable(err) {
			u.metrics.AssignmentAttempts.WithLabelValues("failed").Inc()
			u.log.Warnf("Failed to assign provider to booking %s: %+v", bookingID, err)
			return nil, err
		}
		u.metrics.AssignmentAttempts.WithLabelValues("retryable_failure").Inc()
	}

	u.log.Warnf("Failed to assign provider to booking %s after %d attempts: %+v", bookingID, u.cfg.MaxRetries+1, lastErr)
	return nil, lastErr
}

// tryAssign is a single attempt: pick the first eligible provider in directory order and assign it
func (u *assignmentUsecase) tryAssign(ctx context.Context, bookingID, serviceType string, excludeIDs []string) (*entity.Provider, error) {
	if strings.TrimSpace(serviceType) == "" {
		return nil, fmt.Errorf("%w: service type is required", ErrValidation)
	}

	available := true
	providers, err := u.providerRepo.FindAll(u.db.WithContext(ctx), &entity.ProviderFilter{
		IsAvailable: &available,
		ServiceType: serviceType,
		ExcludeIDs:  excludeIDs,
	})
	if err != nil {
		u.log.Warnf("Failed to query provider directory: %+v", err)
		return nil, storeError("find available providers", err)
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoProviderAvailable, serviceType)
	}

	selected := providers[0]
	if _, err := u.lifecycle.AssignProvider(ctx, bookingID, selected.ID, entity.SystemActor); err != nil {
		return nil, err
	}

	return &selected, nil
}
