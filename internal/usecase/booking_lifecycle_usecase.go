package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"home-service-booking/internal/domain/entity"
	"home-service-booking/internal/domain/repository"
	"home-service-booking/internal/infrastructure/metrics"
	"home-service-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HistoryLimit caps the event history view
const HistoryLimit = 100

// CreateBookingInput carries the caller supplied booking fields
type CreateBookingInput struct {
	CustomerID    string
	CustomerName  string
	ServiceType   string
	Description   string
	Address       string
	ScheduledTime *time.Time
}

// BookingLifecycleUsecase owns every write to a booking's status, provider and
// cancellation fields. Each successful mutation appends exactly one event.
type BookingLifecycleUsecase interface {
	Create(ctx context.Context, in CreateBookingInput) (*entity.Booking, error)
	TransitionStatus(ctx context.Context, bookingID string, newStatus entity.BookingStatus, actorID string, actorType entity.ActorType, reason *string) (*entity.Booking, error)
	AssignProvider(ctx context.Context, bookingID, providerID, assignedBy string) (*entity.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*entity.Booking, error)
	ListBookings(ctx context.Context, filter *entity.BookingFilter) ([]entity.Booking, error)
	GetEvents(ctx context.Context, bookingID string) ([]entity.BookingEvent, error)
	GetHistory(ctx context.Context, filter *entity.EventFilter) ([]entity.EventHistoryEntry, error)
}

type bookingLifecycleUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	bookingRepo repository.BookingRepository
	eventRepo   repository.BookingEventRepository
	recorder    service.EventRecorder
	notifier    service.EventNotifier
	metrics     *metrics.Metrics
	now         func() time.Time
	newID       func() string
}

func NewBookingLifecycleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	eventRepo repository.BookingEventRepository,
	recorder service.EventRecorder,
	notifier service.EventNotifier,
	m *metrics.Metrics,
) BookingLifecycleUsecase {
	return &bookingLifecycleUsecase{
		db:          db,
		log:         log,
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		recorder:    recorder,
		notifier:    notifier,
		metrics:     m,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// Create persists a pending booking and its created event
func (u *bookingLifecycleUsecase) Create(ctx context.Context, in CreateBookingInput) (*entity.Booking, error) {
	if missing := missingBookingFields(in); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(missing, ", "))
	}

	now := u.now()
	booking := &entity.Booking{
		ID:            u.newID(),
		CustomerID:    in.CustomerID,
		CustomerName:  in.CustomerName,
		ServiceType:   in.ServiceType,
		Description:   in.Description,
		Address:       in.Address,
		ScheduledTime: in.ScheduledTime,
		Status:        entity.BookingStatusPending,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeError("begin transaction", tx.Error)
	}
	defer tx.Rollback()

	if err := u.bookingRepo.Create(tx, booking); err != nil {
		u.log.Warnf("Failed to insert booking: %+v", err)
		return nil, storeError("insert booking", err)
	}

	event, err := u.recorder.RecordCreated(ctx, tx, booking)
	if err != nil {
		return nil, storeError("append created event", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError("commit booking", err)
	}

	u.publish(ctx, event)
	u.metrics.BookingsCreated.Inc()
	u.log.Infof("Booking created: id=%s, customer=%s, service=%s", booking.ID, booking.CustomerID, booking.ServiceType)

	return u.reload(ctx, booking), nil
}

// TransitionStatus moves a booking to newStatus. Admin actors skip the transition
// table but must still name a known status.
func (u *bookingLifecycleUsecase) TransitionStatus(ctx context.Context, bookingID string, newStatus entity.BookingStatus, actorID string, actorType entity.ActorType, reason *string) (*entity.Booking, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}
	if !actorType.IsValid() {
		return nil, fmt.Errorf("%w: unknown actor type %q", ErrValidation, actorType)
	}
	if strings.TrimSpace(actorID) == "" {
		return nil, fmt.Errorf("%w: actor is required", ErrValidation)
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeError("begin transaction", tx.Error)
	}
	defer tx.Rollback()

	booking, err := u.bookingRepo.FindByID(tx, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, storeError("find booking", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	from := booking.Status
	if actorType != entity.ActorTypeAdmin && !entity.CanTransition(from, newStatus) {
		return nil, fmt.Errorf("%w from %s to %s", ErrInvalidTransition, from, newStatus)
	}

	now := u.now()
	fields := map[string]interface{}{
		"status":              newStatus,
		"updated_at":          now,
		"cancelled_by":        nil,
		"cancellation_reason": nil,
	}
	if newStatus == entity.BookingStatusCancelled {
		fields["cancelled_by"] = actorID
		fields["cancellation_reason"] = cancellationReason(reason)
	}

	if err := u.update(tx, booking, fields); err != nil {
		return nil, err
	}

	payload := entity.StatusChangedPayload{
		From:               from,
		To:                 newStatus,
		UpdatedBy:          actorID,
		CancellationReason: reason,
	}
	event, err := u.recorder.RecordStatusChanged(ctx, tx, bookingID, payload, actorID, actorType, now)
	if err != nil {
		return nil, storeError("append status event", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError("commit status change", err)
	}

	u.publish(ctx, event)
	u.metrics.StatusTransitions.WithLabelValues(string(from), string(newStatus), string(actorType)).Inc()
	u.log.Infof("Booking status updated: id=%s, %s -> %s, by=%s (%s)", bookingID, from, newStatus, actorID, actorType)

	return u.reload(ctx, booking), nil
}

// AssignProvider binds a provider to a pending or rejected booking.
// It has its own guard instead of consulting the transition table.
func (u *bookingLifecycleUsecase) AssignProvider(ctx context.Context, bookingID, providerID, assignedBy string) (*entity.Booking, error) {
	if strings.TrimSpace(providerID) == "" {
		return nil, fmt.Errorf("%w: provider id is required", ErrValidation)
	}
	if assignedBy == "" {
		assignedBy = entity.SystemActor
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, storeError("begin transaction", tx.Error)
	}
	defer tx.Rollback()

	booking, err := u.bookingRepo.FindByID(tx, bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, storeError("find booking", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if !booking.IsAssignable() {
		return nil, fmt.Errorf("%w: cannot assign provider to booking with status %s", ErrInvalidState, booking.Status)
	}

	now := u.now()
	fields := map[string]interface{}{
		"provider_id": providerID,
		"status":      entity.BookingStatusAssigned,
		"updated_at":  now,
	}
	if err := u.update(tx, booking, fields); err != nil {
		return nil, err
	}

	event, err := u.recorder.RecordProviderAssigned(ctx, tx, bookingID, providerID, assignedBy, now)
	if err != nil {
		return nil, storeError("append assignment event", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, storeError("commit assignment", err)
	}

	u.publish(ctx, event)
	u.metrics.ProviderAssignments.WithLabelValues(string(event.PerformedByType)).Inc()
	u.log.Infof("Provider assigned: booking=%s, provider=%s, by=%s", bookingID, providerID, assignedBy)

	return u.reload(ctx, booking), nil
}

func (u *bookingLifecycleUsecase) GetBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", bookingID, err)
		return nil, storeError("find booking", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (u *bookingLifecycleUsecase) ListBookings(ctx context.Context, filter *entity.BookingFilter) ([]entity.Booking, error) {
	bookings, err := u.bookingRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list bookings: %+v", err)
		return nil, storeError("list bookings", err)
	}
	return bookings, nil
}

// GetEvents returns the events of one booking, newest first
func (u *bookingLifecycleUsecase) GetEvents(ctx context.Context, bookingID string) ([]entity.BookingEvent, error) {
	events, err := u.eventRepo.FindByBookingID(u.db.WithContext(ctx), bookingID)
	if err != nil {
		u.log.Warnf("Failed to find events for booking %s: %+v", bookingID, err)
		return nil, storeError("find booking events", err)
	}
	return events, nil
}

// GetHistory returns at most HistoryLimit events joined with their booking summary
func (u *bookingLifecycleUsecase) GetHistory(ctx context.Context, filter *entity.EventFilter) ([]entity.EventHistoryEntry, error) {
	entries, err := u.eventRepo.FindHistory(u.db.WithContext(ctx), filter, HistoryLimit)
	if err != nil {
		u.log.Warnf("Failed to find event history: %+v", err)
		return nil, storeError("find event history", err)
	}
	return entries, nil
}

// update applies fields conditionally on the version read in this transaction
func (u *bookingLifecycleUsecase) update(tx *gorm.DB, booking *entity.Booking, fields map[string]interface{}) error {
	affected, err := u.bookingRepo.UpdateFields(tx, booking.ID, booking.Version, fields)
	if err != nil {
		u.log.Warnf("Failed to update booking %s: %+v", booking.ID, err)
		return storeError("update booking", err)
	}
	if affected == 0 {
		u.metrics.Conflicts.Inc()
		u.log.Warnf("Booking %s changed since version %d was read", booking.ID, booking.Version)
		return fmt.Errorf("%w: booking %s at version %d", ErrConflict, booking.ID, booking.Version)
	}
	return nil
}

// reload re-reads a committed booking, falling back to the given copy
func (u *bookingLifecycleUsecase) reload(ctx context.Context, booking *entity.Booking) *entity.Booking {
	fresh, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), booking.ID)
	if err != nil || fresh == nil {
		u.log.Warnf("Failed to reload booking %s: %+v", booking.ID, err)
		return booking
	}
	return fresh
}

func (u *bookingLifecycleUsecase) publish(ctx context.Context, event *entity.BookingEvent) {
	if err := u.notifier.Notify(ctx, event); err != nil {
		u.log.Warnf("Failed to publish %s event for booking %s (non-fatal): %+v", event.EventType, event.BookingID, err)
	}
}

func missingBookingFields(in CreateBookingInput) []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"customerId", in.CustomerID},
		{"customerName", in.CustomerName},
		{"serviceType", in.ServiceType},
		{"address", in.Address},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func cancellationReason(reason *string) string {
	if reason == nil || strings.TrimSpace(*reason) == "" {
		return entity.DefaultCancellationReason
	}
	return *reason
}
