package usecase

import (
	"context"
	"fmt"

	"home-service-booking/internal/converter"
	"home-service-booking/internal/delivery/dto"
	"home-service-booking/internal/domain/entity"
	"home-service-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetBooking(ctx context.Context, bookingID string) (*dto.BookingResponse, error)
	ListBookings(ctx context.Context, filter *entity.BookingFilter) (*dto.BookingListResponse, error)
	TransitionStatus(ctx context.Context, bookingID string, req *dto.UpdateStatusRequest) (*dto.BookingResponse, error)
	AcceptBooking(ctx context.Context, bookingID, providerID string) (*dto.BookingResponse, error)
	RejectAssignment(ctx context.Context, bookingID, providerID string) (*dto.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error)
	GetBookingEvents(ctx context.Context, bookingID string) (*dto.BookingEventListResponse, error)

	// Admin operations
	AssignProvider(ctx context.Context, bookingID string, req *dto.AssignProviderRequest) (*dto.BookingResponse, error)
	OverrideStatus(ctx context.Context, bookingID string, req *dto.OverrideStatusRequest) (*dto.BookingResponse, error)
	GetEventHistory(ctx context.Context, filter *entity.EventFilter) (*dto.EventHistoryListResponse, error)
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	lifecycle    BookingLifecycleUsecase
	assignment   AssignmentUsecase
	providerRepo repository.ProviderRepository
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	lifecycle BookingLifecycleUsecase,
	assignment AssignmentUsecase,
	providerRepo repository.ProviderRepository,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		lifecycle:    lifecycle,
		assignment:   assignment,
		providerRepo: providerRepo,
	}
}

// CreateBooking creates a pending booking and immediately tries to assign a provider.
// An assignment failure is logged and the unassigned booking is returned.
func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	booking, err := u.lifecycle.Create(ctx, CreateBookingInput{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		ServiceType:   req.ServiceType,
		Description:   req.Description,
		Address:       req.Address,
		ScheduledTime: req.ScheduledTime,
	})
	if err != nil {
		return nil, err
	}

	provider, err := u.assignment.AssignProviderToBooking(ctx, booking.ID, booking.ServiceType)
	if err != nil {
		u.log.Warnf("Failed to auto-assign booking %s: %+v", booking.ID, err)
		return converter.BookingToResponse(booking), nil
	}

	assigned, err := u.lifecycle.GetBooking(ctx, booking.ID)
	if err != nil {
		return converter.BookingToResponse(booking), nil
	}

	return converter.BookingWithProviderToResponse(assigned, provider), nil
}

func (u *bookingUsecase) GetBooking(ctx context.Context, bookingID string) (*dto.BookingResponse, error) {
	booking, err := u.lifecycle.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return converter.BookingWithProviderToResponse(booking, u.findProvider(ctx, booking.AssignedProvider())), nil
}

func (u *bookingUsecase) ListBookings(ctx context.Context, filter *entity.BookingFilter) (*dto.BookingListResponse, error) {
	if filter != nil && filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, filter.Status)
	}

	bookings, err := u.lifecycle.ListBookings(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// TransitionStatus applies a caller requested status change, attributed to the system unless stated
func (u *bookingUsecase) TransitionStatus(ctx context.Context, bookingID string, req *dto.UpdateStatusRequest) (*dto.BookingResponse, error) {
	actorID := defaultString(req.UpdatedBy, entity.SystemActor)
	actorType := entity.ActorType(defaultString(req.UpdatedByType, string(entity.ActorTypeSystem)))

	booking, err := u.lifecycle.TransitionStatus(ctx, bookingID, entity.BookingStatus(req.Status), actorID, actorType, req.CancellationReason)
	if err != nil {
		return nil, err
	}

	return converter.BookingToResponse(booking), nil
}

// AcceptBooking starts the work on behalf of the assigned provider
func (u *bookingUsecase) AcceptBooking(ctx context.Context, bookingID, providerID string) (*dto.BookingResponse, error) {
	booking, err := u.lifecycle.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.IsAssignedTo(providerID) {
		return nil, ErrProviderMismatch
	}

	if booking.Status != entity.BookingStatusAssigned {
		return nil, fmt.Errorf("%w: cannot accept booking with status %s", ErrInvalidState, booking.Status)
	}

	updated, err := u.lifecycle.TransitionStatus(ctx, bookingID, entity.BookingStatusInProgress, providerID, entity.ActorTypeProvider, nil)
	if err != nil {
		return nil, err
	}

	return converter.BookingToResponse(updated), nil
}

// RejectAssignment records the provider's rejection and returns the booking after reassignment was tried
func (u *bookingUsecase) RejectAssignment(ctx context.Context, bookingID, providerID string) (*dto.BookingResponse, error) {
	if err := u.assignment.HandleProviderRejection(ctx, bookingID, providerID); err != nil {
		return nil, err
	}

	return u.GetBooking(ctx, bookingID)
}

// CancelBooking cancels on behalf of the customer unless another actor is named
func (u *bookingUsecase) CancelBooking(ctx context.Context, bookingID string, req *dto.CancelBookingRequest) (*dto.BookingResponse, error) {
	actorID := defaultString(req.CancelledBy, string(entity.ActorTypeCustomer))
	actorType := entity.ActorType(defaultString(req.CancelledByType, string(entity.ActorTypeCustomer)))

	booking, err := u.lifecycle.TransitionStatus(ctx, bookingID, entity.BookingStatusCancelled, actorID, actorType, req.Reason)
	if err != nil {
		return nil, err
	}

	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) GetBookingEvents(ctx context.Context, bookingID string) (*dto.BookingEventListResponse, error) {
	events, err := u.lifecycle.GetEvents(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return &dto.BookingEventListResponse{
		Events: converter.BookingEventsToResponses(events),
		Total:  len(events),
	}, nil
}

// AssignProvider is a manual assignment by an admin. The provider must exist
// but its availability and skills are not checked.
func (u *bookingUsecase) AssignProvider(ctx context.Context, bookingID string, req *dto.AssignProviderRequest) (*dto.BookingResponse, error) {
	provider, err := u.providerRepo.FindByID(u.db.WithContext(ctx), req.ProviderID)
	if err != nil {
		u.log.Warnf("Failed to find provider %s: %+v", req.ProviderID, err)
		return nil, storeError("find provider", err)
	}
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	booking, err := u.lifecycle.AssignProvider(ctx, bookingID, provider.ID, entity.AdminActor)
	if err != nil {
		return nil, err
	}

	return converter.BookingWithProviderToResponse(booking, provider), nil
}

// OverrideStatus forces any known status as the admin actor
func (u *bookingUsecase) OverrideStatus(ctx context.Context, bookingID string, req *dto.OverrideStatusRequest) (*dto.BookingResponse, error) {
	booking, err := u.lifecycle.TransitionStatus(ctx, bookingID, entity.BookingStatus(req.Status), entity.AdminActor, entity.ActorTypeAdmin, req.Reason)
	if err != nil {
		return nil, err
	}

	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) GetEventHistory(ctx context.Context, filter *entity.EventFilter) (*dto.EventHistoryListResponse, error) {
	if filter != nil && filter.EventType != "" && !filter.EventType.IsValid() {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrValidation, filter.EventType)
	}

	entries, err := u.lifecycle.GetHistory(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.EventHistoryListResponse{
		Events: converter.EventHistoryToResponses(entries),
		Total:  len(entries),
	}, nil
}

// findProvider looks up a provider for display; lookup failures only drop the embedded provider
func (u *bookingUsecase) findProvider(ctx context.Context, providerID string) *entity.Provider {
	if providerID == "" {
		return nil
	}

	provider, err := u.providerRepo.FindByID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to find provider %s: %+v", providerID, err)
		return nil
	}
	return provider
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

