package usecase

import (
	"context"
	"testing"
	"time"

	"home-service-booking/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignProviderToBooking_PicksFirstEligibleInDirectoryOrder(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.addProvider(t, "provider-1", "cleaning")
	env.addProvider(t, "provider-2", "plumbing", "electrical")
	env.addProvider(t, "provider-3", "plumbing")
	booking := env.createBooking(t, "plumbing")

	provider, err := env.assignment.AssignProviderToBooking(ctx, booking.ID, "plumbing")
	require.NoError(t, err)
	assert.Equal(t, "provider-2", provider.ID)
	assert.Empty(t, env.delays)

	stored, err := env.lifecycle.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusAssigned, stored.Status)
	assert.Equal(t, "provider-2", stored.AssignedProvider())

	events := mutationEvents(env.events(t, booking.ID))
	require.Len(t, events, 1)
	assert.Equal(t, entity.EventTypeProviderAssigned, events[0].EventType)
	assert.Equal(t, entity.SystemActor, events[0].PerformedBy)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.AssignmentAttempts.WithLabelValues("success")))
}

func TestAssignProviderToBooking_SkipsUnavailableAndPartialTagMatches(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	busy := env.addProvider(t, "provider-1", "plumbing")
	env.addProvider(t, "provider-2", "plumbing-repair")
	env.addProvider(t, "provider-3", "electrical", "plumbing")
	_, err := env.providerRepo.UpdateAvailability(env.db, busy.ID, false)
	require.NoError(t, err)
	booking := env.createBooking(t, "plumbing")

	provider, err := env.assignment.AssignProviderToBooking(ctx, booking.ID, "plumbing")
	require.NoError(t, err)
	assert.Equal(t, "provider-3", provider.ID)
}

func TestAssignProviderToBooking_WildcardServiceTypesMatchNothing(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.addProvider(t, "provider-1", "plumbing")

	for _, serviceType := range []string{"%", "pl_mbing", "plumb%", "PLUMBING"} {
		t.Run(serviceType, func(t *testing.T) {
			booking := env.createBooking(t, serviceType)

			provider, err := env.assignment.AssignProviderToBooking(ctx, booking.ID, serviceType)
			assert.ErrorIs(t, err, ErrNoProviderAvailable)
			assert.Nil(t, provider)

			got, err := env.lifecycle.GetBooking(ctx, booking.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.BookingStatusPending, got.Status)
			assert.Nil(t, got.ProviderID)
		})
	}
}

func TestAssignProviderToBooking_NoProviderRetriesWithLinearBackoff(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.addProvider(t, "provider-1", "cleaning")
	booking := env.createBooking(t, "plumbing")

	provider, err := env.assignment.AssignProviderToBooking(ctx, booking.ID, "plumbing")
	assert.Nil(t, provider)
	assert.ErrorIs(t, err, ErrNoProviderAvailable)

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, env.delays)
	var total time.Duration
	for _, d := range env.delays {
		total += d
	}
	assert.Equal(t, 6*time.Second, total)
	assert.Equal(t, float64(4), testutil.ToFloat64(env.metrics.AssignmentAttempts.WithLabelValues("retryable_failure")))
	assert.Equal(t, float64(3), testutil.ToFloat64(env.metrics.AssignmentRetries))

	stored, err := env.lifecycle.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
	assert.Len(t, env.events(t, booking.ID), 1)
}

func TestAssignProviderToBooking_SucceedsOnceProviderAppears(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	booking := env.createBooking(t, "electrical")
	env.onSleep = func(n int) {
		if n == 2 {
			env.addProvider(t, "provider-7", "electrical")
		}
	}

	provider, err := env.assignment.AssignProviderToBooking(ctx, booking.ID, "electrical")
	require.NoError(t, err)
	assert.Equal(t, "provider-7", provider.ID)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, env.delays)
}

func TestAssignProviderToBooking_NonRetryableErrorsReturnImmediately(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.addProvider(t, "provider-1", "plumbing")

	_, err := env.assignment.AssignProviderToBooking(ctx, "missing", "plumbing")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	completed := env.createBooking(t, "plumbing")
	env.forceStatus(t, completed.ID, entity.BookingStatusCompleted)
	_, err = env.assignment.AssignProviderToBooking(ctx, completed.ID, "plumbing")
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = env.assignment.AssignProviderToBooking(ctx, completed.ID, " ")
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, env.delays)
	assert.Equal(t, float64(3), testutil.ToFloat64(env.metrics.AssignmentAttempts.WithLabelValues("failed")))
}

func TestHandleProviderRejection_ReassignsToAnotherProvider(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.addProvider(t, "provider-1", "plumbing")
	env.addProvider(t, "provider-2", "plumbing")
	booking := env.createBooking(t, "plumbing")

	first, err := env.assignment.AssignProviderToBooking(ctx, booking.ID, "plumbing")
	require.NoError(t, err)
	require.Equal(t, "provider-1", first.ID)

	require.NoError(t, env.assignment.HandleProviderRejection(ctx, booking.ID, "provider-1"))

	stored, err := env.lifecycle.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusAssigned, stored.Status)
	assert.Equal(t, "provider-2", stored.AssignedProvider())

	events := mutationEvents(env.events(t, booking.ID))
	require.Len(t, events, 3)
	assert.Equal(t, entity.EventTypeProviderAssigned, events[0].EventType)
	assert.Equal(t, entity.EventTypeStatusUpdated, events[1].EventType)
	assert.Equal(t, "provider-1", events[1].PerformedBy)
	assert.Equal(t, entity.ActorTypeProvider, events[1].PerformedByType)
	assert.Equal(t, entity.EventTypeProviderAssigned, events[2].EventType)

	payload, err := events[2].Payload()
	require.NoError(t, err)
	assert.Equal(t, entity.ProviderAssignedPayload{ProviderID: "provider-2"}, payload)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.ProviderRejections))
}

func TestHandleProviderRejection_NoReplacementLeavesBookingRejected(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.addProvider(t, "provider-1", "plumbing")
	booking := env.createBooking(t, "plumbing")

	_, err := env.assignment.AssignProviderToBooking(ctx, booking.ID, "plumbing")
	require.NoError(t, err)

	require.NoError(t, env.assignment.HandleProviderRejection(ctx, booking.ID, "provider-1"))

	stored, err := env.lifecycle.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusRejected, stored.Status)
	assert.Equal(t, "provider-1", stored.AssignedProvider())
	assert.Len(t, mutationEvents(env.events(t, booking.ID)), 2)
	assert.Len(t, env.delays, 3)
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.ReassignmentFailures))
}

func TestHandleProviderRejection_Mismatch(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.addProvider(t, "provider-1", "plumbing")
	booking := env.createBooking(t, "plumbing")

	err := env.assignment.HandleProviderRejection(ctx, booking.ID, "provider-1")
	assert.ErrorIs(t, err, ErrProviderMismatch)

	_, err = env.assignment.AssignProviderToBooking(ctx, booking.ID, "plumbing")
	require.NoError(t, err)

	err = env.assignment.HandleProviderRejection(ctx, booking.ID, "provider-2")
	assert.ErrorIs(t, err, ErrProviderMismatch)

	err = env.assignment.HandleProviderRejection(ctx, "missing", "provider-1")
	assert.ErrorIs(t, err, ErrProviderMismatch)

	stored, err := env.lifecycle.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusAssigned, stored.Status)
}

func TestHandleProviderRejection_AfterAcceptIsInvalidTransition(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	env.addProvider(t, "provider-1", "plumbing")
	booking := env.createBooking(t, "plumbing")
	_, err := env.assignment.AssignProviderToBooking(ctx, booking.ID, "plumbing")
	require.NoError(t, err)
	_, err = env.lifecycle.TransitionStatus(ctx, booking.ID, entity.BookingStatusInProgress, "provider-1", entity.ActorTypeProvider, nil)
	require.NoError(t, err)

	err = env.assignment.HandleProviderRejection(ctx, booking.ID, "provider-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
