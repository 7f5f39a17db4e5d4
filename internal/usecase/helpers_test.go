package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"home-service-booking/config"
	"home-service-booking/internal/domain/entity"
	domainRepo "home-service-booking/internal/domain/repository"
	"home-service-booking/internal/infrastructure/metrics"
	"home-service-booking/internal/repository"
	"home-service-booking/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testEpoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu     sync.Mutex
	events []*entity.BookingEvent
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event *entity.BookingEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

type testEnv struct {
	db           *gorm.DB
	metrics      *metrics.Metrics
	notifier     *recordingNotifier
	bookingRepo  domainRepo.BookingRepository
	providerRepo domainRepo.ProviderRepository
	lifecycle    *bookingLifecycleUsecase
	assignment   AssignmentUsecase
	bookings     BookingUsecase
	providers    ProviderUsecase
	delays       []time.Duration
	onSleep      func(n int)
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:usecase_test_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Provider{}, &entity.Booking{}, &entity.BookingEvent{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &testEnv{
		db:           db,
		metrics:      metrics.NewMetrics(prometheus.NewRegistry()),
		notifier:     &recordingNotifier{},
		bookingRepo:  repository.NewBookingRepository(),
		providerRepo: repository.NewProviderRepository(),
	}

	eventRepo := repository.NewBookingEventRepository()
	lifecycle := NewBookingLifecycleUsecase(db, log, env.bookingRepo, eventRepo,
		service.NewEventRecorder(log, eventRepo), env.notifier, env.metrics).(*bookingLifecycleUsecase)

	tick := 0
	lifecycle.now = func() time.Time {
		tick++
		return testEpoch.Add(time.Duration(tick) * time.Second)
	}
	env.lifecycle = lifecycle

	sleep := func(d time.Duration) {
		env.delays = append(env.delays, d)
		if env.onSleep != nil {
			env.onSleep(len(env.delays))
		}
	}
	env.assignment = NewAssignmentUsecase(db, log, env.providerRepo, lifecycle, env.metrics, config.DefaultAssignmentConfig(), sleep)
	env.bookings = NewBookingUsecase(db, log, lifecycle, env.assignment, env.providerRepo)
	env.providers = NewProviderUsecase(db, log, env.providerRepo, env.bookingRepo)

	return env
}

// addProvider inserts providers in directory order; later calls sort after earlier ones
func (e *testEnv) addProvider(t *testing.T, id string, serviceTypes ...string) *entity.Provider {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&entity.Provider{}).Count(&count).Error)

	provider := &entity.Provider{
		ID:           id,
		Name:         "Provider " + id,
		Email:        id + "@example.com",
		ServiceTypes: serviceTypes,
		IsAvailable:  true,
		CreatedAt:    testEpoch.Add(time.Duration(count) * time.Minute),
	}
	require.NoError(t, e.providerRepo.Create(e.db, provider))
	return provider
}

func (e *testEnv) createBooking(t *testing.T, serviceType string) *entity.Booking {
	t.Helper()
	booking, err := e.lifecycle.Create(context.Background(), CreateBookingInput{
		CustomerID:   "customer-1",
		CustomerName: "Asha Rao",
		ServiceType:  serviceType,
		Description:  "Kitchen sink is leaking",
		Address:      "12 MG Road, Bengaluru",
	})
	require.NoError(t, err)
	return booking
}

// forceStatus moves a booking outside the lifecycle to set up a starting state
func (e *testEnv) forceStatus(t *testing.T, bookingID string, status entity.BookingStatus) {
	t.Helper()
	require.NoError(t, e.db.Model(&entity.Booking{}).Where("id = ?", bookingID).Update("status", status).Error)
}

func (e *testEnv) events(t *testing.T, bookingID string) []entity.BookingEvent {
	t.Helper()
	events, err := e.lifecycle.GetEvents(context.Background(), bookingID)
	require.NoError(t, err)
	return events
}

// mutationEvents drops the created event and returns the rest oldest first
func mutationEvents(events []entity.BookingEvent) []entity.BookingEvent {
	var out []entity.BookingEvent
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].EventType != entity.EventTypeCreated {
			out = append(out, events[i])
		}
	}
	return out
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
