package tests

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"xeghep/internal/domain"
	"xeghep/internal/events"
	"xeghep/internal/repository"
	"xeghep/internal/repository/memory"
	"xeghep/internal/service"
	"xeghep/internal/state"
)

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of redis.LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) AcquireRequestLock(ctx context.Context, requestID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:request:" + requestID
	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleaseRequestLock(ctx context.Context, requestID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, "lock:request:"+requestID)
	return nil
}

// IsLocked checks if a request is locked (for test assertions).
func (m *MockLockStore) IsLocked(requestID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks["lock:request:"+requestID]
	return exists && time.Now().Before(expiry)
}

// ──────────────────────────────────────────────
// MOCK PUBLISHER
// ──────────────────────────────────────────────

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	events []events.Event

	// Error injection
	PublishError error
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.PublishError
}

func (m *MockPublisher) Close() error { return nil }

// Types returns the published event types in order.
func (m *MockPublisher) Types() []events.Type {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.Type, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

// ──────────────────────────────────────────────
// MOCK SLOT STORE
// ──────────────────────────────────────────────

// MockSlotStore wraps the in-memory slot store with save counters and
// error injection.
type MockSlotStore struct {
	*memory.SlotStore

	SaveAllCallCount int32
	SaveAllError     error
}

// NewMockSlotStore creates a new mock slot store.
func NewMockSlotStore() *MockSlotStore {
	return &MockSlotStore{SlotStore: memory.NewSlotStore()}
}

func (m *MockSlotStore) SaveAll(ctx context.Context, slots map[string][]byte) error {
	atomic.AddInt32(&m.SaveAllCallCount, 1)
	if m.SaveAllError != nil {
		return m.SaveAllError
	}
	return m.SlotStore.SaveAll(ctx, slots)
}

var _ repository.SlotStore = (*MockSlotStore)(nil)

// ──────────────────────────────────────────────
// FIXTURES
// ──────────────────────────────────────────────

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fixture holds a store and every service wired against it.
type fixture struct {
	store         *state.Store
	slots         *MockSlotStore
	locks         *MockLockStore
	publisher     *MockPublisher
	notifications *service.NotificationService
	rides         *service.RideService
	bookings      *service.BookingService
	requests      *service.RequestService
	fleet         *service.FleetService
	reports       *service.ReportService
}

func newFixture(initial state.Collections) *fixture {
	logger := quietLogger()
	f := &fixture{
		slots:     NewMockSlotStore(),
		locks:     NewMockLockStore(),
		publisher: &MockPublisher{},
	}
	f.store = state.New(f.slots, logger, initial)
	f.notifications = service.NewNotificationService(time.Minute, logger)
	f.rides = service.NewRideService(f.store, nil, logger)
	f.bookings = service.NewBookingService(f.store, f.notifications, f.publisher, logger)
	f.requests = service.NewRequestService(f.store, f.locks, f.notifications, f.publisher, logger)
	f.fleet = service.NewFleetService(f.store, logger)
	f.reports = service.NewReportService(f.store)
	return f
}

func testRide(id string, seats int) domain.Ride {
	return domain.Ride{
		ID: id, DriverName: "Nguyễn Văn Hùng", DriverPhone: "0912345678", DriverRating: 5.0,
		Origin: "Bình Phước", Destination: "Sài Gòn", Date: "2024-05-20", Time: "07:00",
		Price: 150000, SeatsAvailable: seats, TotalSeats: 7,
		CarModel: "Toyota Innova", Type: domain.RideTypeShared,
	}
}

func testRequest(id string) domain.RideRequest {
	return domain.RideRequest{
		ID: id, PassengerName: "Hoàng Thị Lan", PassengerPhone: "0911112222",
		Origin: "Bù Đăng", Destination: "Tân Sơn Nhất", Date: "2024-05-20", Time: "05:00",
		Seats: 2, Status: domain.RequestStatusPending, CreatedAt: time.Now(),
	}
}

func testDriver() domain.Driver {
	return domain.Driver{ID: "d1", Name: "Trần Tuấn Anh", Phone: "0987654321"}
}

func testVehicle() domain.Vehicle {
	return domain.Vehicle{ID: "v1", Model: "Mazda CX-5", Type: "5 chỗ", LicensePlate: "93A-567.89"}
}

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }
