package booking

import (
	"context"
	"encoding/json"
	"sync"

	facilityRepo "turfacademy/database/repository/facility"
	"turfacademy/models"

	"github.com/stretchr/testify/mock"
)

// memoryStore keeps sessions as JSON, like the Redis store, so state that
// does not survive serialization breaks the tests too.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string][]byte)}
}

func (m *memoryStore) Create(_ context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	m.sessions[session.ID] = data
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return decodeSession(raw)
}

func (m *memoryStore) Update(_ context.Context, id string, fn func(*Session) error) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session, err := decodeSession(raw)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, err
	}
	m.sessions[id] = data
	return session, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

type MockFacilityLister struct {
	mock.Mock
}

func (m *MockFacilityLister) ListFacilities(ctx context.Context, sportID string) ([]models.Facility, error) {
	args := m.Called(ctx, sportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Facility), args.Error(1)
}

type MockAvailability struct {
	mock.Mock
}

func (m *MockAvailability) GetSlots(ctx context.Context, facilityID, date string) ([]models.Slot, error) {
	args := m.Called(ctx, facilityID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Slot), args.Error(1)
}

type MockReservationCreator struct {
	mock.Mock
}

func (m *MockReservationCreator) Create(ctx context.Context, userID string, req models.ReservationRequest) (*models.Reservation, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

type MockFacilityRepo struct {
	mock.Mock
}

func (m *MockFacilityRepo) Create(ctx context.Context, facility *models.Facility) error {
	return m.Called(ctx, facility).Error(0)
}

func (m *MockFacilityRepo) GetByID(ctx context.Context, id string) (*models.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Facility), args.Error(1)
}

func (m *MockFacilityRepo) List(ctx context.Context, filter facilityRepo.Filter) ([]models.Facility, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Facility), args.Error(1)
}

func (m *MockFacilityRepo) UpdateStatus(ctx context.Context, id string, status models.FacilityStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockFacilityRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockSlotRepo struct {
	mock.Mock
}

func (m *MockSlotRepo) GetDay(ctx context.Context, facilityID, date string) (*models.FacilityDay, error) {
	args := m.Called(ctx, facilityID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FacilityDay), args.Error(1)
}

func (m *MockSlotRepo) EnsureDay(ctx context.Context, facility models.Facility, date string) (*models.FacilityDay, error) {
	args := m.Called(ctx, facility, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FacilityDay), args.Error(1)
}

func (m *MockSlotRepo) ReserveSlots(ctx context.Context, reservation *models.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

func (m *MockSlotRepo) SetBlocked(ctx context.Context, facilityID, date, slotTime string, blocked bool, reason string) error {
	return m.Called(ctx, facilityID, date, slotTime, blocked, reason).Error(0)
}

func (m *MockSlotRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationRepo) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishReservationConfirmed(ctx context.Context, reservation models.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

type MockReminders struct {
	mock.Mock
}

func (m *MockReminders) ScheduleReservationReminder(ctx context.Context, reservation models.Reservation) error {
	return m.Called(ctx, reservation).Error(0)
}
