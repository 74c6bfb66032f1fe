package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"

	"turfacademy/models"
	"turfacademy/services/booking"
	"turfacademy/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListSports(ctx context.Context) ([]models.Sport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sport), args.Error(1)
}

func (m *MockCatalogService) ListFacilities(ctx context.Context, sportID string) ([]models.Facility, error) {
	args := m.Called(ctx, sportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Facility), args.Error(1)
}

func (m *MockCatalogService) GetFacility(ctx context.Context, id string) (*models.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Facility), args.Error(1)
}

func (m *MockCatalogService) CreateSport(ctx context.Context, sport models.Sport) (*models.Sport, error) {
	args := m.Called(ctx, sport)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sport), args.Error(1)
}

func (m *MockCatalogService) CreateFacility(ctx context.Context, facility models.Facility) (*models.Facility, error) {
	args := m.Called(ctx, facility)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Facility), args.Error(1)
}

func (m *MockCatalogService) ListAllFacilities(ctx context.Context) ([]models.Facility, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Facility), args.Error(1)
}

func (m *MockCatalogService) SetFacilityStatus(ctx context.Context, id string, status models.FacilityStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) GetSlots(ctx context.Context, facilityID, date string) ([]models.Slot, error) {
	args := m.Called(ctx, facilityID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Slot), args.Error(1)
}

func (m *MockAvailabilityService) SetSlotBlocked(ctx context.Context, facilityID, date, slotTime string, blocked bool, reason string) error {
	args := m.Called(ctx, facilityID, date, slotTime, blocked, reason)
	return args.Error(0)
}

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Create(ctx context.Context, userID string, req models.ReservationRequest) (*models.Reservation, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationService) Get(ctx context.Context, userID, id string) (*models.Reservation, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockReservationService) ListForUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockReservationService) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) session(args mock.Arguments) (*booking.Session, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Session), args.Error(1)
}

func (m *MockSessionService) Start(ctx context.Context, userID string) (*booking.Session, error) {
	return m.session(m.Called(ctx, userID))
}

func (m *MockSessionService) Get(ctx context.Context, userID, sessionID string) (*booking.Session, error) {
	return m.session(m.Called(ctx, userID, sessionID))
}

func (m *MockSessionService) Cancel(ctx context.Context, userID, sessionID string) error {
	return m.Called(ctx, userID, sessionID).Error(0)
}

func (m *MockSessionService) SelectSport(ctx context.Context, userID, sessionID, sportID string) (*booking.Session, error) {
	return m.session(m.Called(ctx, userID, sessionID, sportID))
}

func (m *MockSessionService) SelectFacility(ctx context.Context, userID, sessionID, facilityID string) (*booking.Session, error) {
	return m.session(m.Called(ctx, userID, sessionID, facilityID))
}

func (m *MockSessionService) SelectDate(ctx context.Context, userID, sessionID, date string) (*booking.Session, error) {
	return m.session(m.Called(ctx, userID, sessionID, date))
}

func (m *MockSessionService) RefreshSlots(ctx context.Context, userID, sessionID string) (*booking.Session, error) {
	return m.session(m.Called(ctx, userID, sessionID))
}

func (m *MockSessionService) SelectSlots(ctx context.Context, userID, sessionID string, times []string) (*booking.Session, error) {
	return m.session(m.Called(ctx, userID, sessionID, times))
}

func (m *MockSessionService) SetParticipant(ctx context.Context, userID, sessionID string, participant models.Participant) (*booking.Session, error) {
	return m.session(m.Called(ctx, userID, sessionID, participant))
}

func (m *MockSessionService) Back(ctx context.Context, userID, sessionID string) (*booking.Session, error) {
	return m.session(m.Called(ctx, userID, sessionID))
}

func (m *MockSessionService) Reset(ctx context.Context, userID, sessionID string) (*booking.Session, error) {
	return m.session(m.Called(ctx, userID, sessionID))
}

func (m *MockSessionService) DismissNotice(ctx context.Context, userID, sessionID string) (*booking.Session, error) {
	return m.session(m.Called(ctx, userID, sessionID))
}

func (m *MockSessionService) Submit(ctx context.Context, userID, sessionID string) (*booking.Session, error) {
	return m.session(m.Called(ctx, userID, sessionID))
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RequestOTP(ctx context.Context, req models.OTPRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockUserService) VerifyOTP(ctx context.Context, req models.OTPVerifyRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetAllUsers(ctx context.Context, limit int64) ([]models.User, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// newTestContext builds a gin context for one request. A non-empty userID is
// set the way the auth middleware would.
func newTestContext(method, target string, body interface{}, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != "" {
		c.Set(utils.ContextUserID, userID)
	}
	return c, w
}

func decode(w *httptest.ResponseRecorder, dst interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), dst)
}
