package catalog

import (
	"context"
	"errors"
	"testing"

	facilityRepo "turfacademy/database/repository/facility"
	sportRepo "turfacademy/database/repository/sport"
	"turfacademy/models"
	"turfacademy/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSportRepo struct {
	mock.Mock
}

func (m *MockSportRepo) Create(ctx context.Context, sport *models.Sport) error {
	return m.Called(ctx, sport).Error(0)
}

func (m *MockSportRepo) GetByID(ctx context.Context, id string) (*models.Sport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sport), args.Error(1)
}

func (m *MockSportRepo) List(ctx context.Context) ([]models.Sport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sport), args.Error(1)
}

func (m *MockSportRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
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

func newService() (*DefaultCatalogService, *MockSportRepo, *MockFacilityRepo) {
	sports, facilities := new(MockSportRepo), new(MockFacilityRepo)
	return NewCatalogService(sports, facilities, zap.NewNop()), sports, facilities
}

func TestListFacilities_ActiveForSport(t *testing.T) {
	svc, sports, facilities := newService()
	ctx := context.Background()
	turfA := models.Facility{ID: "turf-a", Name: "TurfA", HourlyRate: 800, Status: models.FacilityActive, SportIDs: []string{"football"}}

	sports.On("GetByID", ctx, "football").Return(&models.Sport{ID: "football", Name: "Football"}, nil)
	facilities.On("List", ctx, facilityRepo.Filter{SportID: "football", ActiveOnly: true}).Return([]models.Facility{turfA}, nil)

	got, err := svc.ListFacilities(ctx, "football")
	require.NoError(t, err)
	assert.Equal(t, []models.Facility{turfA}, got)
	sports.AssertExpectations(t)
	facilities.AssertExpectations(t)
}

func TestListFacilities_UnknownOrMissingSport(t *testing.T) {
	svc, sports, facilities := newService()
	ctx := context.Background()

	_, err := svc.ListFacilities(ctx, "  ")
	var ve *utils.ValidationError
	assert.True(t, errors.As(err, &ve))

	sports.On("GetByID", ctx, "curling").Return(nil, sportRepo.ErrSportNotFound)
	_, err = svc.ListFacilities(ctx, "curling")
	assert.ErrorIs(t, err, ErrSportNotFound)
	facilities.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestCreateSport_SlugID(t *testing.T) {
	svc, sports, _ := newService()
	ctx := context.Background()
	sports.On("Create", ctx, mock.MatchedBy(func(s *models.Sport) bool {
		return s.ID == "table-tennis" && s.Name == "Table Tennis"
	})).Return(nil)

	got, err := svc.CreateSport(ctx, models.Sport{Name: " Table  Tennis "})
	require.NoError(t, err)
	assert.Equal(t, "table-tennis", got.ID)

	_, err = svc.CreateSport(ctx, models.Sport{})
	var ve *utils.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "name")
}

func TestCreateFacility(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults and id", func(t *testing.T) {
		svc, sports, facilities := newService()
		sports.On("GetByID", ctx, "football").Return(&models.Sport{ID: "football"}, nil)
		facilities.On("Create", ctx, mock.AnythingOfType("*models.Facility")).Return(nil)

		got, err := svc.CreateFacility(ctx, models.Facility{Name: "TurfA", HourlyRate: 800, SportIDs: []string{"football"}})
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, models.FacilityActive, got.Status)
		assert.Equal(t, models.DefaultOpenHour, got.OpenHour)
		assert.Equal(t, models.DefaultCloseHour, got.CloseHour)
		assert.Equal(t, models.DefaultSlotMinutes, got.SlotMinutes)
	})

	t.Run("unknown sport", func(t *testing.T) {
		svc, sports, facilities := newService()
		sports.On("GetByID", ctx, "polo").Return(nil, sportRepo.ErrSportNotFound)

		_, err := svc.CreateFacility(ctx, models.Facility{Name: "Field", HourlyRate: 100, SportIDs: []string{"polo"}})
		assert.ErrorIs(t, err, ErrSportNotFound)
		facilities.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("closing before opening", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.CreateFacility(ctx, models.Facility{Name: "Field", HourlyRate: 100, SportIDs: []string{"football"}, OpenHour: 20, CloseHour: 8})
		assert.ErrorIs(t, err, ErrInvalidHours)
	})

	t.Run("missing rate", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.CreateFacility(ctx, models.Facility{Name: "Field", SportIDs: []string{"football"}})
		var ve *utils.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Fields, "hourlyRate")
	})
}

func TestSetFacilityStatus(t *testing.T) {
	svc, _, facilities := newService()
	ctx := context.Background()

	facilities.On("UpdateStatus", ctx, "turf-a", models.FacilityInactive).Return(nil)
	facilities.On("UpdateStatus", ctx, "nope", models.FacilityActive).Return(facilityRepo.ErrFacilityNotFound)

	assert.NoError(t, svc.SetFacilityStatus(ctx, "turf-a", models.FacilityInactive))
	assert.ErrorIs(t, svc.SetFacilityStatus(ctx, "nope", models.FacilityActive), ErrFacilityNotFound)
	assert.Error(t, svc.SetFacilityStatus(ctx, "turf-a", "closed"))
}
