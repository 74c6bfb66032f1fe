package handlers

import (
	"net/http"
	"testing"

	"turfacademy/models"
	"turfacademy/services/booking"
	"turfacademy/services/catalog"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type adminMocks struct {
	catalog      *MockCatalogService
	slots        *MockAvailabilityService
	reservations *MockReservationService
	users        *MockUserService
}

func newAdminHandler() (*AdminHandler, adminMocks) {
	m := adminMocks{
		catalog:      &MockCatalogService{},
		slots:        &MockAvailabilityService{},
		reservations: &MockReservationService{},
		users:        &MockUserService{},
	}
	return NewAdminHandler(m.catalog, m.slots, m.reservations, m.users), m
}

func TestAdminHandler_CreateFacility(t *testing.T) {
	h, m := newAdminHandler()
	input := models.Facility{Name: "TurfA", HourlyRate: 800, SportIDs: []string{"football"}}
	created := input
	created.ID = "turf-a"
	created.Status = models.FacilityActive
	m.catalog.On("CreateFacility", mock.Anything, input).Return(&created, nil)

	c, w := newTestContext(http.MethodPost, "/api/admin/facilities", input, "")
	h.CreateFacilityHandler(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.Facility
	require.NoError(t, decode(w, &got))
	assert.Equal(t, "turf-a", got.ID)
}

func TestAdminHandler_CreateFacilityBadHours(t *testing.T) {
	h, m := newAdminHandler()
	input := models.Facility{Name: "TurfA", HourlyRate: 800, SportIDs: []string{"football"}, OpenHour: 20, CloseHour: 8}
	m.catalog.On("CreateFacility", mock.Anything, input).Return(nil, catalog.ErrInvalidHours)

	c, w := newTestContext(http.MethodPost, "/api/admin/facilities", input, "")
	h.CreateFacilityHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_SetFacilityStatus(t *testing.T) {
	h, m := newAdminHandler()
	m.catalog.On("SetFacilityStatus", mock.Anything, "turf-a", models.FacilityInactive).Return(nil)

	c, w := newTestContext(http.MethodPatch, "/api/admin/facilities/turf-a/status", gin.H{"status": "inactive"}, "")
	c.Params = gin.Params{{Key: "facilityID", Value: "turf-a"}}
	h.SetFacilityStatusHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	m.catalog.AssertExpectations(t)
}

func TestAdminHandler_BlockSlot(t *testing.T) {
	t.Run("blocks", func(t *testing.T) {
		h, m := newAdminHandler()
		m.slots.On("SetSlotBlocked", mock.Anything, "turf-a", "2025-06-01", "18:00", true, "maintenance").Return(nil)

		body := gin.H{"date": "2025-06-01", "time": "18:00", "reason": "maintenance"}
		c, w := newTestContext(http.MethodPost, "/api/admin/facilities/turf-a/slots/block", body, "")
		c.Params = gin.Params{{Key: "facilityID", Value: "turf-a"}}
		h.BlockSlotHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		m.slots.AssertExpectations(t)
	})

	t.Run("booked slot is refused", func(t *testing.T) {
		h, m := newAdminHandler()
		m.slots.On("SetSlotBlocked", mock.Anything, "turf-a", "2025-06-01", "19:00", true, "").Return(booking.ErrSlotBooked)

		body := gin.H{"date": "2025-06-01", "time": "19:00"}
		c, w := newTestContext(http.MethodPost, "/api/admin/facilities/turf-a/slots/block", body, "")
		c.Params = gin.Params{{Key: "facilityID", Value: "turf-a"}}
		h.BlockSlotHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unblocks", func(t *testing.T) {
		h, m := newAdminHandler()
		m.slots.On("SetSlotBlocked", mock.Anything, "turf-a", "2025-06-01", "18:00", false, "").Return(nil)

		body := gin.H{"date": "2025-06-01", "time": "18:00"}
		c, w := newTestContext(http.MethodPost, "/api/admin/facilities/turf-a/slots/unblock", body, "")
		c.Params = gin.Params{{Key: "facilityID", Value: "turf-a"}}
		h.UnblockSlotHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAdminHandler_ListReservations(t *testing.T) {
	h, m := newAdminHandler()
	want := models.ReservationFilter{FacilityID: "turf-a", Date: "2025-06-01", Limit: 100}
	m.reservations.On("List", mock.Anything, want).Return([]models.Reservation{{ID: "res-1"}, {ID: "res-2"}}, nil)

	c, w := newTestContext(http.MethodGet, "/api/admin/reservations?facility=turf-a&date=2025-06-01&limit=abc", nil, "")
	h.ListReservationsHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []models.Reservation
	require.NoError(t, decode(w, &got))
	assert.Len(t, got, 2)
}

func TestAdminHandler_GetAllUsers(t *testing.T) {
	h, m := newAdminHandler()
	m.users.On("GetAllUsers", mock.Anything, int64(20)).Return([]models.User{{ID: "user-1", Mobile: "9876543210"}}, nil)

	c, w := newTestContext(http.MethodGet, "/api/admin/users?limit=20", nil, "")
	h.GetAllUsersHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	m.users.AssertExpectations(t)
}
