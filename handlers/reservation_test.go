package handlers

import (
	"net/http"
	"testing"

	"turfacademy/models"
	"turfacademy/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testRequest = models.ReservationRequest{
	SportID:    "football",
	FacilityID: "turf-a",
	Date:       "2025-06-01",
	SlotTimes:  []string{"18:00", "19:00"},
	Participant: models.Participant{
		ParentName: "Asha Rao",
		Mobile:     "9876543210",
		PlayerName: "Kabir Rao",
		Age:        "11",
	},
}

func TestReservationHandler_CreateReservation(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		rs := &MockReservationService{}
		h := NewReservationHandler(rs)
		rs.On("Create", mock.Anything, "user-1", testRequest).
			Return(&models.Reservation{ID: "res-1", Status: models.ReservationConfirmed, Amount: 1600}, nil)

		c, w := newTestContext(http.MethodPost, "/api/reservations", testRequest, "user-1")
		h.CreateReservation(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp models.ReservationResponse
		require.NoError(t, decode(w, &resp))
		assert.Equal(t, models.ReservationResponse{ReservationID: "res-1", Status: "confirmed"}, resp)
		rs.AssertExpectations(t)
	})

	t.Run("conflict lists the taken slots", func(t *testing.T) {
		rs := &MockReservationService{}
		h := NewReservationHandler(rs)
		rs.On("Create", mock.Anything, "user-1", testRequest).
			Return(nil, &booking.ConflictError{Times: []string{"19:00"}})

		c, w := newTestContext(http.MethodPost, "/api/reservations", testRequest, "user-1")
		h.CreateReservation(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp struct {
			Error       string   `json:"error"`
			Unavailable []string `json:"unavailable"`
		}
		require.NoError(t, decode(w, &resp))
		assert.Equal(t, []string{"19:00"}, resp.Unavailable)
	})

	t.Run("bad body", func(t *testing.T) {
		rs := &MockReservationService{}
		h := NewReservationHandler(rs)

		c, w := newTestContext(http.MethodPost, "/api/reservations", "not an object", "user-1")
		h.CreateReservation(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		rs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rs := &MockReservationService{}
		h := NewReservationHandler(rs)

		c, w := newTestContext(http.MethodPost, "/api/reservations", testRequest, "")
		h.CreateReservation(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		rs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReservationHandler_GetReceipt(t *testing.T) {
	rs := &MockReservationService{}
	h := NewReservationHandler(rs)
	reservation := &models.Reservation{
		ID:           "res-1",
		FacilityName: "TurfA",
		Date:         "2025-06-01",
		SlotTimes:    []string{"18:00", "19:00"},
		Participant:  testRequest.Participant,
		Amount:       1600,
		Currency:     "INR",
		Status:       models.ReservationConfirmed,
	}
	rs.On("Get", mock.Anything, "user-1", "res-1").Return(reservation, nil)
	rs.On("Get", mock.Anything, "user-1", "res-2").Return(nil, booking.ErrReservationNotFound)

	c, w := newTestContext(http.MethodGet, "/api/reservations/res-1", nil, "user-1")
	c.Params = gin.Params{{Key: "id", Value: "res-1"}}
	h.GetReceipt(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var receipt models.Receipt
	require.NoError(t, decode(w, &receipt))
	assert.Equal(t, "Asha Rao", receipt.ParentName)
	assert.Equal(t, "9876543210", receipt.Mobile)
	assert.Equal(t, 1600.0, receipt.Amount)

	c, w = newTestContext(http.MethodGet, "/api/reservations/res-2", nil, "user-1")
	c.Params = gin.Params{{Key: "id", Value: "res-2"}}
	h.GetReceipt(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationHandler_ListMyReservations(t *testing.T) {
	rs := &MockReservationService{}
	h := NewReservationHandler(rs)
	rs.On("ListForUser", mock.Anything, "user-1").Return([]models.Reservation{{ID: "res-1"}}, nil)

	c, w := newTestContext(http.MethodGet, "/api/reservations", nil, "user-1")
	h.ListMyReservations(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []models.Reservation
	require.NoError(t, decode(w, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "res-1", got[0].ID)
}
