package handlers

import (
	"net/http"

	"turfacademy/models"
	"turfacademy/services/booking"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	Reservations booking.ReservationService
}

func NewReservationHandler(rs booking.ReservationService) *ReservationHandler {
	return &ReservationHandler{Reservations: rs}
}

// CreateReservation handles POST /api/reservations.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req models.ReservationRequest
	if !bindJSON(c, &req) {
		return
	}

	reservation, err := h.Reservations.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.ReservationResponse{ReservationID: reservation.ID, Status: reservation.Status})
}

// ListMyReservations handles GET /api/reservations.
func (h *ReservationHandler) ListMyReservations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reservations, err := h.Reservations.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetReceipt handles GET /api/reservations/:id.
func (h *ReservationHandler) GetReceipt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reservation, err := h.Reservations.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation.Receipt())
}
