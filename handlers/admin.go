// File: turfacademy/handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"

	"turfacademy/models"
	"turfacademy/services/booking"
	"turfacademy/services/catalog"
	"turfacademy/services/user"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Catalog      catalog.CatalogService
	Slots        booking.SlotAdmin
	Reservations booking.ReservationService
	UserService  user.UserService
}

func NewAdminHandler(cs catalog.CatalogService, sa booking.SlotAdmin, rs booking.ReservationService, us user.UserService) *AdminHandler {
	return &AdminHandler{Catalog: cs, Slots: sa, Reservations: rs, UserService: us}
}

func (ah *AdminHandler) CreateSportHandler(c *gin.Context) {
	var sport models.Sport
	if !bindJSON(c, &sport) {
		return
	}
	created, err := ah.Catalog.CreateSport(c.Request.Context(), sport)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ah *AdminHandler) ListSportsHandler(c *gin.Context) {
	sports, err := ah.Catalog.ListSports(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sports)
}

func (ah *AdminHandler) CreateFacilityHandler(c *gin.Context) {
	var facility models.Facility
	if !bindJSON(c, &facility) {
		return
	}
	created, err := ah.Catalog.CreateFacility(c.Request.Context(), facility)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListFacilitiesHandler returns every facility including inactive ones.
func (ah *AdminHandler) ListFacilitiesHandler(c *gin.Context) {
	facilities, err := ah.Catalog.ListAllFacilities(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, facilities)
}

func (ah *AdminHandler) SetFacilityStatusHandler(c *gin.Context) {
	var input struct {
		Status models.FacilityStatus `json:"status" binding:"required"`
	}
	if !bindJSON(c, &input) {
		return
	}
	if err := ah.Catalog.SetFacilityStatus(c.Request.Context(), c.Param("facilityID"), input.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Facility status updated"})
}

type slotBlockInput struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Reason string `json:"reason"`
}

func (ah *AdminHandler) BlockSlotHandler(c *gin.Context) {
	ah.setSlotBlocked(c, true)
}

func (ah *AdminHandler) UnblockSlotHandler(c *gin.Context) {
	ah.setSlotBlocked(c, false)
}

func (ah *AdminHandler) setSlotBlocked(c *gin.Context, blocked bool) {
	var input slotBlockInput
	if !bindJSON(c, &input) {
		return
	}
	err := ah.Slots.SetSlotBlocked(c.Request.Context(), c.Param("facilityID"), input.Date, input.Time, blocked, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot updated", "blocked": blocked})
}

// ListReservationsHandler handles GET /api/admin/reservations?date=&facility=&limit=.
func (ah *AdminHandler) ListReservationsHandler(c *gin.Context) {
	filter := models.ReservationFilter{
		FacilityID: c.Query("facility"),
		Date:       c.Query("date"),
		Limit:      queryLimit(c),
	}
	reservations, err := ah.Reservations.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetReservationHandler returns any reservation regardless of owner.
func (ah *AdminHandler) GetReservationHandler(c *gin.Context) {
	reservation, err := ah.Reservations.Get(c.Request.Context(), "", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// GetAllUsersHandler returns all users (with sensitive fields excluded).
func (ah *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := ah.UserService.GetAllUsers(c.Request.Context(), queryLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func queryLimit(c *gin.Context) int64 {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)
	if err != nil || limit <= 0 || limit > 1000 {
		return 100
	}
	return limit
}
