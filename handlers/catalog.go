package handlers

import (
	"net/http"

	"turfacademy/services/booking"
	"turfacademy/services/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public sports, facilities and availability reads.
type CatalogHandler struct {
	Catalog      catalog.CatalogService
	Availability booking.AvailabilityService
}

func NewCatalogHandler(cs catalog.CatalogService, as booking.AvailabilityService) *CatalogHandler {
	return &CatalogHandler{Catalog: cs, Availability: as}
}

// ListSports handles GET /api/sports.
func (h *CatalogHandler) ListSports(c *gin.Context) {
	sports, err := h.Catalog.ListSports(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sports)
}

// ListFacilities handles GET /api/facilities?sport=<id>.
func (h *CatalogHandler) ListFacilities(c *gin.Context) {
	facilities, err := h.Catalog.ListFacilities(c.Request.Context(), c.Query("sport"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, facilities)
}

// GetSlots handles GET /api/facilities/:facilityID/slots?date=YYYY-MM-DD.
func (h *CatalogHandler) GetSlots(c *gin.Context) {
	slots, err := h.Availability.GetSlots(c.Request.Context(), c.Param("facilityID"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}
