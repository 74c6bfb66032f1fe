package handlers

import (
	"errors"
	"net/http"

	"turfacademy/services/booking"
	"turfacademy/services/catalog"
	"turfacademy/services/flow"
	"turfacademy/services/user"
	"turfacademy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errAborted marks a request that already has its response.
var errAborted = errors.New("request aborted")

// respondError maps service errors to HTTP responses. Unknown errors are
// logged and reported as 500 without details.
func respondError(c *gin.Context, err error) {
	var (
		ve *utils.ValidationError
		ce *booking.ConflictError
		te *flow.TransitionError
	)
	switch {
	case errors.As(err, &ve):
		utils.JSONValidationError(c, ve.Fields)
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, gin.H{"error": "Some slots are no longer available", "unavailable": ce.Times})
	case errors.As(err, &te):
		c.JSON(http.StatusConflict, gin.H{"error": te.Error(), "step": te.From})

	case errors.Is(err, booking.ErrSessionNotFound),
		errors.Is(err, booking.ErrReservationNotFound),
		errors.Is(err, booking.ErrFacilityNotFound),
		errors.Is(err, booking.ErrSlotNotFound),
		errors.Is(err, catalog.ErrFacilityNotFound),
		errors.Is(err, catalog.ErrSportNotFound),
		errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, booking.ErrFacilityInactive),
		errors.Is(err, booking.ErrSportMismatch),
		errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, catalog.ErrInvalidHours):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, booking.ErrSlotBooked), errors.Is(err, booking.ErrSessionBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, user.ErrInvalidOTP):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})

	case booking.IsTransient(err):
		zap.L().Warn("Upstream unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry", "")
	default:
		zap.L().Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", "")
	}
}

// bindJSON decodes the body and answers 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}

func currentUserID(c *gin.Context) (string, bool) {
	id := c.GetString(utils.ContextUserID)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization", "code": 0})
		return "", false
	}
	return id, true
}
