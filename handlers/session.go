package handlers

import (
	"errors"
	"net/http"

	"turfacademy/models"
	"turfacademy/services/booking"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the server side booking flow. Every endpoint returns
// the whole session so clients render from one document.
type SessionHandler struct {
	Sessions booking.SessionService
}

func NewSessionHandler(ss booking.SessionService) *SessionHandler {
	return &SessionHandler{Sessions: ss}
}

type sessionStep func(c *gin.Context, userID, sessionID string) (*booking.Session, error)

// run resolves the caller and session id, then answers with the session.
func (h *SessionHandler) run(step sessionStep) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		session, err := step(c, userID, c.Param("sessionID"))
		if err != nil {
			if !errors.Is(err, errAborted) {
				respondError(c, err)
			}
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// StartSession handles POST /api/booking/session.
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	session, err := h.Sessions.Start(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// CancelSession handles DELETE /api/booking/session/:sessionID.
func (h *SessionHandler) CancelSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.Sessions.Cancel(c.Request.Context(), userID, c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking session cancelled"})
}

func (h *SessionHandler) GetSession() gin.HandlerFunc {
	return h.run(func(c *gin.Context, userID, sessionID string) (*booking.Session, error) {
		return h.Sessions.Get(c.Request.Context(), userID, sessionID)
	})
}

func (h *SessionHandler) SelectSport() gin.HandlerFunc {
	return h.run(func(c *gin.Context, userID, sessionID string) (*booking.Session, error) {
		var input struct {
			SportID string `json:"sportId" binding:"required"`
		}
		if !bindJSON(c, &input) {
			return nil, errAborted
		}
		return h.Sessions.SelectSport(c.Request.Context(), userID, sessionID, input.SportID)
	})
}

func (h *SessionHandler) SelectFacility() gin.HandlerFunc {
	return h.run(func(c *gin.Context, userID, sessionID string) (*booking.Session, error) {
		var input struct {
			FacilityID string `json:"facilityId" binding:"required"`
		}
		if !bindJSON(c, &input) {
			return nil, errAborted
		}
		return h.Sessions.SelectFacility(c.Request.Context(), userID, sessionID, input.FacilityID)
	})
}

func (h *SessionHandler) SelectDate() gin.HandlerFunc {
	return h.run(func(c *gin.Context, userID, sessionID string) (*booking.Session, error) {
		var input struct {
			Date string `json:"date" binding:"required"`
		}
		if !bindJSON(c, &input) {
			return nil, errAborted
		}
		return h.Sessions.SelectDate(c.Request.Context(), userID, sessionID, input.Date)
	})
}

func (h *SessionHandler) SelectSlots() gin.HandlerFunc {
	return h.run(func(c *gin.Context, userID, sessionID string) (*booking.Session, error) {
		var input struct {
			SlotTimes []string `json:"slotTimes"`
		}
		if !bindJSON(c, &input) {
			return nil, errAborted
		}
		return h.Sessions.SelectSlots(c.Request.Context(), userID, sessionID, input.SlotTimes)
	})
}

func (h *SessionHandler) SetParticipant() gin.HandlerFunc {
	return h.run(func(c *gin.Context, userID, sessionID string) (*booking.Session, error) {
		var input models.Participant
		if !bindJSON(c, &input) {
			return nil, errAborted
		}
		return h.Sessions.SetParticipant(c.Request.Context(), userID, sessionID, input)
	})
}

func (h *SessionHandler) RefreshSlots() gin.HandlerFunc {
	return h.run(func(c *gin.Context, userID, sessionID string) (*booking.Session, error) {
		return h.Sessions.RefreshSlots(c.Request.Context(), userID, sessionID)
	})
}

func (h *SessionHandler) Back() gin.HandlerFunc {
	return h.run(func(c *gin.Context, userID, sessionID string) (*booking.Session, error) {
		return h.Sessions.Back(c.Request.Context(), userID, sessionID)
	})
}

func (h *SessionHandler) Submit() gin.HandlerFunc {
	return h.run(func(c *gin.Context, userID, sessionID string) (*booking.Session, error) {
		return h.Sessions.Submit(c.Request.Context(), userID, sessionID)
	})
}

func (h *SessionHandler) Reset() gin.HandlerFunc {
	return h.run(func(c *gin.Context, userID, sessionID string) (*booking.Session, error) {
		return h.Sessions.Reset(c.Request.Context(), userID, sessionID)
	})
}

func (h *SessionHandler) DismissNotice() gin.HandlerFunc {
	return h.run(func(c *gin.Context, userID, sessionID string) (*booking.Session, error) {
		return h.Sessions.DismissNotice(c.Request.Context(), userID, sessionID)
	})
}
