package handlers

import (
	"net/http"

	"turfacademy/models"
	"turfacademy/services/user"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	UserService user.UserService
}

func NewAuthHandler(us user.UserService) *AuthHandler {
	return &AuthHandler{UserService: us}
}

// RequestOTPHandler handles POST /api/auth/otp/request.
func (h *AuthHandler) RequestOTPHandler(c *gin.Context) {
	var req models.OTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.UserService.RequestOTP(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// VerifyOTPHandler handles POST /api/auth/otp/verify.
func (h *AuthHandler) VerifyOTPHandler(c *gin.Context) {
	var req models.OTPVerifyRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler handles POST /api/auth/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.UserService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// MeHandler handles GET /api/users/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	usr, err := h.UserService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}
