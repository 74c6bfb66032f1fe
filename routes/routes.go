package routes

import (
	"time"

	"turfacademy/handlers"
	"turfacademy/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers the public sports, facilities and availability reads.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/sports", hb.Catalog.ListSports)
		api.GET("/facilities", hb.Catalog.ListFacilities)
		api.GET("/facilities/:facilityID/slots", hb.Catalog.GetSlots)
	}
}

// RegisterAuthRoutes registers OTP login and the current user endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/otp/request", hb.Auth.RequestOTPHandler)
		auth.POST("/otp/verify", hb.Auth.VerifyOTPHandler)

		// Protected routes (Require Authentication)
		auth.POST("/logout", userAuth(hb), hb.Auth.LogoutHandler)
	}

	users := r.Group("/api/users")
	{
		users.Use(userAuth(hb))
		users.GET("/me", hb.Auth.MeHandler)
	}
}

// RegisterReservationRoutes registers direct reservation creation and receipts.
func RegisterReservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	reservations := r.Group("/api/reservations")
	{
		reservations.Use(userAuth(hb))
		reservations.POST("", hb.Reservations.CreateReservation)
		reservations.GET("", hb.Reservations.ListMyReservations)
		reservations.GET("/:id", hb.Reservations.GetReceipt)
	}
}

// RegisterBookingRoutes sets up the server side booking flow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(userAuth(hb))
		bookingGroup.POST("/session", hb.Sessions.StartSession)
		bookingGroup.GET("/session/:sessionID", hb.Sessions.GetSession())
		bookingGroup.DELETE("/session/:sessionID", hb.Sessions.CancelSession)

		step := bookingGroup.Group("/session/:sessionID")
		step.POST("/sport", hb.Sessions.SelectSport())
		step.POST("/facility", hb.Sessions.SelectFacility())
		step.POST("/date", hb.Sessions.SelectDate())
		step.POST("/slots", hb.Sessions.SelectSlots())
		step.POST("/slots/refresh", hb.Sessions.RefreshSlots())
		step.POST("/participant", hb.Sessions.SetParticipant())
		step.POST("/back", hb.Sessions.Back())
		step.POST("/submit", hb.Sessions.Submit())
		step.POST("/reset", hb.Sessions.Reset())
		step.POST("/notice/dismiss", hb.Sessions.DismissNotice())
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())
		adminGroup.GET("/sports", hb.Admin.ListSportsHandler)
		adminGroup.POST("/sports", hb.Admin.CreateSportHandler)
		adminGroup.GET("/facilities", hb.Admin.ListFacilitiesHandler)
		adminGroup.POST("/facilities", hb.Admin.CreateFacilityHandler)
		adminGroup.PATCH("/facilities/:facilityID/status", hb.Admin.SetFacilityStatusHandler)
		adminGroup.POST("/facilities/:facilityID/slots/block", hb.Admin.BlockSlotHandler)
		adminGroup.POST("/facilities/:facilityID/slots/unblock", hb.Admin.UnblockSlotHandler)
		adminGroup.GET("/reservations", hb.Admin.ListReservationsHandler)
		adminGroup.GET("/reservations/:id", hb.Admin.GetReservationHandler)
		adminGroup.GET("/users", hb.Admin.GetAllUsersHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

func userAuth(hb *handlers.HandlerBundle) gin.HandlerFunc {
	return middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.AuthCache, hb.TokenTTL)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCatalogRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterReservationRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
