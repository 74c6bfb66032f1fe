// File: turfacademy/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"turfacademy/config"
	"turfacademy/cron"
	"turfacademy/database"
	facilityRepo "turfacademy/database/repository/facility"
	reservationRepo "turfacademy/database/repository/reservation"
	slotRepo "turfacademy/database/repository/slot"
	sportRepo "turfacademy/database/repository/sport"
	userRepoPkg "turfacademy/database/repository/user"
	"turfacademy/handlers"
	"turfacademy/middleware"
	"turfacademy/routes"
	"turfacademy/services/booking"
	"turfacademy/services/catalog"
	"turfacademy/services/events"
	"turfacademy/services/tasks"
	"turfacademy/services/user"
	"turfacademy/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	database.InitDB()
	utils.InitRedis()

	if cfg.JWTSecret == "" {
		logger.Sugar().Fatal("main: JWT_SECRET must be set")
	}
	if cfg.AdminToken == "" {
		logger.Warn("main: ADMIN_TOKEN is empty, the admin API is closed")
	}

	// repositories.
	sports := sportRepo.NewMongoSportRepo()
	facilities := facilityRepo.NewMongoFacilityRepo()
	slots := slotRepo.NewMongoSlotRepo()
	reservations := reservationRepo.NewMongoReservationRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	for name, ensure := range map[string]func(context.Context) error{
		"sports":       sports.EnsureIndexes,
		"facilities":   facilities.EnsureIndexes,
		"facilityDays": slots.EnsureIndexes,
		"reservations": reservations.EnsureIndexes,
		"users":        userRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}
	cancelIndexes()

	// side effects of a reservation.
	publisher, err := events.NewPublisher(cfg, logger)
	if err != nil {
		logger.Error("main: event broker unavailable, falling back to log publisher", zap.Error(err))
		publisher = events.NewLogPublisher(logger)
	}
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisReminderQueueDB,
	})
	reminders := tasks.NewReminderScheduler(taskClient, cfg.ReminderLead, cfg.Location(), logger)
	reminderWorker := cron.InitReminderWorker(utils.SendSMS, logger)

	// services.
	catalogService := catalog.NewCatalogService(sports, facilities, logger)
	availabilityService := booking.NewAvailabilityService(facilities, slots, cfg.AvailabilityTimeout, cfg.Location(), logger)
	reservationService := &booking.DefaultReservationService{
		Facilities:   facilities,
		Slots:        slots,
		Reservations: reservations,
		Events:       publisher,
		Reminders:    reminders,
		Currency:     cfg.Currency,
		Timeout:      cfg.SubmissionTimeout,
		Location:     cfg.Location(),
		Logger:       logger.With(zap.String("service", "reservations")),
	}
	sessionService := &booking.DefaultSessionService{
		Store:         booking.NewRedisSessionStore(utils.GetSessionCacheClient(), cfg.SessionTTL),
		Catalog:       catalogService,
		Availability:  availabilityService,
		Reservations:  reservationService,
		QueryTimeout:  cfg.AvailabilityTimeout,
		SubmitTimeout: cfg.SubmissionTimeout,
		Logger:        logger.With(zap.String("service", "sessions")),
	}
	authCache := utils.RedisAuthSessionCache{Client: utils.GetAuthCacheClient()}
	userService := &user.DefaultUserService{
		Repo:     userRepo,
		OTP:      utils.NewRedisOTPStore(utils.GetOTPCacheClient()),
		Sessions: authCache,
		SendSMS:  utils.SendSMS,
		TokenTTL: cfg.JWTTTL,
		Logger:   logger.With(zap.String("service", "users")),
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		AuthCache:    authCache,
		TokenTTL:     cfg.JWTTTL,
		Catalog:      handlers.NewCatalogHandler(catalogService, availabilityService),
		Reservations: handlers.NewReservationHandler(reservationService),
		Sessions:     handlers.NewSessionHandler(sessionService),
		Auth:         handlers.NewAuthHandler(userService),
		Admin:        handlers.NewAdminHandler(catalogService, availabilityService, reservationService, userService),
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	utils.StartHealthMonitor(bgCtx, 30*time.Second, utils.RedisClients(), database.MongoClient)
	cron.StartSlotWarmup(bgCtx, facilities, slots, cfg.SlotWarmupDays, time.Hour, cfg.Location(), logger)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stopBackground()
	reminderWorker.Shutdown()
	if err := taskClient.Close(); err != nil {
		logger.Warn("main: closing task client", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		logger.Warn("main: closing event publisher", zap.Error(err))
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: disconnecting MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
