package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"turfacademy/config"
	"turfacademy/models"
	"turfacademy/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// SMSSender delivers a text message to a mobile number.
type SMSSender func(mobile, message string) error

// InitReminderWorker runs the reminder worker in the background. The returned
// server is shut down by the caller.
func InitReminderWorker(send SMSSender, logger *zap.Logger) *asynq.Server {
	logger = logger.With(zap.String("worker", "reminders"))
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(send, logger))

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Start(mux); err != nil {
				logger.Error("Reminder worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err),
				)
				if attempts == maxAttempts {
					logger.Error("Reminder worker gave up, reminders will not be sent")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
	return srv
}

func handleReminderTask(send SMSSender, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			// A malformed payload will never succeed.
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if p.Mobile == "" {
			logger.Warn("Reminder without a mobile number", zap.String("reservationID", p.ReservationID))
			return nil
		}

		logger.Info("Sending reminder",
			zap.String("reservationID", p.ReservationID),
			zap.String("date", p.Date),
			zap.String("start", p.StartTime),
		)
		if err := send(p.Mobile, p.Body); err != nil {
			logger.Error("Failed to send reminder", zap.String("reservationID", p.ReservationID), zap.Error(err))
			return err
		}
		return nil
	}
}
