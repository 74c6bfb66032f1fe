package cron

import (
	"context"
	"fmt"
	"time"

	facilityRepo "turfacademy/database/repository/facility"
	"turfacademy/models"

	"go.uber.org/zap"
)

type facilityLister interface {
	List(ctx context.Context, filter facilityRepo.Filter) ([]models.Facility, error)
}

type dayEnsurer interface {
	EnsureDay(ctx context.Context, facility models.Facility, date string) (*models.FacilityDay, error)
}

// StartSlotWarmup materializes the facility days of the next `days` dates for
// every active facility, once at start and then every interval. Days are
// still created lazily on first read; this only moves the work off the
// booking path.
func StartSlotWarmup(ctx context.Context, facilities facilityLister, slots dayEnsurer, days int, interval time.Duration, loc *time.Location, logger *zap.Logger) {
	logger = logger.With(zap.String("worker", "slot-warmup"))
	run := func() {
		runCtx, cancel := context.WithTimeout(ctx, interval/2)
		defer cancel()
		if err := WarmSlots(runCtx, facilities, slots, time.Now().In(loc), days); err != nil {
			logger.Warn("Slot warmup incomplete", zap.Error(err))
		}
	}

	go func() {
		run()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("Slot warmup shutdown signal received")
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}

// WarmSlots ensures the facility days from `from` for `days` dates. It keeps
// going after a failed day and reports the first failure.
func WarmSlots(ctx context.Context, facilities facilityLister, slots dayEnsurer, from time.Time, days int) error {
	list, err := facilities.List(ctx, facilityRepo.Filter{ActiveOnly: true})
	if err != nil {
		return fmt.Errorf("list facilities: %w", err)
	}

	var firstErr error
	for _, f := range list {
		for i := 0; i < days; i++ {
			date := from.AddDate(0, 0, i).Format(models.DateLayout)
			if _, err := slots.EnsureDay(ctx, f, date); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("facility %s on %s: %w", f.ID, date, err)
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return firstErr
}
