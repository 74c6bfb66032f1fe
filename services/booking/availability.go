package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	facilityRepo "turfacademy/database/repository/facility"
	slotRepo "turfacademy/database/repository/slot"
	"turfacademy/models"

	"go.uber.org/zap"
)

// AvailabilityService answers the availability query for one facility and date.
type AvailabilityService interface {
	GetSlots(ctx context.Context, facilityID, date string) ([]models.Slot, error)
}

// SlotAdmin lets staff take a slot out of sale and put it back.
type SlotAdmin interface {
	SetSlotBlocked(ctx context.Context, facilityID, date, slotTime string, blocked bool, reason string) error
}

type DefaultAvailabilityService struct {
	Facilities facilityRepo.FacilityRepository
	Slots      slotRepo.SlotRepository
	Timeout    time.Duration
	Location   *time.Location
	Now        func() time.Time
	Logger     *zap.Logger
}

func NewAvailabilityService(facilities facilityRepo.FacilityRepository, slots slotRepo.SlotRepository, timeout time.Duration, loc *time.Location, logger *zap.Logger) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Facilities: facilities,
		Slots:      slots,
		Timeout:    timeout,
		Location:   loc,
		Now:        time.Now,
		Logger:     logger.With(zap.String("service", "availability")),
	}
}

func (s *DefaultAvailabilityService) GetSlots(ctx context.Context, facilityID, date string) ([]models.Slot, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	facility, err := loadFacility(ctx, s.Facilities, facilityID)
	if err != nil {
		return nil, err
	}
	if !facility.IsActive() {
		return nil, ErrFacilityInactive
	}

	day, err := s.Slots.EnsureDay(ctx, *facility, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}
	slots := closePastSlots(day.Slots, date, s.Now().In(location(s.Location)))
	s.Logger.Debug("Availability served",
		zap.String("facilityID", facilityID),
		zap.String("date", date),
		zap.Int("slots", len(slots)),
	)
	return slots, nil
}

// closePastSlots reports slots that already started as blocked. The stored
// document is not changed.
func closePastSlots(slots []models.Slot, date string, now time.Time) []models.Slot {
	out := append([]models.Slot(nil), slots...)
	today := now.Format(models.DateLayout)
	switch {
	case date > today:
		return out
	case date < today:
		for i := range out {
			if out[i].IsAvailable() {
				out[i].Status = models.SlotBlocked
			}
		}
		return out
	}
	minute := now.Hour()*60 + now.Minute()
	for i := range out {
		start, err := models.ParseClock(out[i].Time)
		if err == nil && start <= minute && out[i].IsAvailable() {
			out[i].Status = models.SlotBlocked
		}
	}
	return out
}

func loadFacility(ctx context.Context, repo facilityRepo.FacilityRepository, id string) (*models.Facility, error) {
	facility, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilityRepo.ErrFacilityNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to load facility: %w", err)
	}
	return facility, nil
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

func (s *DefaultAvailabilityService) SetSlotBlocked(ctx context.Context, facilityID, date, slotTime string, blocked bool, reason string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	facility, err := loadFacility(ctx, s.Facilities, facilityID)
	if err != nil {
		return err
	}
	// Blocking may be the first touch of this date.
	if _, err := s.Slots.EnsureDay(ctx, *facility, date); err != nil {
		return fmt.Errorf("failed to load slots: %w", err)
	}

	if err := s.Slots.SetBlocked(ctx, facilityID, date, slotTime, blocked, reason); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotBooked):
			return ErrSlotBooked
		}
		return fmt.Errorf("failed to update slot: %w", err)
	}
	s.Logger.Info("Slot block updated",
		zap.String("facilityID", facilityID),
		zap.String("date", date),
		zap.String("time", slotTime),
		zap.Bool("blocked", blocked),
	)
	return nil
}
