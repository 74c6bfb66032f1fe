package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	facilityRepo "turfacademy/database/repository/facility"
	reservationRepo "turfacademy/database/repository/reservation"
	slotRepo "turfacademy/database/repository/slot"
	"turfacademy/models"
	"turfacademy/services/events"
	"turfacademy/services/tasks"
	"turfacademy/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationService creates and reads reservations.
type ReservationService interface {
	// Create validates the request and writes the reservation only if every
	// requested slot is still available. A lost race returns *ConflictError.
	Create(ctx context.Context, userID string, req models.ReservationRequest) (*models.Reservation, error)
	// Get returns a reservation. A non-empty userID restricts it to that user.
	Get(ctx context.Context, userID, id string) (*models.Reservation, error)
	ListForUser(ctx context.Context, userID string) ([]models.Reservation, error)
	List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
}

type DefaultReservationService struct {
	Facilities   facilityRepo.FacilityRepository
	Slots        slotRepo.SlotRepository
	Reservations reservationRepo.ReservationRepository
	Events       events.Publisher
	Reminders    tasks.ReminderScheduler
	Currency     string
	Timeout      time.Duration
	Location     *time.Location
	Now          func() time.Time
	Logger       *zap.Logger
}

func (s *DefaultReservationService) Create(ctx context.Context, userID string, req models.ReservationRequest) (*models.Reservation, error) {
	req.Participant = trimParticipant(req.Participant)
	if err := utils.Validate(req); err != nil {
		return nil, err
	}
	times, err := uniqueTimes(req.SlotTimes)
	if err != nil {
		return nil, err
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	facility, err := loadFacility(ctx, s.Facilities, req.FacilityID)
	if err != nil {
		return nil, err
	}
	if !facility.IsActive() {
		return nil, ErrFacilityInactive
	}
	if !facility.Supports(req.SportID) {
		return nil, ErrSportMismatch
	}

	day, err := s.Slots.EnsureDay(ctx, *facility, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}
	for _, t := range times {
		if _, ok := day.Slot(t); !ok {
			return nil, &utils.ValidationError{Fields: map[string]string{
				"slotTimes": fmt.Sprintf("slot %s does not exist for this facility", t),
			}}
		}
	}
	view := models.FacilityDay{Slots: closePastSlots(day.Slots, req.Date, s.now())}
	if taken := view.Unavailable(times); len(taken) > 0 {
		return nil, &ConflictError{Times: taken}
	}

	reservation := &models.Reservation{
		ID:           uuid.New().String(),
		UserID:       userID,
		SportID:      req.SportID,
		FacilityID:   facility.ID,
		FacilityName: facility.Name,
		Date:         req.Date,
		SlotTimes:    times,
		Participant:  req.Participant,
		Amount:       facility.PriceFor(len(times)),
		Currency:     s.currency(),
		Status:       models.ReservationConfirmed,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.Slots.ReserveSlots(ctx, reservation); err != nil {
		var ue *slotRepo.UnavailableError
		if errors.As(err, &ue) {
			s.Logger.Info("Reservation conflict",
				zap.String("facilityID", facility.ID),
				zap.String("date", req.Date),
				zap.Strings("taken", ue.Times),
			)
			return nil, &ConflictError{Times: ue.Times}
		}
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.Logger.Info("Reservation confirmed",
		zap.String("reservationID", reservation.ID),
		zap.String("userID", userID),
		zap.String("facilityID", facility.ID),
		zap.String("date", reservation.Date),
		zap.Strings("slots", reservation.SlotTimes),
		zap.Float64("amount", reservation.Amount),
	)
	s.afterCreate(*reservation)
	return reservation, nil
}

// afterCreate publishes the event and schedules the reminder. Neither may
// fail the reservation that is already committed.
func (s *DefaultReservationService) afterCreate(reservation models.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.Events != nil {
		if err := s.Events.PublishReservationConfirmed(ctx, reservation); err != nil {
			s.Logger.Warn("Failed to publish reservation event", zap.String("reservationID", reservation.ID), zap.Error(err))
		}
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReservationReminder(ctx, reservation); err != nil {
			s.Logger.Warn("Failed to schedule reminder", zap.String("reservationID", reservation.ID), zap.Error(err))
		}
	}
}

func (s *DefaultReservationService) Get(ctx context.Context, userID, id string) (*models.Reservation, error) {
	reservation, err := s.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to load reservation: %w", err)
	}
	if userID != "" && reservation.UserID != userID {
		return nil, ErrReservationNotFound
	}
	return reservation, nil
}

func (s *DefaultReservationService) ListForUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}
	return s.List(ctx, models.ReservationFilter{UserID: userID})
}

func (s *DefaultReservationService) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	if filter.Date != "" {
		if _, err := time.Parse(models.DateLayout, filter.Date); err != nil {
			return nil, ErrInvalidDate
		}
	}
	reservations, err := s.Reservations.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func (s *DefaultReservationService) now() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().In(location(s.Location))
}

func (s *DefaultReservationService) currency() string {
	if s.Currency == "" {
		return "INR"
	}
	return s.Currency
}

func uniqueTimes(times []string) ([]string, error) {
	seen := make(map[string]bool, len(times))
	out := make([]string, 0, len(times))
	for _, t := range times {
		if seen[t] {
			return nil, &utils.ValidationError{Fields: map[string]string{"slotTimes": "slot " + t + " is listed twice"}}
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

func trimParticipant(p models.Participant) models.Participant {
	return models.Participant{
		ParentName: strings.TrimSpace(p.ParentName),
		Mobile:     strings.TrimSpace(p.Mobile),
		PlayerName: strings.TrimSpace(p.PlayerName),
		Age:        strings.TrimSpace(p.Age),
	}
}
