package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"turfacademy/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeSendReminder = "reminder:send"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.ReservationID),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// ReminderScheduler queues a reminder ahead of a reservation's first slot.
type ReminderScheduler interface {
	ScheduleReservationReminder(ctx context.Context, reservation models.Reservation) error
}

// TaskEnqueuer is the part of *asynq.Client the scheduler needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type AsynqReminderScheduler struct {
	Client   TaskEnqueuer
	Lead     time.Duration
	Location *time.Location
	Now      func() time.Time
	Logger   *zap.Logger
}

func NewReminderScheduler(client TaskEnqueuer, lead time.Duration, loc *time.Location, logger *zap.Logger) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		Client:   client,
		Lead:     lead,
		Location: loc,
		Now:      time.Now,
		Logger:   logger.With(zap.String("service", "reminders")),
	}
}

func (s *AsynqReminderScheduler) ScheduleReservationReminder(ctx context.Context, reservation models.Reservation) error {
	if len(reservation.SlotTimes) == 0 {
		return errors.New("reservation has no slots")
	}
	start, err := SlotStart(reservation.Date, reservation.SlotTimes[0], s.Location)
	if err != nil {
		return err
	}

	now := s.Now()
	if !start.After(now) {
		s.Logger.Debug("Slot already started, no reminder", zap.String("reservationID", reservation.ID))
		return nil
	}
	fireAt := start.Add(-s.Lead)
	if fireAt.Before(now) {
		fireAt = now
	}

	payload := models.ReminderPayload{
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		Mobile:        reservation.Participant.Mobile,
		FacilityName:  reservation.FacilityName,
		Date:          reservation.Date,
		StartTime:     reservation.SlotTimes[0],
		Body:          ReminderBody(reservation),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}

	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	s.Logger.Info("Reminder scheduled",
		zap.String("reservationID", reservation.ID),
		zap.String("taskID", info.ID),
		zap.Time("fireAt", fireAt),
	)
	return nil
}

// SlotStart resolves a date and "HH:MM" in the academy's timezone.
func SlotStart(date, slotTime string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(models.DateLayout+" 15:04", date+" "+slotTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot start %s %s: %w", date, slotTime, err)
	}
	return t, nil
}

func ReminderBody(r models.Reservation) string {
	return fmt.Sprintf("Reminder: %s is booked for %s on %s at %s. Booking ref %s.",
		r.FacilityName, r.Participant.PlayerName, r.Date, strings.Join(r.SlotTimes, ", "), r.ID)
}
