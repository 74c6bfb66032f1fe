package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"turfacademy/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

var reservation = models.Reservation{
	ID:           "res-1",
	UserID:       "user-1",
	FacilityName: "TurfA",
	Date:         "2025-06-01",
	SlotTimes:    []string{"18:00", "19:00"},
	Participant:  models.Participant{ParentName: "A", Mobile: "9999999999", PlayerName: "B", Age: "12"},
}

func newScheduler(now time.Time) (*AsynqReminderScheduler, *MockEnqueuer) {
	client := new(MockEnqueuer)
	s := NewReminderScheduler(client, 2*time.Hour, time.UTC, zap.NewNop())
	s.Now = func() time.Time { return now }
	return s, client
}

func TestScheduleReservationReminder(t *testing.T) {
	ctx := context.Background()
	s, client := newScheduler(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))

	var queued *asynq.Task
	client.On("EnqueueContext", ctx, mock.AnythingOfType("*asynq.Task"), mock.Anything).
		Run(func(args mock.Arguments) { queued = args.Get(1).(*asynq.Task) }).
		Return(&asynq.TaskInfo{ID: "reminder:res-1"}, nil)

	require.NoError(t, s.ScheduleReservationReminder(ctx, reservation))
	require.NotNil(t, queued)
	assert.Equal(t, TypeSendReminder, queued.Type())

	var p models.ReminderPayload
	require.NoError(t, json.Unmarshal(queued.Payload(), &p))
	assert.Equal(t, "res-1", p.ReservationID)
	assert.Equal(t, "18:00", p.StartTime)
	assert.Equal(t, "9999999999", p.Mobile)
	assert.Contains(t, p.Body, "TurfA")
	client.AssertExpectations(t)
}

func TestScheduleReservationReminder_SlotStarted(t *testing.T) {
	s, client := newScheduler(time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC))
	require.NoError(t, s.ScheduleReservationReminder(context.Background(), reservation))
	client.AssertNotCalled(t, "EnqueueContext", mock.Anything, mock.Anything, mock.Anything)
}

func TestScheduleReservationReminder_DuplicateIsIgnored(t *testing.T) {
	ctx := context.Background()
	s, client := newScheduler(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	client.On("EnqueueContext", ctx, mock.Anything, mock.Anything).Return(nil, asynq.ErrTaskIDConflict)

	assert.NoError(t, s.ScheduleReservationReminder(ctx, reservation))
}

func TestSlotStart(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	got, err := SlotStart("2025-06-01", "18:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC), got.UTC())

	_, err = SlotStart("2025-06-01", "6pm", loc)
	assert.Error(t, err)
}
