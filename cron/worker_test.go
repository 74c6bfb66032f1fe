package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"turfacademy/models"
	"turfacademy/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleReminderTask(t *testing.T) {
	var gotMobile, gotBody string
	send := func(mobile, message string) error {
		gotMobile, gotBody = mobile, message
		return nil
	}
	payload, err := json.Marshal(models.ReminderPayload{ReservationID: "res-1", Mobile: "9876543210", Body: "Reminder: TurfA at 18:00"})
	require.NoError(t, err)

	handler := handleReminderTask(send, zap.NewNop())
	require.NoError(t, handler(context.Background(), asynq.NewTask(tasks.TypeSendReminder, payload)))
	assert.Equal(t, "9876543210", gotMobile)
	assert.Equal(t, "Reminder: TurfA at 18:00", gotBody)
}

func TestHandleReminderTask_Failures(t *testing.T) {
	failing := func(string, string) error { return errors.New("gateway down") }
	handler := handleReminderTask(failing, zap.NewNop())

	err := handler(context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	payload, _ := json.Marshal(models.ReminderPayload{ReservationID: "res-1", Mobile: "9876543210"})
	assert.EqualError(t, handler(context.Background(), asynq.NewTask(tasks.TypeSendReminder, payload)), "gateway down")

	payload, _ = json.Marshal(models.ReminderPayload{ReservationID: "res-2"})
	assert.NoError(t, handler(context.Background(), asynq.NewTask(tasks.TypeSendReminder, payload)))
}
