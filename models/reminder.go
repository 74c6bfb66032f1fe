package models

// ReminderPayload is the asynq payload for a reservation reminder.
type ReminderPayload struct {
	ReservationID string `json:"reservationId"`
	UserID        string `json:"userId"`
	Mobile        string `json:"mobile"`
	FacilityName  string `json:"facilityName"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	Body          string `json:"body"`
}
