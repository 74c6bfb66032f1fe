// Package events publishes reservation domain events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"turfacademy/config"
	"turfacademy/models"

	"go.uber.org/zap"
)

const TypeReservationConfirmed = "reservation.confirmed"

// ReservationConfirmed is the payload of the reservation.confirmed event.
type ReservationConfirmed struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservationId"`
	UserID        string    `json:"userId"`
	SportID       string    `json:"sportId"`
	FacilityID    string    `json:"facilityId"`
	FacilityName  string    `json:"facilityName"`
	Date          string    `json:"date"`
	SlotTimes     []string  `json:"slotTimes"`
	Mobile        string    `json:"mobile"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewReservationConfirmed(r models.Reservation) ReservationConfirmed {
	return ReservationConfirmed{
		Type:          TypeReservationConfirmed,
		ReservationID: r.ID,
		UserID:        r.UserID,
		SportID:       r.SportID,
		FacilityID:    r.FacilityID,
		FacilityName:  r.FacilityName,
		Date:          r.Date,
		SlotTimes:     r.SlotTimes,
		Mobile:        r.Participant.Mobile,
		Amount:        r.Amount,
		Currency:      r.Currency,
		OccurredAt:    time.Now().UTC(),
	}
}

// Publisher delivers reservation events. Callers treat failures as non fatal.
type Publisher interface {
	PublishReservationConfirmed(ctx context.Context, reservation models.Reservation) error
	Close() error
}

// NewPublisher picks the broker named by EVENT_BROKER. An empty value logs
// events instead of sending them.
func NewPublisher(cfg config.Config, logger *zap.Logger) (Publisher, error) {
	topic := cfg.ReservationEventsTopic
	if topic == "" {
		topic = TypeReservationConfirmed
	}
	switch strings.ToLower(strings.TrimSpace(cfg.EventBroker)) {
	case "rabbitmq", "amqp":
		return NewRabbitPublisher(cfg.RabbitMQURL, topic, logger)
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokerList(), topic, logger)
	case "", "log", "none":
		return NewLogPublisher(logger), nil
	default:
		return nil, fmt.Errorf("unknown event broker %q", cfg.EventBroker)
	}
}

func marshalEvent(reservation models.Reservation) ([]byte, error) {
	body, err := json.Marshal(NewReservationConfirmed(reservation))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reservation event: %w", err)
	}
	return body, nil
}

// LogPublisher writes events to the log only.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With(zap.String("publisher", "log"))}
}

func (p *LogPublisher) PublishReservationConfirmed(_ context.Context, reservation models.Reservation) error {
	body, err := marshalEvent(reservation)
	if err != nil {
		return err
	}
	p.logger.Info("Reservation event", zap.String("type", TypeReservationConfirmed), zap.ByteString("event", body))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
