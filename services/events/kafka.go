package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turfacademy/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher writes events keyed by reservation id, so every event of a
// reservation lands on the same partition.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		logger: logger.With(zap.String("publisher", "kafka")),
	}, nil
}

func (p *KafkaPublisher) PublishReservationConfirmed(ctx context.Context, reservation models.Reservation) error {
	body, err := marshalEvent(reservation)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(reservation.ID),
		Value: body,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(TypeReservationConfirmed)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	p.logger.Debug("Reservation event published", zap.String("reservationID", reservation.ID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
