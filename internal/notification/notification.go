package notification

//go:generate go run go.uber.org/mock/mockgen -source=./notification.go -destination=./mocks/notification_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stagebook/config"
	"stagebook/infras/kafka"
	"stagebook/infras/otel"
	"stagebook/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventBookingRequested EventType = "booking.requested"
	EventBookingAllowed   EventType = "booking.allowed"
	EventBookingUpdated   EventType = "booking.updated"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingApproved  EventType = "booking.approved"
	EventBookingRejected  EventType = "booking.rejected"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingPublished EventType = "booking.published"
	EventBookingCompleted EventType = "booking.completed"
	EventBookingDeleted   EventType = "booking.deleted"
)

// Payload is the message body consumers of the status topic receive.
type Payload struct {
	RecipientID string    `json:"recipient_id"`
	EventType   EventType `json:"event_type"`
	BookingID   string    `json:"booking_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Dispatcher interface {
	Notify(ctx context.Context, partyID string, eventType EventType, bookingID string) error
}

type dispatcherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (d *dispatcherImpl) Notify(ctx context.Context, partyID string, eventType EventType, bookingID string) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelNotificationScopeName, constant.OtelNotificationScopeName+".Notify")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !d.cfg.Booking.NotifyEnabled {
		return nil
	}

	scope.SetAttributes(map[string]any{
		"event_type": string(eventType),
		"booking_id": bookingID,
	})

	err = d.client.SendMessages(ctx, d.cfg.Kafka.StatusTopic, kafka.Message{
		Key: bookingID,
		Value: Payload{
			RecipientID: partyID,
			EventType:   eventType,
			BookingID:   bookingID,
			OccurredAt:  time.Now().UTC(),
		},
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Str("event_type", string(eventType)).Msg("failed to dispatch notification")

		return fmt.Errorf("failed to dispatch notification: %w", err)
	}

	return nil
}
