package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stagebook/config"
	"stagebook/infras/kafka"
	kafkaMocks "stagebook/infras/kafka/mocks"
	otelMocks "stagebook/infras/otel/mocks"
	"stagebook/internal/notification"
)

func TestDispatcher_Notify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.StatusTopic = "booking.status"
	cfg.Booking.NotifyEnabled = true

	dispatcher := notification.New(mockClient, cfg, otelMocks.NewOtel())

	t.Run("message keyed by booking", func(t *testing.T) {
		mockClient.EXPECT().
			SendMessages(gomock.Any(), "booking.status", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, "b1", messages[0].Key)

				payload, ok := messages[0].Value.(notification.Payload)
				require.True(t, ok)
				assert.Equal(t, "artist-b", payload.RecipientID)
				assert.Equal(t, notification.EventBookingRequested, payload.EventType)

				return nil
			})

		err := dispatcher.Notify(context.Background(), "artist-b", notification.EventBookingRequested, "b1")
		assert.NoError(t, err)
	})

	t.Run("broker failure surfaces", func(t *testing.T) {
		mockClient.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		err := dispatcher.Notify(context.Background(), "artist-b", notification.EventBookingCancelled, "b1")
		assert.Error(t, err)
	})

	t.Run("disabled", func(t *testing.T) {
		disabled := &config.Config{}

		err := notification.New(mockClient, disabled, otelMocks.NewOtel()).
			Notify(context.Background(), "artist-b", notification.EventBookingCancelled, "b1")
		assert.NoError(t, err)
	})
}
