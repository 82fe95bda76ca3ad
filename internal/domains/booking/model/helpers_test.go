package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stagebook/internal/domains/booking/model"
)

const (
	sender   = "organizer-a"
	receiver = "artist-b"
	stranger = "viewer-c"
)

var baseTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newBooking(t *testing.T) model.Booking {
	t.Helper()

	eventDate := time.Date(2026, 4, 10, 20, 0, 0, 0, time.UTC)

	booking, err := model.NewBooking(model.Draft{
		ID:               "booking-1",
		SenderID:         sender,
		ReceiverID:       receiver,
		Title:            "Jazz Night",
		Description:      "Quartet evening",
		EventDate:        &eventDate,
		Venue:            "Blue Room",
		Address:          "1 Main St",
		AudienceEstimate: 120,
		TicketPrice:      1500,
		Pricing:          model.FixedFee(5000),
		TechSpec:         "2 mics",
		HospitalityRider: "water",
		PersonalMessage:  "we love your work",
		SenderContact:    model.ContactInfo{Name: "A", Email: "a@example.com"},
		ReceiverContact:  model.ContactInfo{Name: "B", Email: "b@example.com"},
	}, baseTime)
	require.NoError(t, err)

	return booking
}

func bookingInStatus(t *testing.T, status model.Status) model.Booking {
	t.Helper()

	booking := newBooking(t)

	switch status {
	case model.StatusPending:
	case model.StatusAllowed:
		require.NoError(t, booking.Allow(receiver, baseTime))
	case model.StatusApprovedBySender:
		booking = bookingInStatus(t, model.StatusAllowed)
		confirm(t, &booking, sender, map[string]bool{"title": true})
	case model.StatusApprovedByReceiver:
		booking = bookingInStatus(t, model.StatusAllowed)
		confirm(t, &booking, receiver, map[string]bool{"title": true})
	case model.StatusApprovedByBoth:
		booking = bookingInStatus(t, model.StatusApprovedBySender)
		confirm(t, &booking, receiver, map[string]bool{"title": true})
	case model.StatusUpcoming:
		booking = bookingInStatus(t, model.StatusApprovedByBoth)
		require.NoError(t, booking.Publish(sender, baseTime))
	case model.StatusCompleted:
		booking = bookingInStatus(t, model.StatusUpcoming)
		require.NoError(t, booking.Complete("system", true, baseTime.AddDate(0, 3, 0)))
	case model.StatusCancelled:
		require.NoError(t, booking.Cancel(sender, "plans changed", baseTime))
	default:
		t.Fatalf("no fixture for status %s", status)
	}

	require.Equal(t, status, booking.Status)

	return booking
}

func confirm(t *testing.T, booking *model.Booking, actor string, visibility map[string]bool) {
	t.Helper()

	_, err := booking.Confirm(actor, model.ConfirmInput{Visibility: visibility, Acknowledged: true}, baseTime)
	require.NoError(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
