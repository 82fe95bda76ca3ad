package model_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	bookingModel "stagebook/internal/domains/booking/model"
	"stagebook/internal/domains/event/model"
)

func TestFromBooking(t *testing.T) {
	fee := int64(5000)
	eventDate := time.Date(2026, 4, 10, 20, 0, 0, 0, time.UTC)
	booking := bookingModel.Booking{
		ID:               "booking-1",
		SenderID:         "organizer",
		ReceiverID:       "artist",
		Status:           bookingModel.StatusUpcoming,
		Title:            "Jazz Night",
		Venue:            "Blue Room",
		EventDate:        &eventDate,
		TicketPrice:      1500,
		Fee:              &fee,
		PersonalMessage:  "secret",
		PublicVisibility: bookingModel.Visibility{bookingModel.FieldNameTitle: true, bookingModel.FieldNameTicketPrice: false},
	}

	event := model.FromBooking("event-1", booking, "https://stagebook.test/artists/artist", "organizer", eventDate)

	assert.Equal(t, "booking-1", event.SourceBookingID)
	assert.Equal(t, "artist", event.ArtistID)
	assert.Equal(t, "Jazz Night", *event.Title)
	assert.Nil(t, event.TicketPrice)
	assert.Nil(t, event.Venue)
	assert.Nil(t, event.EventDate)
	assert.Equal(t, "https://stagebook.test/artists/artist", event.PortfolioURL)
}

func TestPublicEventHasNoPrivateColumns(t *testing.T) {
	private := []string{"fee", "door_percentage", "pricing_mode", "personal_message", "tech_spec", "hospitality_rider", "sender_contact", "receiver_contact"}

	typ := reflect.TypeOf(model.PublicEvent{})
	for i := range typ.NumField() {
		assert.NotContains(t, private, typ.Field(i).Tag.Get("db"))
	}
}
