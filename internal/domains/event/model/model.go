package model

import (
	bookingModel "stagebook/internal/domains/booking/model"
	"time"
)

const (
	TableName  = "public_events"
	EntityName = "public_event"

	FieldID              = "id"
	FieldSourceBookingID = "source_booking_id"
	FieldArtistID        = "artist_id"
	FieldEventDate       = "event_date"
	FieldPublishedAt     = "published_at"
)

// SortableFields are the columns a listing may be ordered by.
var SortableFields = []string{FieldPublishedAt, FieldEventDate}

// PublicEvent is the listing derived from a published booking. It never holds pricing,
// contact or message data, and nothing flows back from it into the booking.
type PublicEvent struct {
	ID               string     `db:"id"`
	SourceBookingID  string     `db:"source_booking_id"`
	ArtistID         string     `db:"artist_id"`
	OrganizerID      string     `db:"organizer_id"`
	Title            *string    `db:"title"`
	Description      *string    `db:"description"`
	EventDate        *time.Time `db:"event_date"`
	Venue            *string    `db:"venue"`
	Address          *string    `db:"address"`
	AudienceEstimate *int       `db:"audience_estimate"`
	TicketPrice      *int64     `db:"ticket_price"`
	ConceptID        *string    `db:"concept_id"`
	PortfolioURL     string     `db:"portfolio_url"`
	PublishedBy      string     `db:"published_by"`
	PublishedAt      time.Time  `db:"published_at"`
}

// FromBooking copies the fields both parties marked public.
func FromBooking(id string, booking bookingModel.Booking, portfolioURL, publishedBy string, at time.Time) PublicEvent {
	visibility := booking.PublicVisibility

	event := PublicEvent{
		ID:              id,
		SourceBookingID: booking.ID,
		ArtistID:        booking.ReceiverID,
		OrganizerID:     booking.SenderID,
		PortfolioURL:    portfolioURL,
		PublishedBy:     publishedBy,
		PublishedAt:     at,
	}

	if visibility.IsPublic(bookingModel.FieldNameTitle) {
		event.Title = &booking.Title
	}

	if visibility.IsPublic(bookingModel.FieldNameDescription) {
		event.Description = &booking.Description
	}

	if visibility.IsPublic(bookingModel.FieldNameEventDate) && booking.EventDate != nil {
		eventDate := *booking.EventDate
		event.EventDate = &eventDate
	}

	if visibility.IsPublic(bookingModel.FieldNameVenue) {
		event.Venue = &booking.Venue
	}

	if visibility.IsPublic(bookingModel.FieldNameAddress) {
		event.Address = &booking.Address
	}

	if visibility.IsPublic(bookingModel.FieldNameAudienceEstimate) {
		event.AudienceEstimate = &booking.AudienceEstimate
	}

	if visibility.IsPublic(bookingModel.FieldNameTicketPrice) {
		event.TicketPrice = &booking.TicketPrice
	}

	if visibility.IsPublic(bookingModel.FieldNameConcept) {
		event.ConceptID = booking.ConceptID
	}

	return event
}
