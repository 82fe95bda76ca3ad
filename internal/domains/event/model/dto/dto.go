package dto

import (
	"stagebook/internal/domains/event/model"
	"stagebook/shared"
	"stagebook/shared/constant"
	"stagebook/shared/timezone"
)

type PublicEventResponse struct {
	ID               string  `json:"id"`
	SourceBookingID  string  `json:"source_booking_id"`
	ArtistID         string  `json:"artist_id"`
	Title            *string `json:"title,omitempty"`
	Description      *string `json:"description,omitempty"`
	EventDate        *string `json:"event_date,omitempty"`
	Venue            *string `json:"venue,omitempty"`
	Address          *string `json:"address,omitempty"`
	AudienceEstimate *int    `json:"audience_estimate,omitempty"`
	TicketPrice      *int64  `json:"ticket_price,omitempty"`
	ConceptID        *string `json:"concept_id,omitempty"`
	PortfolioURL     string  `json:"portfolio_url"`
	PublishedAt      string  `json:"published_at"`
}

func (r *PublicEventResponse) FromModel(event model.PublicEvent) {
	r.ID = event.ID
	r.SourceBookingID = event.SourceBookingID
	r.ArtistID = event.ArtistID
	r.Title = event.Title
	r.Description = event.Description
	r.Venue = event.Venue
	r.Address = event.Address
	r.AudienceEstimate = event.AudienceEstimate
	r.TicketPrice = event.TicketPrice
	r.ConceptID = event.ConceptID
	r.PortfolioURL = event.PortfolioURL
	r.PublishedAt = timezone.Format(event.PublishedAt, constant.DateFormat)

	if event.EventDate != nil {
		r.EventDate = shared.Pointer(timezone.Format(*event.EventDate, constant.DateFormat))
	}
}

type GetEventsResponse struct {
	Events    []PublicEventResponse `json:"events"`
	TotalPage int                   `json:"total_page"`
	TotalData int                   `json:"total_data"`
}

func (r *GetEventsResponse) FromModels(models []model.PublicEvent, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Events = make([]PublicEventResponse, len(models))
	for i, mod := range models {
		r.Events[i].FromModel(mod)
	}
}
