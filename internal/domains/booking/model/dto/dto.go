package dto

import (
	"fmt"
	"stagebook/internal/domains/booking/model"
	"stagebook/shared"
	"stagebook/shared/constant"
	gDto "stagebook/shared/dto"
	"stagebook/shared/timezone"
	"time"
)

type CreateBookingRequest struct {
	ReceiverID       string   `json:"receiver_id"       validate:"required"`
	ConceptID        *string  `json:"concept_id"        validate:"omitempty,uuid"`
	Title            *string  `json:"title"             validate:"omitempty,max=200"`
	Description      *string  `json:"description"       validate:"omitempty,max=5000"`
	EventDate        *string  `json:"event_date"        validate:"omitempty,rfc3339"`
	Venue            *string  `json:"venue"             validate:"omitempty,max=200"`
	Address          *string  `json:"address"           validate:"omitempty,max=500"`
	AudienceEstimate *int     `json:"audience_estimate" validate:"omitempty,min=0"`
	TicketPrice      *int64   `json:"ticket_price"      validate:"omitempty,min=0"`
	PricingMode      string   `json:"pricing_mode"      validate:"omitempty,oneof=fixed door_percentage by_agreement"`
	Fee              *int64   `json:"fee"               validate:"omitempty,min=0"`
	DoorPercentage   *float64 `json:"door_percentage"   validate:"omitempty,gt=0,lte=100"`
	TechSpec         *string  `json:"tech_spec"`
	HospitalityRider *string  `json:"hospitality_rider"`
	PersonalMessage  *string  `json:"personal_message"  validate:"omitempty,max=2000"`
}

func (r *CreateBookingRequest) hasPricing() bool {
	return r.PricingMode != constant.Empty || r.Fee != nil || r.DoorPercentage != nil
}

// ApplyTo overlays the explicitly submitted values on draft, which may already be seeded
// from a concept.
func (r *CreateBookingRequest) ApplyTo(draft *model.Draft) error {
	overlay(&draft.Title, r.Title)
	overlay(&draft.Description, r.Description)
	overlay(&draft.Venue, r.Venue)
	overlay(&draft.Address, r.Address)
	overlay(&draft.AudienceEstimate, r.AudienceEstimate)
	overlay(&draft.TicketPrice, r.TicketPrice)
	overlay(&draft.TechSpec, r.TechSpec)
	overlay(&draft.HospitalityRider, r.HospitalityRider)
	overlay(&draft.PersonalMessage, r.PersonalMessage)

	if r.ConceptID != nil {
		draft.ConceptID = r.ConceptID
	}

	if r.EventDate != nil {
		eventDate, err := parseEventDate(*r.EventDate)
		if err != nil {
			return err
		}

		draft.EventDate = &eventDate
	}

	if r.hasPricing() {
		pricing, err := model.NewPricing(r.PricingMode, r.Fee, r.DoorPercentage)
		if err != nil {
			return err
		}

		draft.Pricing = pricing
	}

	if draft.Pricing.Mode == constant.Empty {
		draft.Pricing = model.ByAgreement()
	}

	return nil
}

type UpdateBookingRequest struct {
	Title            *string  `json:"title"             validate:"omitempty,max=200"`
	Description      *string  `json:"description"       validate:"omitempty,max=5000"`
	EventDate        *string  `json:"event_date"        validate:"omitempty,rfc3339"`
	Venue            *string  `json:"venue"             validate:"omitempty,max=200"`
	Address          *string  `json:"address"           validate:"omitempty,max=500"`
	AudienceEstimate *int     `json:"audience_estimate" validate:"omitempty,min=0"`
	TicketPrice      *int64   `json:"ticket_price"      validate:"omitempty,min=0"`
	PricingMode      string   `json:"pricing_mode"      validate:"omitempty,oneof=fixed door_percentage by_agreement"`
	Fee              *int64   `json:"fee"               validate:"omitempty,min=0"`
	DoorPercentage   *float64 `json:"door_percentage"   validate:"omitempty,gt=0,lte=100"`
	TechSpec         *string  `json:"tech_spec"`
	HospitalityRider *string  `json:"hospitality_rider"`
	PersonalMessage  *string  `json:"personal_message"  validate:"omitempty,max=2000"`
}

func (r *UpdateBookingRequest) ToChanges() (model.Changes, error) {
	changes := model.Changes{
		Title:            r.Title,
		Description:      r.Description,
		Venue:            r.Venue,
		Address:          r.Address,
		AudienceEstimate: r.AudienceEstimate,
		TicketPrice:      r.TicketPrice,
		TechSpec:         r.TechSpec,
		HospitalityRider: r.HospitalityRider,
		PersonalMessage:  r.PersonalMessage,
	}

	if r.EventDate != nil {
		eventDate, err := parseEventDate(*r.EventDate)
		if err != nil {
			return model.Changes{}, err
		}

		changes.EventDate = &eventDate
	}

	if r.PricingMode != constant.Empty || r.Fee != nil || r.DoorPercentage != nil {
		pricing, err := model.NewPricing(r.PricingMode, r.Fee, r.DoorPercentage)
		if err != nil {
			return model.Changes{}, err
		}

		changes.Pricing = &pricing
	}

	return changes, nil
}

type ConfirmBookingRequest struct {
	PublicFields map[string]bool `json:"public_fields"`
	Acknowledged bool            `json:"acknowledged"`
}

func (r *ConfirmBookingRequest) ToInput() model.ConfirmInput {
	return model.ConfirmInput{
		Visibility:   r.PublicFields,
		Acknowledged: r.Acknowledged,
	}
}

type ReasonRequest struct {
	Reason string `json:"reason" validate:"required,max=1000"`
}

type ContactResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r *ContactResponse) FromModel(contact model.ContactInfo) {
	r.Name = contact.Name
	r.Email = contact.Email
	r.Phone = contact.Phone
}

type ContactsResponse struct {
	Sender   ContactResponse `json:"sender"`
	Receiver ContactResponse `json:"receiver"`
}

type AgreementSummaryResponse struct {
	Party         string   `json:"party"`
	ActorID       string   `json:"actor_id"`
	ConfirmedAt   string   `json:"confirmed_at"`
	Status        string   `json:"status"`
	PublicFields  []string `json:"public_fields"`
	PrivateFields []string `json:"private_fields"`
}

func (r *AgreementSummaryResponse) FromModel(summary model.AgreementSummary) {
	r.Party = string(summary.Party)
	r.ActorID = summary.ActorID
	r.ConfirmedAt = timezone.Format(summary.ConfirmedAt, constant.DateFormat)
	r.Status = summary.Status.String()
	r.PublicFields = summary.PublicFields
	r.PrivateFields = summary.PrivateFields
}

// BookingResponse is a booking as seen by one viewer. Fields the viewer may not read stay nil.
type BookingResponse struct {
	ID                 string                     `json:"id"`
	Status             string                     `json:"status"`
	VisibleFields      []string                   `json:"visible_fields"`
	SenderID           *string                    `json:"sender_id,omitempty"`
	ReceiverID         *string                    `json:"receiver_id,omitempty"`
	Title              *string                    `json:"title,omitempty"`
	Description        *string                    `json:"description,omitempty"`
	EventDate          *string                    `json:"event_date,omitempty"`
	Venue              *string                    `json:"venue,omitempty"`
	Address            *string                    `json:"address,omitempty"`
	AudienceEstimate   *int                       `json:"audience_estimate,omitempty"`
	TicketPrice        *int64                     `json:"ticket_price,omitempty"`
	ConceptID          *string                    `json:"concept_id,omitempty"`
	PricingMode        *string                    `json:"pricing_mode,omitempty"`
	Fee                *int64                     `json:"fee,omitempty"`
	DoorPercentage     *float64                   `json:"door_percentage,omitempty"`
	TechSpec           *string                    `json:"tech_spec,omitempty"`
	HospitalityRider   *string                    `json:"hospitality_rider,omitempty"`
	PersonalMessage    *string                    `json:"personal_message,omitempty"`
	SenderConfirmed    *bool                      `json:"sender_confirmed,omitempty"`
	ReceiverConfirmed  *bool                      `json:"receiver_confirmed,omitempty"`
	PublicVisibility   map[string]bool            `json:"public_visibility,omitempty"`
	IsPublic           *bool                      `json:"is_public_after_approval,omitempty"`
	AgreementSummaries []AgreementSummaryResponse `json:"agreement_summaries,omitempty"`
	CancellationReason *string                    `json:"cancellation_reason,omitempty"`
	Contacts           *ContactsResponse          `json:"contacts,omitempty"`
	Version            *int                       `json:"version,omitempty"`
	*gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking, viewer string) {
	view := booking.Disclose(viewer)

	r.ID = booking.ID
	r.Status = booking.Status.String()
	r.VisibleFields = view.Fields

	r.Title = gate(view, string(model.FieldNameTitle), booking.Title)
	r.Description = gate(view, string(model.FieldNameDescription), booking.Description)
	r.Venue = gate(view, string(model.FieldNameVenue), booking.Venue)
	r.Address = gate(view, string(model.FieldNameAddress), booking.Address)
	r.AudienceEstimate = gate(view, string(model.FieldNameAudienceEstimate), booking.AudienceEstimate)
	r.TicketPrice = gate(view, string(model.FieldNameTicketPrice), booking.TicketPrice)

	if booking.EventDate != nil {
		r.EventDate = gate(view, string(model.FieldNameEventDate), timezone.Format(*booking.EventDate, constant.DateFormat))
	}

	if booking.ConceptID != nil {
		r.ConceptID = gate(view, string(model.FieldNameConcept), *booking.ConceptID)
	}

	if !view.IsParty {
		return
	}

	r.SenderID = &booking.SenderID
	r.ReceiverID = &booking.ReceiverID
	r.PricingMode = shared.Pointer(string(booking.PricingMode))
	r.Fee = booking.Fee
	r.DoorPercentage = booking.DoorPercentage
	r.TechSpec = &booking.TechSpec
	r.HospitalityRider = &booking.HospitalityRider
	r.PersonalMessage = &booking.PersonalMessage
	r.SenderConfirmed = &booking.SenderConfirmed
	r.ReceiverConfirmed = &booking.ReceiverConfirmed
	r.PublicVisibility = booking.PublicVisibility.ToMap()
	r.IsPublic = &booking.IsPublicAfterApproval
	r.CancellationReason = booking.CancellationReason
	r.Version = &booking.Version

	r.AgreementSummaries = make([]AgreementSummaryResponse, len(booking.AgreementSummaries))
	for i, summary := range booking.AgreementSummaries {
		r.AgreementSummaries[i].FromModel(summary)
	}

	if view.Contacts != nil {
		r.Contacts = &ContactsResponse{}
		r.Contacts.Sender.FromModel(view.Contacts.Sender)
		r.Contacts.Receiver.FromModel(view.Contacts.Receiver)
	}

	r.Metadata = &gDto.Metadata{}
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, viewer string, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, viewer)
	}
}

type HistoryResponse struct {
	ID                 string  `json:"id"`
	BookingID          string  `json:"booking_id"`
	SenderID           string  `json:"sender_id"`
	ReceiverID         string  `json:"receiver_id"`
	Status             string  `json:"status"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	EventDate          *string `json:"event_date,omitempty"`
	Venue              string  `json:"venue"`
	Address            string  `json:"address"`
	AudienceEstimate   int     `json:"audience_estimate"`
	ConceptID          *string `json:"concept_id,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
	DeletionReason     string  `json:"deletion_reason"`
	DeletedBy          string  `json:"deleted_by"`
	BookedAt           string  `json:"booked_at"`
	DeletedAt          string  `json:"deleted_at"`
}

func (r *HistoryResponse) FromModel(history model.History) {
	r.ID = history.ID
	r.BookingID = history.BookingID
	r.SenderID = history.SenderID
	r.ReceiverID = history.ReceiverID
	r.Status = history.Status.String()
	r.Title = history.Title
	r.Description = history.Description
	r.Venue = history.Venue
	r.Address = history.Address
	r.AudienceEstimate = history.AudienceEstimate
	r.ConceptID = history.ConceptID
	r.CancellationReason = history.CancellationReason
	r.DeletionReason = history.DeletionReason
	r.DeletedBy = history.DeletedBy
	r.BookedAt = timezone.Format(history.BookedAt, constant.DateFormat)
	r.DeletedAt = timezone.Format(history.DeletedAt, constant.DateFormat)

	if history.EventDate != nil {
		r.EventDate = shared.Pointer(timezone.Format(*history.EventDate, constant.DateFormat))
	}
}

type GetHistoryResponse struct {
	History   []HistoryResponse `json:"history"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetHistoryResponse) FromModels(models []model.History, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.History = make([]HistoryResponse, len(models))
	for i, mod := range models {
		r.History[i].FromModel(mod)
	}
}

func gate[T any](view model.View, field string, value T) *T {
	if !view.Has(field) {
		return nil
	}

	return &value
}

func overlay[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func parseEventDate(value string) (time.Time, error) {
	eventDate, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: event_date must be RFC3339", model.ErrValidation)
	}

	return eventDate, nil
}
