package model

import (
	"stagebook/shared/constant"
	"stagebook/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                    = "id"
	FieldSenderID              = "sender_id"
	FieldReceiverID            = "receiver_id"
	FieldStatus                = "status"
	FieldTitle                 = "title"
	FieldDescription           = "description"
	FieldEventDate             = "event_date"
	FieldVenue                 = "venue"
	FieldAddress               = "address"
	FieldAudienceEstimate      = "audience_estimate"
	FieldTicketPrice           = "ticket_price"
	FieldPricingMode           = "pricing_mode"
	FieldFee                   = "fee"
	FieldDoorPercentage        = "door_percentage"
	FieldTechSpec              = "tech_spec"
	FieldHospitalityRider      = "hospitality_rider"
	FieldPersonalMessage       = "personal_message"
	FieldConceptID             = "concept_id"
	FieldSenderConfirmed       = "sender_confirmed"
	FieldReceiverConfirmed     = "receiver_confirmed"
	FieldPublicVisibility      = "public_visibility"
	FieldIsPublicAfterApproval = "is_public_after_approval"
	FieldAgreementSummaries    = "agreement_summaries"
	FieldCancellationReason    = "cancellation_reason"
	FieldAllowedAt             = "allowed_at"
	FieldVersion               = "version"

	// ArgExpectedVersion keeps the compare-and-swap filter apart from the version being set.
	ArgExpectedVersion = "expected_version"
)

// SortableFields are the columns a party's booking list may be ordered by.
var SortableFields = []string{constant.FieldCreatedAt, constant.FieldModifiedAt, FieldEventDate, FieldStatus}

type Booking struct {
	ID                    string             `db:"id"`
	SenderID              string             `db:"sender_id"`
	ReceiverID            string             `db:"receiver_id"`
	Status                Status             `db:"status"`
	Title                 string             `db:"title"`
	Description           string             `db:"description"`
	EventDate             *time.Time         `db:"event_date"`
	Venue                 string             `db:"venue"`
	Address               string             `db:"address"`
	AudienceEstimate      int                `db:"audience_estimate"`
	TicketPrice           int64              `db:"ticket_price"`
	PricingMode           PricingMode        `db:"pricing_mode"`
	Fee                   *int64             `db:"fee"`
	DoorPercentage        *float64           `db:"door_percentage"`
	TechSpec              string             `db:"tech_spec"`
	HospitalityRider      string             `db:"hospitality_rider"`
	PersonalMessage       string             `db:"personal_message"`
	ConceptID             *string            `db:"concept_id"`
	SenderConfirmed       bool               `db:"sender_confirmed"`
	ReceiverConfirmed     bool               `db:"receiver_confirmed"`
	PublicVisibility      Visibility         `db:"public_visibility"`
	IsPublicAfterApproval bool               `db:"is_public_after_approval"`
	AgreementSummaries    AgreementSummaries `db:"agreement_summaries"`
	SenderContact         ContactInfo        `db:"sender_contact"`
	ReceiverContact       ContactInfo        `db:"receiver_contact"`
	CancellationReason    *string            `db:"cancellation_reason"`
	AllowedAt             *time.Time         `db:"allowed_at"`
	Version               int                `db:"version"`
	model.Metadata
}

// PartyOf reports which side of the booking actor is on.
func (b *Booking) PartyOf(actor string) (Party, bool) {
	switch {
	case actor == constant.Empty:
		return "", false
	case actor == b.SenderID:
		return PartySender, true
	case actor == b.ReceiverID:
		return PartyReceiver, true
	default:
		return "", false
	}
}

func (b *Booking) IsParty(actor string) bool {
	_, ok := b.PartyOf(actor)

	return ok
}

func (b *Booking) Pricing() Pricing {
	return Pricing{Mode: b.PricingMode, Fee: b.Fee, DoorPercentage: b.DoorPercentage}
}

func (b *Booking) setPricing(p Pricing) {
	b.PricingMode = p.Mode
	b.Fee = p.Fee
	b.DoorPercentage = p.DoorPercentage
}

func (b *Booking) touch(actor string, now time.Time) {
	b.ModifiedAt = now
	b.ModifiedBy = actor
}

// MutableColumns lists every column a state change may write. The caller bumps the version.
func (b *Booking) MutableColumns() map[string]any {
	return map[string]any{
		FieldStatus:                b.Status,
		FieldTitle:                 b.Title,
		FieldDescription:           b.Description,
		FieldEventDate:             b.EventDate,
		FieldVenue:                 b.Venue,
		FieldAddress:               b.Address,
		FieldAudienceEstimate:      b.AudienceEstimate,
		FieldTicketPrice:           b.TicketPrice,
		FieldPricingMode:           b.PricingMode,
		FieldFee:                   b.Fee,
		FieldDoorPercentage:        b.DoorPercentage,
		FieldTechSpec:              b.TechSpec,
		FieldHospitalityRider:      b.HospitalityRider,
		FieldPersonalMessage:       b.PersonalMessage,
		FieldSenderConfirmed:       b.SenderConfirmed,
		FieldReceiverConfirmed:     b.ReceiverConfirmed,
		FieldPublicVisibility:      b.PublicVisibility,
		FieldIsPublicAfterApproval: b.IsPublicAfterApproval,
		FieldAgreementSummaries:    b.AgreementSummaries,
		FieldCancellationReason:    b.CancellationReason,
		FieldAllowedAt:             b.AllowedAt,
		constant.FieldModifiedAt:   b.ModifiedAt,
		constant.FieldModifiedBy:   b.ModifiedBy,
	}
}
