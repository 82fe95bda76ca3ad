package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

type Party string

const (
	PartySender   Party = "sender"
	PartyReceiver Party = "receiver"
)

// AgreementSummary is the snapshot a party acknowledged when confirming.
type AgreementSummary struct {
	Party            Party           `json:"party"`
	ActorID          string          `json:"actor_id"`
	ConfirmedAt      time.Time       `json:"confirmed_at"`
	Status           Status          `json:"status"`
	Title            string          `json:"title"`
	EventDate        *time.Time      `json:"event_date,omitempty"`
	Venue            string          `json:"venue"`
	Address          string          `json:"address"`
	AudienceEstimate int             `json:"audience_estimate"`
	TicketPrice      int64           `json:"ticket_price"`
	PricingMode      PricingMode     `json:"pricing_mode"`
	Fee              *int64          `json:"fee,omitempty"`
	DoorPercentage   *float64        `json:"door_percentage,omitempty"`
	Visibility       map[string]bool `json:"visibility"`
	PublicFields     []string        `json:"public_fields"`
	PrivateFields    []string        `json:"private_fields"`
}

type AgreementSummaries []AgreementSummary

func (a AgreementSummaries) Value() (driver.Value, error) {
	if a == nil {
		return jsonValue([]AgreementSummary{})
	}

	return jsonValue([]AgreementSummary(a))
}

func (a *AgreementSummaries) Scan(src any) error {
	return scanJSON(src, (*[]AgreementSummary)(a))
}

// ConfirmInput carries a party's confirmation. Visibility keys are field names as submitted.
type ConfirmInput struct {
	Visibility   map[string]bool
	Acknowledged bool
}

// Confirm records actor's approval of the current terms together with their visibility
// settings and returns the summary the actor acknowledged.
func (b *Booking) Confirm(actor string, input ConfirmInput, now time.Time) (AgreementSummary, error) {
	party, ok := b.PartyOf(actor)
	if !ok {
		return AgreementSummary{}, ErrUnauthorized
	}

	if !input.Acknowledged {
		return AgreementSummary{}, fmt.Errorf("%w: agreement summary must be acknowledged", ErrValidation)
	}

	if b.Status.IsTerminal() {
		return AgreementSummary{}, fmt.Errorf("%w: booking is %s", ErrInvalidStatus, b.Status)
	}

	if b.confirmedBy(party) {
		return AgreementSummary{}, ErrAlreadyConfirmed
	}

	if !b.Status.IsConfirmable() {
		return AgreementSummary{}, fmt.Errorf("%w: booking is %s", ErrInvalidStatus, b.Status)
	}

	settings, err := ParseVisibility(input.Visibility)
	if err != nil {
		return AgreementSummary{}, err
	}

	senderConfirmed, receiverConfirmed := b.SenderConfirmed, b.ReceiverConfirmed
	if party == PartySender {
		senderConfirmed = true
	} else {
		receiverConfirmed = true
	}

	next, err := Transition(b.Status, statusFromFlags(senderConfirmed, receiverConfirmed))
	if err != nil {
		return AgreementSummary{}, err
	}

	b.SenderConfirmed = senderConfirmed
	b.ReceiverConfirmed = receiverConfirmed
	b.Status = next
	b.PublicVisibility = b.PublicVisibility.Merge(settings)
	b.IsPublicAfterApproval = b.PublicVisibility.AnyPublic()

	summary := b.summarize(party, actor, settings, now)
	b.AgreementSummaries = append(b.AgreementSummaries, summary)
	b.touch(actor, now)

	return summary, nil
}

func (b *Booking) confirmedBy(party Party) bool {
	if party == PartySender {
		return b.SenderConfirmed
	}

	return b.ReceiverConfirmed
}

func (b *Booking) summarize(party Party, actor string, settings Visibility, now time.Time) AgreementSummary {
	return AgreementSummary{
		Party:            party,
		ActorID:          actor,
		ConfirmedAt:      now,
		Status:           b.Status,
		Title:            b.Title,
		EventDate:        b.EventDate,
		Venue:            b.Venue,
		Address:          b.Address,
		AudienceEstimate: b.AudienceEstimate,
		TicketPrice:      b.TicketPrice,
		PricingMode:      b.PricingMode,
		Fee:              b.Fee,
		DoorPercentage:   b.DoorPercentage,
		Visibility:       settings.ToMap(),
		PublicFields:     b.PublicVisibility.PublicFieldNames(),
		PrivateFields:    privateFieldNames(b.PublicVisibility),
	}
}

// privateFieldNames lists always-private fields followed by shareable fields not shared.
func privateFieldNames(v Visibility) []string {
	names := []string{}
	for _, field := range PrivateFields() {
		names = append(names, string(field))
	}

	for _, field := range shareableFields {
		if !v[field] {
			names = append(names, string(field))
		}
	}

	return names
}

// resetConfirmations clears all approval state after the terms changed.
func (b *Booking) resetConfirmations() {
	b.SenderConfirmed = false
	b.ReceiverConfirmed = false
	b.PublicVisibility = Visibility{}
	b.IsPublicAfterApproval = false
	b.AgreementSummaries = AgreementSummaries{}
}
