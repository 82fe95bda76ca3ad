package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Draft is the initial proposal a sender submits.
type Draft struct {
	ID               string
	SenderID         string
	ReceiverID       string
	Title            string
	Description      string
	EventDate        *time.Time
	Venue            string
	Address          string
	AudienceEstimate int
	TicketPrice      int64
	Pricing          Pricing
	TechSpec         string
	HospitalityRider string
	PersonalMessage  string
	ConceptID        *string
	SenderContact    ContactInfo
	ReceiverContact  ContactInfo
}

func NewBooking(draft Draft, at time.Time) (Booking, error) {
	if draft.SenderID == "" || draft.ReceiverID == "" {
		return Booking{}, fmt.Errorf("%w: sender and receiver are required", ErrValidation)
	}

	if draft.SenderID == draft.ReceiverID {
		return Booking{}, fmt.Errorf("%w: sender and receiver must differ", ErrValidation)
	}

	if strings.TrimSpace(draft.Title) == "" {
		return Booking{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	if draft.AudienceEstimate < 0 || draft.TicketPrice < 0 {
		return Booking{}, fmt.Errorf("%w: audience estimate and ticket price cannot be negative", ErrValidation)
	}

	if err := draft.Pricing.Validate(); err != nil {
		return Booking{}, err
	}

	booking := Booking{
		ID:                 draft.ID,
		SenderID:           draft.SenderID,
		ReceiverID:         draft.ReceiverID,
		Status:             StatusPending,
		Title:              draft.Title,
		Description:        draft.Description,
		EventDate:          draft.EventDate,
		Venue:              draft.Venue,
		Address:            draft.Address,
		AudienceEstimate:   draft.AudienceEstimate,
		TicketPrice:        draft.TicketPrice,
		TechSpec:           draft.TechSpec,
		HospitalityRider:   draft.HospitalityRider,
		PersonalMessage:    draft.PersonalMessage,
		ConceptID:          draft.ConceptID,
		PublicVisibility:   Visibility{},
		AgreementSummaries: AgreementSummaries{},
		SenderContact:      draft.SenderContact,
		ReceiverContact:    draft.ReceiverContact,
		Version:            1,
	}
	booking.setPricing(draft.Pricing)
	booking.CreatedAt = at
	booking.CreatedBy = draft.SenderID
	booking.touch(draft.SenderID, at)

	return booking, nil
}

// Changes is a partial edit of the negotiable terms. Nil means untouched.
type Changes struct {
	Title            *string
	Description      *string
	EventDate        *time.Time
	Venue            *string
	Address          *string
	AudienceEstimate *int
	TicketPrice      *int64
	Pricing          *Pricing
	TechSpec         *string
	HospitalityRider *string
	PersonalMessage  *string
}

func (c Changes) IsEmpty() bool {
	return c == Changes{}
}

// ownerViolation rejects edits to fields owned by the other party.
func (c Changes) ownerViolation(party Party) error {
	if c.PersonalMessage != nil && party != PartySender {
		return fmt.Errorf("%w: only the sender edits the personal message", ErrUnauthorized)
	}

	if (c.TechSpec != nil || c.HospitalityRider != nil) && party != PartyReceiver {
		return fmt.Errorf("%w: only the receiver edits the tech spec and hospitality rider", ErrUnauthorized)
	}

	return nil
}

func (c Changes) validate() error {
	if c.Title != nil && strings.TrimSpace(*c.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}

	if c.AudienceEstimate != nil && *c.AudienceEstimate < 0 {
		return fmt.Errorf("%w: audience estimate cannot be negative", ErrValidation)
	}

	if c.TicketPrice != nil && *c.TicketPrice < 0 {
		return fmt.Errorf("%w: ticket price cannot be negative", ErrValidation)
	}

	if c.Pricing != nil {
		return c.Pricing.Validate()
	}

	return nil
}

// ApplyChanges edits the negotiable terms. A receiver edit on a pending booking implicitly
// allows it. An edit after any approval drops both confirmations and the visibility settings.
func (b *Booking) ApplyChanges(actor string, changes Changes, at time.Time) error {
	party, ok := b.PartyOf(actor)
	if !ok {
		return ErrUnauthorized
	}

	if !b.Status.IsEditable() {
		return fmt.Errorf("%w: booking is %s", ErrInvalidStatus, b.Status)
	}

	if changes.IsEmpty() {
		return fmt.Errorf("%w: no changes submitted", ErrValidation)
	}

	if err := changes.ownerViolation(party); err != nil {
		return err
	}

	if err := changes.validate(); err != nil {
		return err
	}

	next := b.Status

	switch {
	case b.Status == StatusPending && party == PartyReceiver:
		next = StatusAllowed
	case b.Status.IsApproved():
		next = StatusAllowed
	}

	if next != b.Status {
		status, err := Transition(b.Status, next)
		if err != nil {
			return err
		}

		if b.Status.IsApproved() {
			b.resetConfirmations()
		}

		if b.AllowedAt == nil {
			b.AllowedAt = &at
		}

		b.Status = status
	}

	b.apply(changes)
	b.touch(actor, at)

	return nil
}

func (b *Booking) apply(c Changes) {
	if c.Title != nil {
		b.Title = *c.Title
	}

	if c.Description != nil {
		b.Description = *c.Description
	}

	if c.EventDate != nil {
		eventDate := *c.EventDate
		b.EventDate = &eventDate
	}

	if c.Venue != nil {
		b.Venue = *c.Venue
	}

	if c.Address != nil {
		b.Address = *c.Address
	}

	if c.AudienceEstimate != nil {
		b.AudienceEstimate = *c.AudienceEstimate
	}

	if c.TicketPrice != nil {
		b.TicketPrice = *c.TicketPrice
	}

	if c.Pricing != nil {
		b.setPricing(*c.Pricing)
	}

	if c.TechSpec != nil {
		b.TechSpec = *c.TechSpec
	}

	if c.HospitalityRider != nil {
		b.HospitalityRider = *c.HospitalityRider
	}

	if c.PersonalMessage != nil {
		b.PersonalMessage = *c.PersonalMessage
	}
}

// Allow is the receiver's explicit acceptance to negotiate.
func (b *Booking) Allow(actor string, at time.Time) error {
	party, ok := b.PartyOf(actor)
	if !ok || party != PartyReceiver {
		return ErrUnauthorized
	}

	if b.Status != StatusPending {
		return fmt.Errorf("%w: booking is %s", ErrInvalidStatus, b.Status)
	}

	b.Status = StatusAllowed
	b.AllowedAt = &at
	b.touch(actor, at)

	return nil
}

// Reject is the receiver declining a pending request.
func (b *Booking) Reject(actor, reason string, at time.Time) error {
	party, ok := b.PartyOf(actor)
	if !ok || party != PartyReceiver {
		return ErrUnauthorized
	}

	if b.Status != StatusPending {
		return fmt.Errorf("%w: booking is %s", ErrInvalidStatus, b.Status)
	}

	return b.cancel(actor, reason, at)
}

// Cancel ends the negotiation from any non-terminal state.
func (b *Booking) Cancel(actor, reason string, at time.Time) error {
	if !b.IsParty(actor) {
		return ErrUnauthorized
	}

	if b.Status.IsTerminal() {
		return fmt.Errorf("%w: booking is %s", ErrInvalidStatus, b.Status)
	}

	return b.cancel(actor, reason, at)
}

func (b *Booking) cancel(actor, reason string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: cancellation reason is required", ErrValidation)
	}

	status, err := Transition(b.Status, StatusCancelled)
	if err != nil {
		return err
	}

	b.Status = status
	b.CancellationReason = &reason
	b.touch(actor, at)

	return nil
}

// Publish moves a fully approved booking to upcoming. Listing the event is up to the caller.
func (b *Booking) Publish(actor string, at time.Time) error {
	if !b.IsParty(actor) {
		return ErrUnauthorized
	}

	if b.Status.IsPublished() {
		return ErrAlreadyPublished
	}

	if b.Status != StatusApprovedByBoth {
		return fmt.Errorf("%w: booking is %s", ErrInvalidStatus, b.Status)
	}

	b.Status = StatusUpcoming
	b.touch(actor, at)

	return nil
}

// Complete marks an upcoming event as held once its day is over. system may act for
// the scheduler.
func (b *Booking) Complete(actor string, system bool, at time.Time) error {
	if !system && !b.IsParty(actor) {
		return ErrUnauthorized
	}

	if b.Status != StatusUpcoming {
		return fmt.Errorf("%w: booking is %s", ErrInvalidStatus, b.Status)
	}

	if b.EventDate != nil && at.Before(now.With(b.EventDate.In(at.Location())).EndOfDay()) {
		return fmt.Errorf("%w: event has not taken place yet", ErrValidation)
	}

	b.Status = StatusCompleted
	b.touch(actor, at)

	return nil
}
