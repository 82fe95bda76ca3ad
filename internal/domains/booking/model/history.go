package model

import (
	"fmt"
	"strings"
	"time"
)

const (
	HistoryTableName  = "booking_history"
	HistoryEntityName = "booking_history"

	FieldHistoryBookingID = "booking_id"
	FieldDeletedAt        = "deleted_at"
	FieldBookedAt         = "booked_at"
)

var HistorySortableFields = []string{FieldDeletedAt, FieldBookedAt, FieldEventDate}

// History is the scrubbed record kept after a booking leaves the live table. It has no
// pricing, contact or message fields.
type History struct {
	ID                 string     `db:"id"`
	BookingID          string     `db:"booking_id"`
	SenderID           string     `db:"sender_id"`
	ReceiverID         string     `db:"receiver_id"`
	Status             Status     `db:"status"`
	Title              string     `db:"title"`
	Description        string     `db:"description"`
	EventDate          *time.Time `db:"event_date"`
	Venue              string     `db:"venue"`
	Address            string     `db:"address"`
	AudienceEstimate   int        `db:"audience_estimate"`
	ConceptID          *string    `db:"concept_id"`
	CancellationReason *string    `db:"cancellation_reason"`
	DeletionReason     string     `db:"deletion_reason"`
	DeletedBy          string     `db:"deleted_by"`
	BookedAt           time.Time  `db:"booked_at"`
	DeletedAt          time.Time  `db:"deleted_at"`
}

func (h *History) IsParty(actor string) bool {
	return actor != "" && (actor == h.SenderID || actor == h.ReceiverID)
}

// ToHistory produces the history record for a soft delete. A booking still under
// negotiation is recorded as deleted, one that already ended keeps its final status.
func (b *Booking) ToHistory(id, actor, reason string, at time.Time) (History, error) {
	if !b.IsParty(actor) {
		return History{}, ErrUnauthorized
	}

	if b.Status == StatusUpcoming {
		return History{}, fmt.Errorf("%w: a published event cannot be deleted", ErrInvalidStatus)
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return History{}, fmt.Errorf("%w: deletion reason is required", ErrValidation)
	}

	status := b.Status
	if !status.IsTerminal() {
		next, err := Transition(status, StatusDeleted)
		if err != nil {
			return History{}, err
		}

		status = next
	}

	return History{
		ID:                 id,
		BookingID:          b.ID,
		SenderID:           b.SenderID,
		ReceiverID:         b.ReceiverID,
		Status:             status,
		Title:              b.Title,
		Description:        b.Description,
		EventDate:          b.EventDate,
		Venue:              b.Venue,
		Address:            b.Address,
		AudienceEstimate:   b.AudienceEstimate,
		ConceptID:          b.ConceptID,
		CancellationReason: b.CancellationReason,
		DeletionReason:     reason,
		DeletedBy:          actor,
		BookedAt:           b.CreatedAt,
		DeletedAt:          at,
	}, nil
}

// CanPurge reports whether actor may permanently remove the booking.
func (b *Booking) CanPurge(actor string) error {
	if !b.IsParty(actor) {
		return ErrUnauthorized
	}

	if b.Status == StatusUpcoming {
		return fmt.Errorf("%w: a published event cannot be deleted", ErrInvalidStatus)
	}

	return nil
}
