package model

import "fmt"

type Status string

const (
	StatusPending            Status = "pending"
	StatusAllowed            Status = "allowed"
	StatusApprovedBySender   Status = "approved_by_sender"
	StatusApprovedByReceiver Status = "approved_by_receiver"
	StatusApprovedByBoth     Status = "approved_by_both"
	StatusUpcoming           Status = "upcoming"
	StatusCompleted          Status = "completed"
	StatusCancelled          Status = "cancelled"
	StatusDeleted            Status = "deleted"

	// legacyStatusBothApproved was written by older clients for the same state as StatusApprovedByBoth.
	legacyStatusBothApproved = "both_parties_approved"
)

var allowedTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusAllowed:   true,
		StatusCancelled: true,
		StatusDeleted:   true,
	},
	StatusAllowed: {
		StatusApprovedBySender:   true,
		StatusApprovedByReceiver: true,
		StatusCancelled:          true,
		StatusDeleted:            true,
	},
	StatusApprovedBySender: {
		StatusApprovedByBoth: true,
		StatusAllowed:        true,
		StatusCancelled:      true,
		StatusDeleted:        true,
	},
	StatusApprovedByReceiver: {
		StatusApprovedByBoth: true,
		StatusAllowed:        true,
		StatusCancelled:      true,
		StatusDeleted:        true,
	},
	StatusApprovedByBoth: {
		StatusUpcoming:  true,
		StatusAllowed:   true,
		StatusCancelled: true,
		StatusDeleted:   true,
	},
	StatusUpcoming:  {StatusCompleted: true},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusDeleted:   {},
}

func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusAllowed,
		StatusApprovedBySender,
		StatusApprovedByReceiver,
		StatusApprovedByBoth,
		StatusUpcoming,
		StatusCompleted,
		StatusCancelled,
		StatusDeleted,
	}
}

func ParseStatus(s string) (Status, error) {
	if s == legacyStatusBothApproved {
		return StatusApprovedByBoth, nil
	}

	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}

	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := allowedTransitions[s]

	return ok
}

// IsTerminal reports whether negotiation is over. Upcoming still advances to completed.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled, StatusDeleted:
		return true
	default:
		return false
	}
}

func (s Status) IsApproved() bool {
	return s == StatusApprovedBySender || s == StatusApprovedByReceiver || s == StatusApprovedByBoth
}

// IsEditable reports whether negotiable fields may change in this status.
func (s Status) IsEditable() bool {
	return s == StatusPending || s == StatusAllowed || s.IsApproved()
}

func (s Status) IsConfirmable() bool {
	return s == StatusAllowed || s == StatusApprovedBySender || s == StatusApprovedByReceiver
}

func (s Status) IsPublished() bool {
	return s == StatusUpcoming || s == StatusCompleted
}

func CanTransition(from, to Status) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}

	return next[to]
}

// Transition returns to when the move from is legal.
func Transition(from, to Status) (Status, error) {
	if !CanTransition(from, to) {
		return from, fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, from, to)
	}

	return to, nil
}

// statusFromFlags derives the approval status from the confirmation flags.
func statusFromFlags(senderConfirmed, receiverConfirmed bool) Status {
	switch {
	case senderConfirmed && receiverConfirmed:
		return StatusApprovedByBoth
	case senderConfirmed:
		return StatusApprovedBySender
	case receiverConfirmed:
		return StatusApprovedByReceiver
	default:
		return StatusAllowed
	}
}
