package model

import "errors"

var (
	ErrNotFound         = errors.New("booking not found")
	ErrUnauthorized     = errors.New("actor may not perform this action on the booking")
	ErrInvalidStatus    = errors.New("operation not allowed in the current booking status")
	ErrAlreadyConfirmed = errors.New("booking already confirmed by this party")
	ErrAlreadyPublished = errors.New("booking already published")
	ErrValidation       = errors.New("invalid booking data")
	ErrConflict         = errors.New("booking was modified concurrently")
)
