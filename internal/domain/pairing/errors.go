package pairing

import "errors"

var (
	ErrNotFound          = errors.New("pairing request not found")
	ErrExpired           = errors.New("pairing code has expired")
	ErrNotPending        = errors.New("pairing request is not pending")
	ErrAlreadyVerified   = errors.New("pairing request already verified")
	ErrInvalidTransition = errors.New("invalid pairing status transition")
)
