package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrPairingNotFound     = errors.New("pairing request not found")
	ErrPairingExpired      = errors.New("pairing code has expired")
	ErrPairingNotPending   = errors.New("pairing request is not pending")
	ErrInsufficientData    = errors.New("insufficient data for trend analysis")
	ErrDeviceNotFound      = errors.New("device not found")
	ErrDeviceAlreadyExists = errors.New("device already exists")

	ErrInvalidInput = errors.New("invalid input data")
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
