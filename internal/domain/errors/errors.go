package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrOrderNotPaid        = errors.New("order not paid")
	ErrOrderImmutable      = errors.New("order is in a final state")
	ErrVersionConflict     = errors.New("version conflict")
	ErrUpstreamUnavailable = errors.New("payment provider unavailable")
)
