// Package common defines shared constants and sentinel errors used across
// client and server layers of shopcart. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Cart/order errors.
	ErrorCartEmpty = errors.New("cart is empty")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
