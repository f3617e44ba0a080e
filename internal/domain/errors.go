package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrValidation marks request-body validation failures; the wrapping
	// message carries the first violated rule verbatim.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidToken covers both a missing token and an identifier mismatch.
	// The two cases are deliberately indistinguishable to callers so pending
	// tokens cannot be enumerated by email.
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
