package services

import "errors"

// Service-boundary errors. Handlers map these to message pages or the
// JSON envelope; anything else is treated as a store failure.
var (
	ErrMissingFields    = errors.New("all fields are required")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrUnknownEmail     = errors.New("no account with that email")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWrongAnswers     = errors.New("security answers do not match")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("not the owner")
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrInvalidReaction  = errors.New("reaction must be like or dislike")
)
