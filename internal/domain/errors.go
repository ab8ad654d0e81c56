package domain

import "errors"

// Absent users are reported as a nil result, never as an error.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrWeakPassword       = errors.New("password does not meet strength policy")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCreationFailed     = errors.New("user creation failed")
	ErrPersistence        = errors.New("persistence failure")
)
