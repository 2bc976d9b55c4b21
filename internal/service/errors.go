package service

import "errors"

var (
	ErrDuplicateAccount   = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not logged in")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmptyField         = errors.New("required field is empty")
	ErrInvalidStatus      = errors.New("invalid phrase status")
	ErrInvalidMode        = errors.New("invalid practice mode")
	ErrInvalidCount       = errors.New("counts must not be negative")
	ErrEmptyDeck          = errors.New("no phrases to practice")
)
