package types

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrDuplicateResource  = errors.New("resource already exists")

	ErrMaxDistance         = errors.New("check-in too far from the gym")
	ErrMaxNumberOfCheckIns = errors.New("check-in already exists for this date")

	ErrCheckInAlreadyValidated = errors.New("check-in already validated")
	ErrLateCheckInValidation   = errors.New("check-in can no longer be validated")

	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
