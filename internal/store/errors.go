package store

import "errors"

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrTokenNotFound       = errors.New("token not found")
	ErrInvalidState        = errors.New("invalid token state")
	ErrNoActiveToken       = errors.New("no active token for patient")
	ErrDuplicateToken      = errors.New("duplicate token number")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionNotFound     = errors.New("session not found")
	ErrEmailTaken          = errors.New("email already registered")
)
