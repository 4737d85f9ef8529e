package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidAge        = errors.New("invalid age")
	ErrMissingField      = errors.New("missing required field")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInvalidUsername   = errors.New("invalid username")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUnauthenticated   = errors.New("not logged in")
	ErrDeliveryFailed    = errors.New("failed to send OTP email")
	ErrOtpNotFound       = errors.New("no OTP found")
	ErrOtpExpired        = errors.New("OTP expired")
	ErrOtpMismatch       = errors.New("invalid OTP")
	ErrTooManyRequests   = errors.New("too many OTP requests")
)
