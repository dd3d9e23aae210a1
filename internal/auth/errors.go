package auth

import "errors"

// User-facing workflow errors. Handlers turn these into a flash message and a
// redirect; none of them should ever hard-fail a request.
var (
	ErrDuplicateEmail        = errors.New("an account with this email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUnknownEmail          = errors.New("no account found for this email")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrInvalidOTP            = errors.New("incorrect OTP code")
	ErrNoOTPSession          = errors.New("no OTP verification in progress")
)

// ErrNotFound is the store-level miss signal. Implementations of UserStore
// return it from the Find methods; the engine maps it to the user-facing
// error of whichever step it occurred in.
var ErrNotFound = errors.New("record not found")
