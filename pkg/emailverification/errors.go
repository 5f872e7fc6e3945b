package emailverification

import "errors"

var (
	// ErrInvalidOtp is returned when no pending passcode matches (user, code)
	ErrInvalidOtp = errors.New("invalid OTP")

	// ErrOtpExpired is returned when a matching passcode has expired; the
	// caller must request a new one
	ErrOtpExpired = errors.New("OTP has expired")

	// ErrDeliveryFailed is returned when the OTP email could not be sent;
	// nothing is persisted in that case
	ErrDeliveryFailed = errors.New("failed to send OTP email")
)
