package utils

import (
	"errors"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrUserNotFound     = errors.New("user_not_found")
	ErrEmailExists      = errors.New("email_exists")
	ErrEmailNotVerified = errors.New("email_not_verified")
	ErrInvalidOTP       = errors.New("invalid_otp")
	ErrOTPExpired       = errors.New("otp_expired")

	// For external service failures (SendGrid)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)
