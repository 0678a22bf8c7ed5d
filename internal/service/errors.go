package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters")
	ErrSamePassword        = errors.New("new password must be different from the current password")
	ErrSameEmail           = errors.New("new email must be different from the current email")
	ErrEmailTaken          = errors.New("email is already in use")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrNoCodePending       = errors.New("no verification code is pending")
	ErrCodeExpired         = errors.New("verification code has expired")
	ErrCodeMismatch        = errors.New("verification code is incorrect")
	ErrTwoFactorNotEnabled = errors.New("two-factor authentication is not enabled")

	ErrEmailDeliveryFailed = errors.New("failed to send email")

	ErrInvalidSlug    = errors.New("category slug is invalid")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrUpdateConflict = errors.New("category was modified concurrently, please retry")
)
