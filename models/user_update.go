package models

import (
	"time"

	"github.com/google/uuid"
)

// UserUpdate describes a partial mutation of a user record. Plain pointer
// fields follow "nil means leave unchanged"; the one-time-code fields use
// [Optional] because clearing a pending code writes an explicit NULL, which
// a nil pointer cannot express.
type UserUpdate struct {
	// UserID identifies the record to mutate.
	UserID uuid.UUID

	Email            *string
	Name             *string
	PasswordHash     *string
	TwoFactorEnabled *bool

	TwoFactorCode           Optional[string]
	TwoFactorCodeExpiry     Optional[time.Time]
	EmailVerificationCode   Optional[string]
	EmailVerificationExpiry Optional[time.Time]
	PasswordResetCode       Optional[string]
	PasswordResetExpiry     Optional[time.Time]
}

// IsEmpty reports whether the update carries no field changes at all.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil &&
		u.Name == nil &&
		u.PasswordHash == nil &&
		u.TwoFactorEnabled == nil &&
		!u.TwoFactorCode.Set &&
		!u.TwoFactorCodeExpiry.Set &&
		!u.EmailVerificationCode.Set &&
		!u.EmailVerificationExpiry.Set &&
		!u.PasswordResetCode.Set &&
		!u.PasswordResetExpiry.Set
}
