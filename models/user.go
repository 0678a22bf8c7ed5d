package models

import (
	"time"

	"github.com/google/uuid"
)

// Role describes the authorization level of a user account.
type Role string

const (
	// RoleAdmin marks an administrator account.
	RoleAdmin Role = "admin"

	// RoleUser marks a regular account. This is the default for new signups.
	RoleUser Role = "user"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes, the bcrypt password hash, and the pending
// one-time-code state for the three verification flows (2FA, email change,
// password reset).
//
// A pending code is modelled as a pair of nullable fields: the code itself and
// its absolute expiry. Both nil means no code is pending; both set means a
// code is awaiting verification. Sensitive fields are never serialized.
type User struct {
	// UserID is the unique identifier of the user.
	UserID uuid.UUID `json:"id"`

	// Email is the unique, lowercased account email used during authentication.
	Email string `json:"email"`

	// Name is the display name of the user. Non-sensitive, shown in UI.
	Name string `json:"name"`

	// Role is the authorization level ("admin" or "user").
	Role Role `json:"role"`

	// PasswordHash is the bcrypt hash of the account password.
	// Never exposed via JSON.
	PasswordHash string `json:"-"`

	// TwoFactorEnabled reports whether sign-in requires an emailed
	// one-time code in addition to the password.
	TwoFactorEnabled bool `json:"twoFactorEnabled"`

	// TwoFactorCode holds the pending 2FA one-time code, if any.
	TwoFactorCode *string `json:"-"`

	// TwoFactorCodeExpiry is the absolute expiry of TwoFactorCode.
	TwoFactorCodeExpiry *time.Time `json:"-"`

	// EmailVerificationCode holds the pending email-change code, if any.
	EmailVerificationCode *string `json:"-"`

	// EmailVerificationExpiry is the absolute expiry of EmailVerificationCode.
	EmailVerificationExpiry *time.Time `json:"-"`

	// PasswordResetCode holds the pending password-reset code, if any.
	PasswordResetCode *string `json:"-"`

	// PasswordResetExpiry is the absolute expiry of PasswordResetCode.
	PasswordResetExpiry *time.Time `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last mutation of the account record.
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PublicUser is the reduced user representation returned by the auth
// endpoints (signup, signin, me).
type PublicUser struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             Role      `json:"role"`
	TwoFactorEnabled bool      `json:"twoFactorEnabled"`
}

// Public returns the representation of the user that is safe to hand to the
// presentation layer.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:               u.UserID,
		Email:            u.Email,
		Name:             u.Name,
		Role:             u.Role,
		TwoFactorEnabled: u.TwoFactorEnabled,
	}
}
