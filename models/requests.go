package models

import "github.com/google/uuid"

// Request payloads accepted by the HTTP API. Patch-style requests use
// pointer fields for "present or absent" semantics and [Optional] where
// an explicit null is meaningful (clearing a value).

// SignupRequest creates a new account.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role,omitempty"`
}

// SigninRequest authenticates an existing account. Code carries the 2FA
// one-time code on the second round-trip of a two-factor sign-in.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     string `json:"code,omitempty"`
}

// CodeRequest carries a bare one-time code (2FA verify).
type CodeRequest struct {
	Code string `json:"code"`
}

// PasswordRequest carries the account password (2FA disable).
type PasswordRequest struct {
	Password string `json:"password"`
}

// EmailRequest carries a bare email address (pre-session 2FA code send).
type EmailRequest struct {
	Email string `json:"email"`
}

// ChangeEmailRequest starts an email change: a verification code is sent to
// the new address.
type ChangeEmailRequest struct {
	NewEmail string `json:"newEmail"`
}

// ConfirmEmailChangeRequest completes an email change with the code that was
// delivered to the new address.
type ConfirmEmailChangeRequest struct {
	NewEmail string `json:"newEmail"`
	Code     string `json:"code"`
}

// ChangePasswordRequest rotates the password of an authenticated account.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ResetPasswordRequest completes a forgot-password flow with the emailed code.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

// CreateCategoryRequest creates a category. Slug is optional; when empty the
// slug is derived from Name. ExpectedPercent defaults to the category default,
// CurrentValue to zero.
type CreateCategoryRequest struct {
	Name            string   `json:"name"`
	Slug            string   `json:"slug,omitempty"`
	ExpectedPercent *float64 `json:"expectedPercent,omitempty"`
	CurrentValue    *float64 `json:"currentValue,omitempty"`
	DisplayName     string   `json:"displayName,omitempty"`
	Description     string   `json:"description,omitempty"`
}

// UpdateCategoryRequest patches a category. Absent fields are left unchanged;
// a slug change is re-normalized and re-checked for per-user uniqueness.
type UpdateCategoryRequest struct {
	Name            *string  `json:"name,omitempty"`
	Slug            *string  `json:"slug,omitempty"`
	DisplayName     *string  `json:"displayName,omitempty"`
	Description     *string  `json:"description,omitempty"`
	ExpectedPercent *float64 `json:"expectedPercent,omitempty"`
	CurrentValue    *float64 `json:"currentValue,omitempty"`
}

// AddEntryRequest appends an entry to a category. Quantity and Invested are
// required. CurrentValue is stored only when explicitly provided: an
// explicit 0 is preserved, while absence (or null) leaves the value unset.
type AddEntryRequest struct {
	Name            string            `json:"name"`
	Quantity        *float64          `json:"quantity"`
	Invested        *float64          `json:"invested"`
	CurrentValue    Optional[float64] `json:"currentValue"`
	ExpectedPercent Optional[float64] `json:"expectedPercent"`
}

// UpdateEntryRequest patches an entry addressed by its stable EntryID or,
// as the positional fallback, by EntryIndex. CurrentValue and ExpectedPercent
// may be explicitly cleared by sending null.
type UpdateEntryRequest struct {
	EntryID         *uuid.UUID        `json:"entryId,omitempty"`
	EntryIndex      *int              `json:"entryIndex,omitempty"`
	Name            *string           `json:"name,omitempty"`
	Quantity        *float64          `json:"quantity,omitempty"`
	Invested        *float64          `json:"invested,omitempty"`
	CurrentValue    Optional[float64] `json:"currentValue"`
	ExpectedPercent Optional[float64] `json:"expectedPercent"`
}

// DeleteEntryRequest removes an entry addressed by stable ID or positional
// index. Later entries shift down by one.
type DeleteEntryRequest struct {
	EntryID    *uuid.UUID `json:"entryId,omitempty"`
	EntryIndex *int       `json:"entryIndex,omitempty"`
}
