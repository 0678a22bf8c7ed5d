package models

// Response is the uniform JSON envelope returned by every API endpoint.
// Success is always present; on failure Error carries a human-readable
// message, on success Data and/or Message carry the payload.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`

	// Requires2FA is set on the sign-in response when the account has
	// two-factor authentication enabled and no code was supplied; the
	// session is withheld until a second call provides the emailed code.
	Requires2FA bool `json:"requires2FA,omitempty"`

	// PendingEmail echoes the address an email-change verification code
	// was sent to.
	PendingEmail string `json:"pendingEmail,omitempty"`
}
