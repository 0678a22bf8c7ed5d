// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, slug
// normalization, one-time-code generation, HTTP response writing,
// and JWT session token generation and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/invest-keeper/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SessionCtxKey is the key used to store the authenticated session token in
// the request context. The auth middleware writes it; handlers read it back
// via GetSessionFromContext.
var SessionCtxKey = contextKey("session")

// GetSessionFromContext retrieves the authenticated session from the context.
//
// Returns the session token and an ok flag:
//   - ok == true: a session was attached by the auth middleware
//   - ok == false: the request is unauthenticated or the value has an
//     unexpected type
func GetSessionFromContext(ctx context.Context) (models.Token, bool) {
	token, ok := ctx.Value(SessionCtxKey).(models.Token)
	return token, ok
}
