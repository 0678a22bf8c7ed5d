package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the JWT claim set carried by a session token. On top of the
// registered claims (sub holds the user ID) it embeds the account email and
// role so authenticated handlers do not need a user lookup for authorization.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Email is the account email at the time the session was issued.
	Email string `json:"email"`

	// Role is the account role at the time the session was issued.
	Role Role `json:"role"`
}

// Token wraps a session JWT with convenience accessors for authentication
// flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be set as the session cookie value.
// UserID is the parsed "sub" claim, cached so downstream code does not
// re-parse the subject string.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization; only the compact string form is
	// meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// UserID is the owner identifier extracted from the "sub" claim.
	UserID uuid.UUID `json:"-"`

	// Email is the account email extracted from the claim set.
	Email string `json:"-"`

	// Role is the account role extracted from the claim set.
	Role Role `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
