package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeSpace is the number of distinct six-digit codes (100000..999999).
var codeSpace = big.NewInt(900000)

// GenerateOneTimeCode returns a fresh, uniformly random six-digit numeric
// code for the 2FA, email-change, and password-reset flows. A new code is
// generated on every send; codes are never reused.
func GenerateOneTimeCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("error generating one-time code: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
