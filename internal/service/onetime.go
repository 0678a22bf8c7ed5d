package service

import (
	"strings"
	"time"
)

// One-time verification codes stay valid for a short window after being
// emailed. Sign-in and two-factor enablement codes are shorter-lived than
// email-change and password-reset codes.
const (
	twoFactorCodeTTL = 10 * time.Minute
	accountCodeTTL   = 30 * time.Minute
)

// verifyOneTimeCode checks a supplied code against the stored one.
//
// Returns:
//   - ErrNoCodePending if no code was ever issued (stored or expiry is nil),
//   - ErrCodeExpired if the stored code's window has passed,
//   - ErrCodeMismatch if the trimmed supplied code differs from the stored one,
//   - nil when the code matches and is still valid.
//
// Expiry is checked before the comparison so that an expired code is reported
// as expired even when the digits happen to match.
func verifyOneTimeCode(stored *string, expiry *time.Time, supplied string, now time.Time) error {
	if stored == nil || expiry == nil {
		return ErrNoCodePending
	}
	if now.After(*expiry) {
		return ErrCodeExpired
	}
	if strings.TrimSpace(supplied) != *stored {
		return ErrCodeMismatch
	}
	return nil
}
