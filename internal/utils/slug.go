package utils

import "strings"

// NormalizeSlug canonicalizes a raw user-supplied string (a category name or
// an explicit slug) into a URL-safe slug: lowercase, with every run of
// characters outside [a-z0-9] collapsed into a single dash and no leading or
// trailing dash.
//
// An empty result means the input had no usable characters; callers must
// treat that as a validation error. The function is idempotent:
// NormalizeSlug(NormalizeSlug(s)) == NormalizeSlug(s).
func NormalizeSlug(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(lowered))

	pendingDash := false
	for _, r := range lowered {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			pendingDash = b.Len() > 0
			continue
		}
		if pendingDash {
			b.WriteByte('-')
			pendingDash = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
