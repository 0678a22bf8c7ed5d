// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when reading the
// session cookie. Callers can match against them with [errors.Is].
var (
	// ErrNoSessionCookie is returned by the auth middleware when the
	// incoming request carries no session cookie, or an empty one.
	ErrNoSessionCookie = errors.New("no session cookie")
)
