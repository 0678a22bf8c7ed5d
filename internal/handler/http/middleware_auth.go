// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, tracing, compression, and
// CORS concerns are all handled at this layer before requests are
// forwarded to the service layer.
package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/service"
	"github.com/MKhiriev/invest-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces cookie-based session
// authentication.
//
// It reads the session JWT from the "token" cookie, validates it via
// [service.AuthService.ParseToken], and on success stores the decoded
// session in the request context under [utils.SessionCtxKey] before
// delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when the cookie
// is absent or empty ([ErrNoSessionCookie]) and when the token is expired or
// otherwise invalid ([service.ErrTokenIsExpiredOrInvalid]). An invalid cookie
// is cleared on the way out so browsers stop replaying it.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			log.Err(ErrNoSessionCookie).Send()
			h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, cookie.Value)
		if err != nil {
			if errors.Is(err, service.ErrTokenIsExpiredOrInvalid) {
				log.Err(err).Msg("session token expired or invalid")
			} else {
				log.Err(err).Msg("unexpected error during token parsing")
			}
			h.clearSessionCookie(w)
			h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
			return
		}

		ctx = context.WithValue(ctx, utils.SessionCtxKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
