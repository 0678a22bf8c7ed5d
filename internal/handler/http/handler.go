package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/invest-keeper/internal/config"
	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/service"
	"github.com/MKhiriev/invest-keeper/internal/utils"
	"github.com/MKhiriev/invest-keeper/models"
)

// sessionCookieName is the cookie carrying the signed session JWT.
const sessionCookieName = "token"

type Handler struct {
	services *service.Services

	// tokenTTL bounds the session cookie lifetime to the JWT lifetime.
	tokenTTL time.Duration

	// secureCookies marks the session cookie Secure outside development.
	secureCookies bool

	// allowedOrigins feeds the CORS middleware.
	allowedOrigins []string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		tokenTTL:       cfg.App.TokenDuration,
		secureCookies:  cfg.App.Environment == "production",
		allowedOrigins: cfg.Server.AllowedOrigins,
		logger:         logger,
	}
}

// setSessionCookie installs the session JWT as an httpOnly cookie.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token models.Token) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie immediately.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// writeSuccess writes the standard success envelope.
func (h *Handler) writeSuccess(w http.ResponseWriter, data any, message string, statusCode int) {
	utils.WriteJSON(w, models.Response{
		Success: true,
		Data:    data,
		Message: message,
	}, statusCode)
}

// writeError writes the standard failure envelope with the status derived
// from the error taxonomy.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	utils.WriteJSON(w, models.Response{
		Success: false,
		Error:   messageFromError(err),
	}, statusFromError(err))
}
