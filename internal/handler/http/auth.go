package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/service"
	"github.com/MKhiriev/invest-keeper/internal/utils"
	"github.com/MKhiriev/invest-keeper/models"
)

// userEnvelope nests the public user view under a "user" key, matching the
// shape every auth endpoint returns.
type userEnvelope struct {
	User models.PublicUser `json:"user"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	registeredUser, err := h.services.AuthService.Signup(ctx, req)
	if err != nil {
		log.Err(err).Msg("user signup failed")
		h.writeError(w, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.writeError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.writeSuccess(w, userEnvelope{User: registeredUser.Public()}, "", http.StatusCreated)
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	foundUser, requires2FA, err := h.services.AuthService.Signin(ctx, req)
	if err != nil {
		log.Err(err).Msg("user signin failed")
		h.writeError(w, err)
		return
	}

	if requires2FA {
		utils.WriteJSON(w, models.Response{
			Success:     true,
			Requires2FA: true,
			Message:     "Two-factor authentication code sent to your email",
		}, http.StatusOK)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		h.writeError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	h.writeSuccess(w, userEnvelope{User: foundUser.Public()}, "", http.StatusOK)
}

func (h *Handler) signout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	h.writeSuccess(w, nil, "Signed out successfully", http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	user, err := h.services.AuthService.CurrentUser(ctx, session)
	if err != nil {
		log.Err(err).Msg("current user lookup failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, userEnvelope{User: user.Public()}, "", http.StatusOK)
}

// sendLoginCode is the pre-session 2FA code (re)send. It never reveals
// whether an account exists behind the address.
func (h *Handler) sendLoginCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}
	if req.Email == "" {
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.TwoFactorService.SendLoginCode(ctx, req.Email); err != nil {
		log.Err(err).Msg("login code send failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, nil, "Two-factor authentication code sent to your email", http.StatusOK)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}
	if req.Email == "" {
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.AccountService.ForgotPassword(ctx, req.Email); err != nil {
		log.Err(err).Msg("forgot password failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, nil, "If an account exists with this email, a password reset code has been sent.", http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.AccountService.ResetPassword(ctx, req); err != nil {
		log.Err(err).Msg("password reset failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, nil, "Password reset successfully. You can now sign in with your new password.", http.StatusOK)
}
