package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/service"
	"github.com/MKhiriev/invest-keeper/internal/utils"
	"github.com/MKhiriev/invest-keeper/models"
)

func (h *Handler) enableTwoFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	if err := h.services.TwoFactorService.SendEnableCode(ctx, session); err != nil {
		log.Err(err).Msg("sending two-factor enable code failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, nil, "Verification code sent to your email", http.StatusOK)
}

func (h *Handler) verifyTwoFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var req models.CodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}
	if req.Code == "" {
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.TwoFactorService.VerifyEnableCode(ctx, session, req.Code); err != nil {
		log.Err(err).Msg("two-factor verification failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, nil, "Two-factor authentication enabled successfully", http.StatusOK)
}

func (h *Handler) disableTwoFactor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var req models.PasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.TwoFactorService.Disable(ctx, session, req.Password); err != nil {
		log.Err(err).Msg("two-factor disable failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, nil, "Two-factor authentication disabled successfully", http.StatusOK)
}

// requestEmailChange starts the email-change flow by sending a verification
// code to the address being claimed.
func (h *Handler) requestEmailChange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var req models.ChangeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.AccountService.RequestEmailChange(ctx, session, req.NewEmail); err != nil {
		log.Err(err).Msg("email change request failed")
		h.writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.Response{
		Success:      true,
		Message:      "Verification code sent to your new email address",
		PendingEmail: req.NewEmail,
	}, http.StatusOK)
}

// confirmEmailChange completes the email-change flow with the code delivered
// to the new address.
func (h *Handler) confirmEmailChange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var req models.ConfirmEmailChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}
	if req.Code == "" {
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	updatedUser, err := h.services.AccountService.ConfirmEmailChange(ctx, session, req.NewEmail, req.Code)
	if err != nil {
		log.Err(err).Msg("email change confirmation failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, userEnvelope{User: updatedUser.Public()}, "Email changed successfully", http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.AccountService.ChangePassword(ctx, session, req.CurrentPassword, req.NewPassword); err != nil {
		log.Err(err).Msg("password change failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, nil, "Password changed successfully", http.StatusOK)
}
