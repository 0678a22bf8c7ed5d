package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/service"
	"github.com/MKhiriev/invest-keeper/internal/utils"
	"github.com/MKhiriev/invest-keeper/models"
)

func (h *Handler) addEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var req models.AddEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	category, err := h.services.CategoryService.AddEntry(ctx, session, chi.URLParam(r, "slug"), req)
	if err != nil {
		log.Err(err).Msg("entry creation failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, category, "", http.StatusCreated)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var req models.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	category, err := h.services.CategoryService.UpdateEntry(ctx, session, chi.URLParam(r, "slug"), req)
	if err != nil {
		log.Err(err).Msg("entry update failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, category, "", http.StatusOK)
}

// deleteEntry addresses the entry through query parameters (entryId or
// entryIndex) because DELETE requests commonly travel without a body.
// A JSON body with the same fields is accepted as a fallback.
func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	req, err := deleteEntryRequestFromQuery(r)
	if err != nil {
		log.Err(err).Msg("invalid entry address")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}
	if req.EntryID == nil && req.EntryIndex == nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || (req.EntryID == nil && req.EntryIndex == nil) {
			h.writeError(w, service.ErrInvalidDataProvided)
			return
		}
	}

	category, err := h.services.CategoryService.DeleteEntry(ctx, session, chi.URLParam(r, "slug"), req)
	if err != nil {
		log.Err(err).Msg("entry deletion failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, category, "", http.StatusOK)
}

func deleteEntryRequestFromQuery(r *http.Request) (models.DeleteEntryRequest, error) {
	var req models.DeleteEntryRequest

	if raw := r.URL.Query().Get("entryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return models.DeleteEntryRequest{}, err
		}
		req.EntryID = &id
	}
	if raw := r.URL.Query().Get("entryIndex"); raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil {
			return models.DeleteEntryRequest{}, err
		}
		req.EntryIndex = &index
	}

	return req, nil
}
