package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/service"
	"github.com/MKhiriev/invest-keeper/internal/utils"
	"github.com/MKhiriev/invest-keeper/models"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	categories, err := h.services.CategoryService.List(ctx, session)
	if err != nil {
		log.Err(err).Msg("category listing failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, categories, "", http.StatusOK)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var req models.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	category, err := h.services.CategoryService.Create(ctx, session, req)
	if err != nil {
		log.Err(err).Msg("category creation failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, category, "", http.StatusCreated)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	category, err := h.services.CategoryService.Get(ctx, session, chi.URLParam(r, "slug"))
	if err != nil {
		log.Err(err).Msg("category lookup failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, category, "", http.StatusOK)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	var req models.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		h.writeError(w, service.ErrInvalidDataProvided)
		return
	}

	category, err := h.services.CategoryService.Update(ctx, session, chi.URLParam(r, "slug"), req)
	if err != nil {
		log.Err(err).Msg("category update failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, category, "", http.StatusOK)
}

// deleteCategory removes the category and echoes the deleted document.
func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	deleted, err := h.services.CategoryService.Delete(ctx, session, chi.URLParam(r, "slug"))
	if err != nil {
		log.Err(err).Msg("category deletion failed")
		h.writeError(w, err)
		return
	}

	h.writeSuccess(w, deleted, "", http.StatusOK)
}
