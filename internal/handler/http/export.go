package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/invest-keeper/internal/logger"
	"github.com/MKhiriev/invest-keeper/internal/service"
	"github.com/MKhiriev/invest-keeper/internal/utils"
)

// exportCategories streams the caller's whole portfolio as a CSV download.
func (h *Handler) exportCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		h.writeError(w, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	data, err := h.services.CategoryService.ExportCSV(ctx, session)
	if err != nil {
		log.Err(err).Msg("portfolio export failed")
		h.writeError(w, err)
		return
	}

	filename := fmt.Sprintf("portfolio-export-%s.csv", time.Now().Format("2006-01-02"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
