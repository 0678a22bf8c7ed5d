package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/invest-keeper/internal/service"
	"github.com/MKhiriev/invest-keeper/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrPasswordTooShort:        http.StatusBadRequest,
	service.ErrSamePassword:            http.StatusBadRequest,
	service.ErrSameEmail:               http.StatusBadRequest,
	service.ErrEmailTaken:              http.StatusBadRequest,
	service.ErrInvalidSlug:             http.StatusBadRequest,
	service.ErrNoCodePending:           http.StatusBadRequest,
	service.ErrCodeExpired:             http.StatusBadRequest,
	service.ErrCodeMismatch:            http.StatusBadRequest,
	service.ErrTwoFactorNotEnabled:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrEntryNotFound:           http.StatusNotFound,
	service.ErrUpdateConflict:          http.StatusConflict,
	service.ErrEmailDeliveryFailed:     http.StatusInternalServerError,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrEmailAlreadyExists: http.StatusBadRequest,
	store.ErrDuplicateSlug:      http.StatusBadRequest,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrCategoryNotFound:   http.StatusNotFound,
	store.ErrVersionConflict:    http.StatusConflict,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
	store.ErrEncodingEntries:    http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError exposes the sentinel's own text for known errors and a
// generic message otherwise, so wrapped internals never leak to clients.
func messageFromError(err error) string {
	for target := range errorStatusMap {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return "internal server error"
}
