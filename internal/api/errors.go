package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/moodlog/internal/domain"
	"github.com/phrazzld/moodlog/internal/domain/stats"
	"github.com/phrazzld/moodlog/internal/store"
)

// MapErrorToStatusCode maps domain and store errors to HTTP status codes:
// validation failures are client errors, missing entities are 404, a
// locked catalog entry is a domain refusal (403), and everything else is
// treated as a persistence or I/O fault.
func MapErrorToStatusCode(err error) int {
	switch {
	case domain.IsValidationError(err),
		errors.Is(err, store.ErrInvalidCatalogKind),
		errors.Is(err, stats.ErrInvalidPeriod):
		return http.StatusBadRequest
	case store.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, store.ErrNotUnlocked):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for the error. The raw
// error text never reaches the response body; it is logged instead.
func GetSafeErrorMessage(err error) string {
	switch {
	case domain.IsValidationError(err):
		return "Invalid input"
	case errors.Is(err, stats.ErrInvalidPeriod):
		return "Period must be week, month or year"
	case errors.Is(err, store.ErrInvalidCatalogKind):
		return "Catalog kind must be themes or skinpacks"
	case errors.Is(err, store.ErrNotUnlocked):
		return "Catalog entry is not unlocked"
	case errors.Is(err, store.ErrEntryNotFound):
		return "Mood entry not found"
	case errors.Is(err, store.ErrActivityNotFound):
		return "Custom activity not found"
	case errors.Is(err, store.ErrCatalogEntryNotFound):
		return "Catalog entry not found"
	case store.IsNotFoundError(err):
		return "Not found"
	default:
		return "An internal error occurred"
	}
}
