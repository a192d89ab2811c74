package api

import (
	"encoding/json"
	"net/http"

	"github.com/Vladislav-Onoprienko/shareit/internal/service"

	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps a typed service failure to its HTTP status. Untyped
// errors are logged and collapsed to a generic 500.
func writeServiceError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	switch service.KindOf(err) {
	case service.KindNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case service.KindForbidden:
		writeError(w, http.StatusForbidden, err.Error())
	case service.KindConflict:
		writeError(w, http.StatusConflict, err.Error())
	case service.KindUnavailable, service.KindValidation:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
