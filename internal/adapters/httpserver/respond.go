package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/envatex/internal/domain"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingField), errors.Is(err, domain.ErrInvalidField), errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	body := errorBody{Error: "Error interno del servidor", Details: err.Error()}
	var de *domain.Error
	if errors.As(err, &de) {
		body = errorBody{Error: de.Message, Details: de.Details}
	} else if code == http.StatusNotFound {
		body = errorBody{Error: "Recurso no encontrado"}
	}
	if code >= http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", requestIDFrom(r.Context())).Str("path", r.URL.Path).Msg("api error")
	}
	// token diagnostics stay in the logs
	if code == http.StatusUnauthorized {
		body.Details = ""
	}
	writeJSON(w, code, body)
}
