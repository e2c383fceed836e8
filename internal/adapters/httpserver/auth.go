package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/envatex/internal/domain"
)

type claimsHandler func(w http.ResponseWriter, r *http.Request, claims domain.Claims)

// withClaims rejects requests without a valid bearer token. Role checks happen in the use cases.
func (s *Server) withClaims(h claimsHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.Authenticate(bearerToken(r))
		if err != nil {
			log.Warn().Err(err).Str("request_id", requestIDFrom(r.Context())).Msg("token rechazado")
			writeError(w, r, err)
			return
		}
		h(w, r, claims)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

func (s *Server) apiLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	// an unreadable body is reported as missing credentials
	_ = json.NewDecoder(r.Body).Decode(&req)
	res, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
