package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-access-server/auth"
	"github.com/jrsteele09/go-access-server/credentials"
	"github.com/jrsteele09/go-access-server/internal/metrics"
	"github.com/jrsteele09/go-access-server/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type verifyRequest struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

type verifyResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// IdentifyHandler starts a login. On a credential match a one time code is
// dispatched out of band and the caller receives the sanitized user, whose
// id it quotes back alongside the code. Bad credentials and unknown users
// share one response.
func (s *Server) IdentifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials.Credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := s.security.Identify(r.Context(), creds)
		switch {
		case errors.Is(err, auth.InvalidCredentialsErr):
			metrics.Identifications.WithLabelValues(metrics.OutcomeDenied).Inc()
			writeAccessDenied(w)
			return
		case err != nil:
			metrics.Identifications.WithLabelValues(metrics.OutcomeError).Inc()
			log.Error().Err(err).Msg("identify failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		metrics.Identifications.WithLabelValues(metrics.OutcomeOK).Inc()
		writeJSON(w, http.StatusOK, user)
	}
}

// VerifyCodeHandler redeems a one time code for a signed token.
func (s *Server) VerifyCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, signedToken, err := s.security.VerifyCode(r.Context(), req.UserID, req.Code)
		switch {
		case errors.Is(err, auth.InvalidCodeErr):
			metrics.Verifications.WithLabelValues(metrics.OutcomeDenied).Inc()
			writeAccessDenied(w)
			return
		case err != nil:
			metrics.Verifications.WithLabelValues(metrics.OutcomeError).Inc()
			log.Error().Err(err).Msg("code verification failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		metrics.Verifications.WithLabelValues(metrics.OutcomeOK).Inc()
		writeJSON(w, http.StatusOK, verifyResponse{User: user, Token: signedToken})
	}
}
