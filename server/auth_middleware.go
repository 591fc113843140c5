package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-access-server/auth"
	"github.com/jrsteele09/go-access-server/internal/metrics"
	"github.com/jrsteele09/go-access-server/permissions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Protected gates a route behind the authorization strategy. The resource
// and action are the route's static metadata; the bearer token comes from
// the Authorization header. All authentication failures render the same
// uniform 401 body, a policy deny and a missing permission record both
// render 403, and an unknown action is treated as a server misconfiguration.
func (s *Server) Protected(resourceID string, action permissions.Action) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			decision, err := s.strategy.Authorize(r.Context(), bearerToken(r), resourceID, action)

			switch {
			case errors.Is(err, auth.UnauthenticatedErr):
				metrics.Authorizations.WithLabelValues(metrics.OutcomeUnauthenticated).Inc()
				writeAccessDenied(w)

			case errors.Is(err, auth.ForbiddenErr):
				metrics.Authorizations.WithLabelValues(metrics.OutcomeForbidden).Inc()
				writeError(w, http.StatusForbidden, "forbidden")

			case errors.Is(err, auth.InvalidActionErr):
				metrics.Authorizations.WithLabelValues(metrics.OutcomeInvalidAction).Inc()
				log.Error().
					Str("resource", resourceID).
					Str("action", string(action)).
					Str("path", r.URL.Path).
					Msg("route declares an unrecognised action")
				writeError(w, http.StatusInternalServerError, "internal server error")

			case err != nil:
				metrics.Authorizations.WithLabelValues(metrics.OutcomeError).Inc()
				log.Error().Err(err).Str("path", r.URL.Path).Msg("authorization failed")
				writeError(w, http.StatusInternalServerError, "internal server error")

			case !decision.Allowed:
				metrics.Authorizations.WithLabelValues(metrics.OutcomeDenied).Inc()
				writeError(w, http.StatusForbidden, "forbidden")

			default:
				metrics.Authorizations.WithLabelValues(metrics.OutcomeOK).Inc()
				next(w, r)
			}
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. It returns the empty string when the header is absent or not a
// bearer credential.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
