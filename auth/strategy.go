package auth

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-access-server/permissions"
	"github.com/jrsteele09/go-access-server/token"
	"github.com/pkg/errors"
)

// Decision is the outcome of an authorization check. A policy deny is
// Decision{Allowed: false} with a nil error - a soft outcome the caller
// renders as 403, distinct from authentication failures and store faults
// which surface as errors.
type Decision struct {
	Allowed bool
}

// Strategy is the per-request authorization gate. It parses the bearer
// token, looks up the permission entry for (role, resource) and checks the
// flag for the requested action. It never mutates state.
type Strategy struct {
	tokens      *token.Service
	permissions permissions.Repo
}

// NewStrategy initializes the authorization strategy.
func NewStrategy(tokens *token.Service, permissionRepo permissions.Repo) (*Strategy, error) {
	if tokens == nil {
		return nil, errors.New("[NewStrategy] token service is required")
	}
	if permissionRepo == nil {
		return nil, errors.New("[NewStrategy] permission repo is required")
	}
	return &Strategy{
		tokens:      tokens,
		permissions: permissionRepo,
	}, nil
}

// Authorize decides whether the bearer of rawToken may perform action on
// the resource. Fail-closed: every path that cannot positively establish
// permission ends in a deny or an error.
func (st *Strategy) Authorize(ctx context.Context, rawToken, resourceID string, action permissions.Action) (Decision, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Decision{}, UnauthenticatedErr
	}

	claims, err := st.tokens.Parse(rawToken)
	if err != nil {
		return Decision{}, UnauthenticatedErr
	}

	entry, err := st.permissions.Find(ctx, claims.RoleID, resourceID)
	if errors.Is(err, permissions.ErrNotFound) {
		return Decision{}, ForbiddenErr
	}
	if err != nil {
		return Decision{}, errors.Wrap(err, "[Strategy.Authorize] permissions.Find")
	}

	allowed, err := entry.Allows(action)
	if errors.Is(err, permissions.ErrUnknownAction) {
		return Decision{}, InvalidActionErr
	}
	if err != nil {
		return Decision{}, errors.Wrap(err, "[Strategy.Authorize] entry.Allows")
	}

	return Decision{Allowed: allowed}, nil
}
