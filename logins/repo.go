package logins

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when no unconsumed attempt matches a lookup.
// A wrong code and a never-issued code are indistinguishable through it.
var ErrNotFound = errors.New("login attempt not found")

// Repo is the persistence contract for login attempts. FindPending must
// match the user, the exact code and CodeConsumed=false; MarkVerified must
// consume the attempt at most once even under concurrent verification, which
// is the store's concurrency obligation rather than the caller's.
type Repo interface {
	Create(ctx context.Context, attempt *Attempt) (string, error)
	FindPending(ctx context.Context, userID, code string) (*Attempt, error)
	MarkVerified(ctx context.Context, attemptID, token string) error
}
