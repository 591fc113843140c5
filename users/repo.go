package users

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by lookups when no matching user exists.
var ErrNotFound = errors.New("user not found")

// Repo is the persistence contract the security core requires for users.
// GetByCredentials must match identifier and secret digest together so that
// a failed lookup never reveals which of the two was wrong.
type Repo interface {
	Create(ctx context.Context, user *User) (string, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByCredentials(ctx context.Context, email, secretHash string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*User, error)
}
