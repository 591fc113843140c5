package permissions

import "context"

// Repo is the read-only lookup over permission entries. Find returns
// ErrNotFound when no entry exists for the pair.
type Repo interface {
	Find(ctx context.Context, roleID, resourceID string) (*Entry, error)
}
