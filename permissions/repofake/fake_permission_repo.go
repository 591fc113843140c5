package fakepermissionrepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-access-server/permissions"
)

var _ permissions.Repo = (*FakePermissionRepo)(nil)

// FakePermissionRepo is a thread-safe in-memory permission matrix keyed by
// (role, resource).
type FakePermissionRepo struct {
	entries map[permissionKey]*permissions.Entry
	lock    sync.RWMutex
}

type permissionKey struct {
	roleID     string
	resourceID string
}

func NewFakePermissionRepo() *FakePermissionRepo {
	return &FakePermissionRepo{
		entries: make(map[permissionKey]*permissions.Entry),
	}
}

// Upsert stores an entry, replacing any previous entry for the same pair.
func (pr *FakePermissionRepo) Upsert(entry *permissions.Entry) {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	copied := *entry
	pr.entries[permissionKey{entry.RoleID, entry.ResourceID}] = &copied
}

func (pr *FakePermissionRepo) Find(_ context.Context, roleID, resourceID string) (*permissions.Entry, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	entry, ok := pr.entries[permissionKey{roleID, resourceID}]
	if !ok {
		return nil, permissions.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}
