package pg

import (
	"context"
	"database/sql"

	"github.com/jrsteele09/go-access-server/permissions"
)

var _ permissions.Repo = (*permissionStore)(nil)

type permissionStore struct{ db *sql.DB }

func (s *permissionStore) Find(ctx context.Context, roleID, resourceID string) (*permissions.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		select role_id, resource_id, can_create, can_update, can_list, can_delete, can_export
		from role_permission where role_id=$1 and resource_id=$2`,
		roleID, resourceID)

	var e permissions.Entry
	if err := row.Scan(
		&e.RoleID, &e.ResourceID,
		&e.Create, &e.Update, &e.List, &e.Delete, &e.Export,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, permissions.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
