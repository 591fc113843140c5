// Package pg implements the repository contracts on PostgreSQL through
// database/sql. Open the handle with the pgx stdlib driver:
//
//	import _ "github.com/jackc/pgx/v5/stdlib"
//	db, err := sql.Open("pgx", dsn)
//
// schema.sql in this directory holds the expected table layout.
package pg

import (
	"database/sql"

	"github.com/jrsteele09/go-access-server/logins"
	"github.com/jrsteele09/go-access-server/permissions"
	"github.com/jrsteele09/go-access-server/users"
)

// Store bundles the SQL-backed repositories over one connection pool.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Users() users.Repo             { return &userStore{db: s.db} }
func (s *Store) Permissions() permissions.Repo { return &permissionStore{db: s.db} }
func (s *Store) Logins() logins.Repo           { return &loginStore{db: s.db} }
