package pg

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-access-server/users"
)

var _ users.Repo = (*userStore)(nil)

type userStore struct{ db *sql.DB }

const userColumns = `id, role_id, email, secret_hash, first_name, middle_name, last_name, second_last_name, phone`

func (s *userStore) Create(ctx context.Context, u *users.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`insert into app_user(`+userColumns+`) values($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		u.ID, u.RoleID, u.Email, u.SecretHash,
		u.FirstName, u.MiddleName, u.LastName, u.SecondLastName, u.Phone,
	)
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

func scanUser(row *sql.Row) (*users.User, error) {
	var u users.User
	if err := row.Scan(
		&u.ID, &u.RoleID, &u.Email, &u.SecretHash,
		&u.FirstName, &u.MiddleName, &u.LastName, &u.SecondLastName, &u.Phone,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, users.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *userStore) GetByID(ctx context.Context, id string) (*users.User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from app_user where id=$1`, id)
	return scanUser(row)
}

func (s *userStore) GetByCredentials(ctx context.Context, email, secretHash string) (*users.User, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+userColumns+` from app_user where email=$1 and secret_hash=$2`, email, secretHash)
	return scanUser(row)
}

func (s *userStore) Update(ctx context.Context, u *users.User) error {
	res, err := s.db.ExecContext(ctx, `
		update app_user
		set role_id=$2, email=$3, secret_hash=$4, first_name=$5, middle_name=$6,
		    last_name=$7, second_last_name=$8, phone=$9
		where id=$1`,
		u.ID, u.RoleID, u.Email, u.SecretHash,
		u.FirstName, u.MiddleName, u.LastName, u.SecondLastName, u.Phone,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (s *userStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from app_user where id=$1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (s *userStore) List(ctx context.Context, offset, limit int) ([]*users.User, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`select `+userColumns+` from app_user order by id asc offset $1 limit $2`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]*users.User, 0)
	for rows.Next() {
		var u users.User
		if err := rows.Scan(
			&u.ID, &u.RoleID, &u.Email, &u.SecretHash,
			&u.FirstName, &u.MiddleName, &u.LastName, &u.SecondLastName, &u.Phone,
		); err != nil {
			return nil, err
		}
		res = append(res, &u)
	}
	return res, rows.Err()
}
