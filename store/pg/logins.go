package pg

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-access-server/logins"
)

var _ logins.Repo = (*loginStore)(nil)

type loginStore struct{ db *sql.DB }

func (s *loginStore) Create(ctx context.Context, attempt *logins.Attempt) (string, error) {
	if attempt.ID == "" {
		attempt.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		insert into login_attempt(id, user_id, code, code_consumed, token, token_active, created_at)
		values($1,$2,$3,$4,$5,$6,$7)`,
		attempt.ID, attempt.UserID, attempt.Code,
		attempt.CodeConsumed, attempt.Token, attempt.TokenActive, attempt.CreatedAt,
	)
	if err != nil {
		return "", err
	}
	return attempt.ID, nil
}

func (s *loginStore) FindPending(ctx context.Context, userID, code string) (*logins.Attempt, error) {
	// Newest first keeps the lookup unambiguous if several unconsumed
	// attempts share a code.
	row := s.db.QueryRowContext(ctx, `
		select id, user_id, code, code_consumed, token, token_active, created_at
		from login_attempt
		where user_id=$1 and code=$2 and not code_consumed
		order by created_at desc limit 1`,
		userID, code)

	var a logins.Attempt
	if err := row.Scan(
		&a.ID, &a.UserID, &a.Code,
		&a.CodeConsumed, &a.Token, &a.TokenActive, &a.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, logins.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *loginStore) MarkVerified(ctx context.Context, attemptID, token string) error {
	// The code_consumed guard makes concurrent verifications of the same
	// attempt race safely: exactly one update wins.
	res, err := s.db.ExecContext(ctx, `
		update login_attempt
		set code_consumed=true, token=$2, token_active=true
		where id=$1 and not code_consumed`,
		attemptID, token)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return logins.ErrNotFound
	}
	return nil
}
