package logins_test

import (
	"context"
	"testing"
	"time"

	"github.com/jrsteele09/go-access-server/logins"
	"github.com/stretchr/testify/require"
)

func TestFindPendingMatchesExactUnconsumedAttempt(t *testing.T) {
	repo := logins.NewInMemoryRepo(0)
	ctx := context.Background()

	id, err := repo.Create(ctx, &logins.Attempt{UserID: "user-1", Code: "482913", CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	attempt, err := repo.FindPending(ctx, "user-1", "482913")
	require.NoError(t, err)
	require.Equal(t, id, attempt.ID)
	require.False(t, attempt.CodeConsumed)
	require.Empty(t, attempt.Token)

	_, err = repo.FindPending(ctx, "user-1", "000000")
	require.ErrorIs(t, err, logins.ErrNotFound)

	_, err = repo.FindPending(ctx, "user-2", "482913")
	require.ErrorIs(t, err, logins.ErrNotFound)
}

func TestMarkVerifiedConsumesAtMostOnce(t *testing.T) {
	repo := logins.NewInMemoryRepo(0)
	ctx := context.Background()

	id, err := repo.Create(ctx, &logins.Attempt{UserID: "user-1", Code: "482913", CreatedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, repo.MarkVerified(ctx, id, "signed-token"))

	// The attempt no longer matches as pending
	_, err = repo.FindPending(ctx, "user-1", "482913")
	require.ErrorIs(t, err, logins.ErrNotFound)

	// A second consumption is rejected
	err = repo.MarkVerified(ctx, id, "another-token")
	require.ErrorIs(t, err, logins.ErrNotFound)
}

func TestMarkVerifiedUnknownAttempt(t *testing.T) {
	repo := logins.NewInMemoryRepo(0)
	err := repo.MarkVerified(context.Background(), "no-such-id", "token")
	require.ErrorIs(t, err, logins.ErrNotFound)
}

func TestPendingAttemptExpires(t *testing.T) {
	repo := logins.NewInMemoryRepo(25 * time.Millisecond)
	ctx := context.Background()

	_, err := repo.Create(ctx, &logins.Attempt{UserID: "user-1", Code: "482913", CreatedAt: time.Now()})
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = repo.FindPending(ctx, "user-1", "482913")
	require.ErrorIs(t, err, logins.ErrNotFound)
}

func TestMultiplePendingAttemptsStayIndependent(t *testing.T) {
	repo := logins.NewInMemoryRepo(0)
	ctx := context.Background()

	firstID, err := repo.Create(ctx, &logins.Attempt{UserID: "user-1", Code: "111111", CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &logins.Attempt{UserID: "user-1", Code: "222222", CreatedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, repo.MarkVerified(ctx, firstID, "token-1"))

	// The second attempt is still redeemable
	attempt, err := repo.FindPending(ctx, "user-1", "222222")
	require.NoError(t, err)
	require.Equal(t, "222222", attempt.Code)
}
