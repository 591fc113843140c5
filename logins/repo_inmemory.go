package logins

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is a thread-safe in-memory attempt store. Attempts expire
// after the configured TTL, so a stale one-time code stops matching instead
// of staying valid forever. A TTL of zero disables expiry, matching stores
// that keep attempts for audit.
type InMemoryRepo struct {
	mu       sync.Mutex
	attempts *cache.Cache
}

// NewInMemoryRepo creates an in-memory login attempt repository. ttl bounds
// how long an unconsumed code stays redeemable.
func NewInMemoryRepo(ttl time.Duration) *InMemoryRepo {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &InMemoryRepo{
		attempts: cache.New(ttl, 10*time.Minute),
	}
}

func (r *InMemoryRepo) Create(_ context.Context, attempt *Attempt) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *attempt
	if copied.ID == "" {
		copied.ID = uuid.New().String()
	}
	r.attempts.Set(copied.ID, &copied, cache.DefaultExpiration)
	return copied.ID, nil
}

func (r *InMemoryRepo) FindPending(_ context.Context, userID, code string) (*Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.attempts.Items() {
		attempt, ok := item.Object.(*Attempt)
		if !ok {
			continue
		}
		if attempt.UserID == userID && attempt.Code == code && !attempt.CodeConsumed {
			copied := *attempt
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepo) MarkVerified(_ context.Context, attemptID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, found := r.attempts.Get(attemptID)
	if !found {
		return ErrNotFound
	}
	attempt, ok := stored.(*Attempt)
	if !ok || attempt.CodeConsumed {
		return ErrNotFound
	}

	copied := *attempt
	copied.CodeConsumed = true
	copied.Token = token
	copied.TokenActive = true
	// Verified attempts carry the audit trail; keep them past the code TTL.
	r.attempts.Set(attemptID, &copied, cache.NoExpiration)
	return nil
}
