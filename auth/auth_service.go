package auth

import (
	"context"
	"time"

	"github.com/jrsteele09/go-access-server/credentials"
	"github.com/jrsteele09/go-access-server/logins"
	"github.com/jrsteele09/go-access-server/notify"
	"github.com/jrsteele09/go-access-server/permissions"
	"github.com/jrsteele09/go-access-server/token"
	"github.com/jrsteele09/go-access-server/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	// oneTimeCodeLength matches the 6-character codes delivered out of band.
	oneTimeCodeLength = 6
	// initialSecretLength is the length of generated account secrets.
	initialSecretLength = 15

	notifyTimeout = 10 * time.Second
)

// Repos holds all repository dependencies for the SecurityService
type Repos struct {
	Users       users.Repo       // Repository for user records
	Permissions permissions.Repo // Read-only permission matrix
	Logins      logins.Repo      // Repository for login attempts
}

// SecurityService governs the login lifecycle: credential identification,
// pending second factor, code verification and token issuance.
type SecurityService struct {
	repos    Repos
	hasher   *credentials.Hasher
	tokens   *token.Service
	notifier notify.Notifier
	nowTime  func() time.Time // nowTime function (injectable for testing)
}

// SecurityServiceOption defines a function type to modify the SecurityService instance.
type SecurityServiceOption func(*SecurityService)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) SecurityServiceOption {
	return func(ss *SecurityService) {
		ss.nowTime = nowFunc
	}
}

// NewSecurityService initializes a SecurityService with required dependencies.
func NewSecurityService(
	repos Repos,
	hasher *credentials.Hasher,
	tokens *token.Service,
	notifier notify.Notifier,
	options ...SecurityServiceOption,
) (*SecurityService, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewSecurityService] Users repo is required")
	}
	if repos.Permissions == nil {
		return nil, errors.New("[NewSecurityService] Permissions repo is required")
	}
	if repos.Logins == nil {
		return nil, errors.New("[NewSecurityService] Logins repo is required")
	}
	if hasher == nil {
		return nil, errors.New("[NewSecurityService] hasher is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewSecurityService] token service is required")
	}
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}

	securityService := &SecurityService{
		repos:    repos,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		nowTime:  time.Now,
	}

	for _, opt := range options {
		opt(securityService)
	}

	return securityService, nil
}

// Identify checks the presented credentials, opens a pending login attempt
// with a fresh one-time code, hands the code to the notifier and returns the
// sanitized user. Unknown identifier and wrong secret are indistinguishable.
func (ss *SecurityService) Identify(ctx context.Context, creds credentials.Credentials) (*users.User, error) {
	digest := ss.hasher.Hash(creds.Secret)

	user, err := ss.repos.Users.GetByCredentials(ctx, creds.Email, digest)
	if errors.Is(err, users.ErrNotFound) {
		return nil, InvalidCredentialsErr
	}
	if err != nil {
		return nil, errors.Wrap(err, "[SecurityService.Identify] GetByCredentials")
	}

	code, err := credentials.GenerateSecret(oneTimeCodeLength)
	if err != nil {
		return nil, errors.Wrap(err, "[SecurityService.Identify] GenerateSecret")
	}

	attempt := &logins.Attempt{
		UserID:    user.ID,
		Code:      code,
		CreatedAt: ss.nowTime(),
	}
	if _, err := ss.repos.Logins.Create(ctx, attempt); err != nil {
		return nil, errors.Wrap(err, "[SecurityService.Identify] Logins.Create")
	}

	go ss.deliverCode(user.Sanitized(), code)

	return user.Sanitized(), nil
}

// VerifyCode redeems a one-time code: it consumes the matching pending
// attempt, mints an access token and persists it on the attempt. A failure
// to persist the verified state is logged and swallowed - the token has
// already been minted and discarding it would punish the user for an audit
// write, so availability wins over audit consistency here.
func (ss *SecurityService) VerifyCode(ctx context.Context, userID, code string) (*users.User, string, error) {
	attempt, err := ss.repos.Logins.FindPending(ctx, userID, code)
	if errors.Is(err, logins.ErrNotFound) {
		return nil, "", InvalidCodeErr
	}
	if err != nil {
		return nil, "", errors.Wrap(err, "[SecurityService.VerifyCode] FindPending")
	}

	user, err := ss.repos.Users.GetByID(ctx, userID)
	if errors.Is(err, users.ErrNotFound) {
		// The attempt references a user that no longer exists; treat it the
		// same as a wrong code.
		return nil, "", InvalidCodeErr
	}
	if err != nil {
		return nil, "", errors.Wrap(err, "[SecurityService.VerifyCode] GetByID")
	}

	signedToken, err := ss.tokens.Mint(user)
	if err != nil {
		return nil, "", errors.Wrap(err, "[SecurityService.VerifyCode] Mint")
	}

	if err := ss.repos.Logins.MarkVerified(ctx, attempt.ID, signedToken); err != nil {
		log.Error().Err(err).
			Str("attempt_id", attempt.ID).
			Str("user_id", userID).
			Msg("failed to persist verified login attempt; token returned anyway")
	}

	return user.Sanitized(), signedToken, nil
}

// CreateAccount stores a new user with a generated initial secret and hands
// the secret to the notifier. Only the digest is persisted.
func (ss *SecurityService) CreateAccount(ctx context.Context, user *users.User) (*users.User, error) {
	secret, err := credentials.GenerateSecret(initialSecretLength)
	if err != nil {
		return nil, errors.Wrap(err, "[SecurityService.CreateAccount] GenerateSecret")
	}
	user.SecretHash = ss.hasher.Hash(secret)

	id, err := ss.repos.Users.Create(ctx, user)
	if err != nil {
		return nil, errors.Wrap(err, "[SecurityService.CreateAccount] Users.Create")
	}
	user.ID = id

	go ss.deliverSecret(user.Sanitized(), secret)

	return user.Sanitized(), nil
}

// deliverCode and deliverSecret run detached from the request: delivery is
// fire-and-forget and must not block or fail the login flow.
func (ss *SecurityService) deliverCode(user *users.User, code string) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := ss.notifier.NotifyCode(ctx, user, code); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("one-time code delivery failed")
	}
}

func (ss *SecurityService) deliverSecret(user *users.User, secret string) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := ss.notifier.NotifySecret(ctx, user, secret); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("initial secret delivery failed")
	}
}
