package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jrsteele09/go-access-server/auth"
	"github.com/jrsteele09/go-access-server/credentials"
	"github.com/jrsteele09/go-access-server/logins"
	fakepermissionrepo "github.com/jrsteele09/go-access-server/permissions/repofake"
	"github.com/jrsteele09/go-access-server/token"
	"github.com/jrsteele09/go-access-server/users"
	fakeuserrepo "github.com/jrsteele09/go-access-server/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	testPepper     = "test-pepper"
	testJWTSecret  = "test-signing-secret"
	testUserEmail  = "john.doe@example.com"
	testUserSecret = "Password123"
	testRoleID     = "role-1"
)

// codeRecorder captures out-of-band deliveries so tests can redeem the codes
// the service generated.
type codeRecorder struct {
	codes   chan string
	secrets chan string
}

func newCodeRecorder() *codeRecorder {
	return &codeRecorder{
		codes:   make(chan string, 8),
		secrets: make(chan string, 8),
	}
}

func (r *codeRecorder) NotifyCode(_ context.Context, _ *users.User, code string) error {
	r.codes <- code
	return nil
}

func (r *codeRecorder) NotifySecret(_ context.Context, _ *users.User, secret string) error {
	r.secrets <- secret
	return nil
}

func (r *codeRecorder) waitForCode(t *testing.T) string {
	t.Helper()
	select {
	case code := <-r.codes:
		return code
	case <-time.After(2 * time.Second):
		t.Fatal("no code was delivered")
		return ""
	}
}

func (r *codeRecorder) waitForSecret(t *testing.T) string {
	t.Helper()
	select {
	case secret := <-r.secrets:
		return secret
	case <-time.After(2 * time.Second):
		t.Fatal("no secret was delivered")
		return ""
	}
}

// testFixture holds all test dependencies
type testFixture struct {
	userRepo       *fakeuserrepo.FakeUserRepo
	permissionRepo *fakepermissionrepo.FakePermissionRepo
	loginRepo      *logins.InMemoryRepo
	hasher         *credentials.Hasher
	tokens         *token.Service
	recorder       *codeRecorder
	service        *auth.SecurityService
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	ur := fakeuserrepo.NewFakeUserRepo()
	pr := fakepermissionrepo.NewFakePermissionRepo()
	lr := logins.NewInMemoryRepo(0)
	hasher := credentials.NewHasher(testPepper, credentials.WithIterations(16))
	recorder := newCodeRecorder()

	tokens, err := token.New(token.NewHMACSigner(testJWTSecret))
	require.NoError(t, err)

	repos := auth.Repos{
		Users:       ur,
		Permissions: pr,
		Logins:      lr,
	}

	service, err := auth.NewSecurityService(repos, hasher, tokens, recorder)
	require.NoError(t, err)

	return &testFixture{
		userRepo:       ur,
		permissionRepo: pr,
		loginRepo:      lr,
		hasher:         hasher,
		tokens:         tokens,
		recorder:       recorder,
		service:        service,
	}
}

func (f *testFixture) createTestUser(t *testing.T) *users.User {
	t.Helper()

	user := &users.User{
		RoleID:     testRoleID,
		Email:      testUserEmail,
		SecretHash: f.hasher.Hash(testUserSecret),
		FirstName:  "John",
		LastName:   "Doe",
	}
	id, err := f.userRepo.Create(context.Background(), user)
	require.NoError(t, err)
	user.ID = id
	return user
}

func TestIdentifyWithValidCredentials(t *testing.T) {
	f := setupTestFixture(t)
	created := f.createTestUser(t)
	ctx := context.Background()

	user, err := f.service.Identify(ctx, credentials.Credentials{Email: testUserEmail, Secret: testUserSecret})
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
	require.Empty(t, user.SecretHash, "returned user must be sanitized")

	// Exactly one unconsumed attempt exists, redeemable with the delivered code
	code := f.recorder.waitForCode(t)
	require.Len(t, code, 6)

	attempt, err := f.loginRepo.FindPending(ctx, created.ID, code)
	require.NoError(t, err)
	require.False(t, attempt.CodeConsumed)
	require.Empty(t, attempt.Token)
	require.False(t, attempt.TokenActive)
}

func TestIdentifyFailsUniformly(t *testing.T) {
	f := setupTestFixture(t)
	f.createTestUser(t)
	ctx := context.Background()

	// Wrong secret for a known identifier
	_, wrongSecretErr := f.service.Identify(ctx, credentials.Credentials{Email: testUserEmail, Secret: "WrongSecret1"})
	require.ErrorIs(t, wrongSecretErr, auth.InvalidCredentialsErr)

	// Unknown identifier entirely
	_, unknownUserErr := f.service.Identify(ctx, credentials.Credentials{Email: "nobody@example.com", Secret: testUserSecret})
	require.ErrorIs(t, unknownUserErr, auth.InvalidCredentialsErr)

	// Indistinguishable outcomes
	require.Equal(t, wrongSecretErr, unknownUserErr)
}

func TestVerifyCodeIssuesTokenOnce(t *testing.T) {
	f := setupTestFixture(t)
	created := f.createTestUser(t)
	ctx := context.Background()

	_, err := f.service.Identify(ctx, credentials.Credentials{Email: testUserEmail, Secret: testUserSecret})
	require.NoError(t, err)
	code := f.recorder.waitForCode(t)

	// A wrong code is rejected without consuming anything
	_, _, err = f.service.VerifyCode(ctx, created.ID, "000000")
	require.ErrorIs(t, err, auth.InvalidCodeErr)

	// The right code succeeds
	user, signedToken, err := f.service.VerifyCode(ctx, created.ID, code)
	require.NoError(t, err)
	require.Empty(t, user.SecretHash)
	require.NotEmpty(t, signedToken)

	claims, err := f.tokens.Parse(signedToken)
	require.NoError(t, err)
	require.Equal(t, testRoleID, claims.RoleID)
	require.Equal(t, testUserEmail, claims.Email)
	require.Equal(t, "John Doe", claims.Name)

	// The code is consumed: a second redemption fails
	_, _, err = f.service.VerifyCode(ctx, created.ID, code)
	require.ErrorIs(t, err, auth.InvalidCodeErr)
}

func TestVerifyCodeForUnknownUser(t *testing.T) {
	f := setupTestFixture(t)

	_, _, err := f.service.VerifyCode(context.Background(), "no-such-user", "123456")
	require.ErrorIs(t, err, auth.InvalidCodeErr)
}

func TestVerifyCodeSurvivesMarkVerifiedFailure(t *testing.T) {
	f := setupTestFixture(t)
	created := f.createTestUser(t)
	ctx := context.Background()

	_, err := f.service.Identify(ctx, credentials.Credentials{Email: testUserEmail, Secret: testUserSecret})
	require.NoError(t, err)
	code := f.recorder.waitForCode(t)

	// Wrap the login repo so MarkVerified fails after the token was minted
	failing := &failingLoginRepo{Repo: f.loginRepo}
	repos := auth.Repos{Users: f.userRepo, Permissions: f.permissionRepo, Logins: failing}
	service, err := auth.NewSecurityService(repos, f.hasher, f.tokens, f.recorder)
	require.NoError(t, err)

	// The token is still returned despite the persistence failure
	_, signedToken, err := service.VerifyCode(ctx, created.ID, code)
	require.NoError(t, err)
	require.NotEmpty(t, signedToken)
}

type failingLoginRepo struct {
	logins.Repo
}

func (r *failingLoginRepo) MarkVerified(context.Context, string, string) error {
	return errors.New("store unavailable")
}

func TestCreateAccountGeneratesWorkingSecret(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateAccount(ctx, &users.User{
		RoleID:    testRoleID,
		Email:     "new.user@example.com",
		FirstName: "New",
		LastName:  "User",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Empty(t, created.SecretHash)

	secret := f.recorder.waitForSecret(t)
	require.Len(t, secret, 15)

	// The delivered secret identifies the account
	user, err := f.service.Identify(ctx, credentials.Credentials{Email: "new.user@example.com", Secret: secret})
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
}
