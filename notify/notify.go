package notify

import (
	"context"

	"github.com/jrsteele09/go-access-server/users"
	"github.com/rs/zerolog/log"
)

// Notifier delivers secrets to users out of band. Callers treat delivery as
// fire-and-forget: a failed delivery never rolls back the login flow.
type Notifier interface {
	// NotifyCode delivers a one-time verification code.
	NotifyCode(ctx context.Context, user *users.User, code string) error
	// NotifySecret delivers the initial secret of a freshly created account.
	NotifySecret(ctx context.Context, user *users.User, secret string) error
}

// LogNotifier writes deliveries to the log instead of sending them.
// Development only: the plaintext code ends up in the log stream.
type LogNotifier struct{}

var _ Notifier = LogNotifier{}

func (LogNotifier) NotifyCode(_ context.Context, user *users.User, code string) error {
	log.Info().
		Str("email", user.Email).
		Str("code", code).
		Msg("verification code (log delivery)")
	return nil
}

func (LogNotifier) NotifySecret(_ context.Context, user *users.User, secret string) error {
	log.Info().
		Str("email", user.Email).
		Str("secret", secret).
		Msg("initial account secret (log delivery)")
	return nil
}
