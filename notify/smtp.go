package notify

import (
	"context"
	"crypto/tls"
	"fmt"

	mail "github.com/go-mail/mail"
	"github.com/jrsteele09/go-access-server/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// SMTPNotifier delivers codes and secrets by email.
type SMTPNotifier struct {
	Host               string
	Port               int
	From               string
	User               string
	Pass               string
	InsecureSkipVerify bool // dev only
}

var _ Notifier = (*SMTPNotifier)(nil)

// NewSMTPNotifier creates an SMTPNotifier with the given server parameters.
func NewSMTPNotifier(host string, port int, from, user, pass string) *SMTPNotifier {
	return &SMTPNotifier{
		Host: host,
		Port: port,
		From: from,
		User: user,
		Pass: pass,
	}
}

func (n *SMTPNotifier) NotifyCode(ctx context.Context, user *users.User, code string) error {
	subject := "Your verification code"
	body := fmt.Sprintf("Hello %s,\n\nYour verification code is: %s\n", user.DisplayName(), code)
	return n.send(ctx, user.Email, subject, body)
}

func (n *SMTPNotifier) NotifySecret(ctx context.Context, user *users.User, secret string) error {
	subject := "Your account credentials"
	body := fmt.Sprintf("Hello %s,\n\nYour account has been created. Your initial secret is: %s\nPlease change it after your first login.\n", user.DisplayName(), secret)
	return n.send(ctx, user.Email, subject, body)
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", n.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := mail.NewDialer(n.Host, n.Port, n.User, n.Pass)
	d.TLSConfig = &tls.Config{
		ServerName:         n.Host,
		InsecureSkipVerify: n.InsecureSkipVerify,
	}

	// go-mail has no context support; honour cancellation around the dial.
	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()
	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "[SMTPNotifier.send] cancelled")
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Str("host", n.Host).Str("to", to).Msg("smtp delivery failed")
			return errors.Wrap(err, "[SMTPNotifier.send] DialAndSend")
		}
	}
	return nil
}
