package config

import "strconv"

type SMTPConfig interface {
	GetSmtpHost() string
	GetSmtpPort() int
	GetSmtpAccount() string
	GetSmtpPassword() string
	GetSmtpFrom() string
}

type SMTP struct{}

var _ SMTPConfig = SMTP{}

// GetSmtpHost returns the SMTP relay host. Empty means email delivery is
// disabled and codes are written to the log instead.
func (SMTP) GetSmtpHost() string {
	return GetEnv("SMTP_HOST", "")
}

func (SMTP) GetSmtpPort() int {
	port, err := strconv.Atoi(GetEnv("SMTP_PORT", "587"))
	if err != nil {
		return 587
	}
	return port
}

func (SMTP) GetSmtpAccount() string {
	return GetEnv("SMTP_ACCOUNT", "")
}

func (SMTP) GetSmtpPassword() string {
	return GetEnv("SMTP_PASSWORD", "")
}

func (s SMTP) GetSmtpFrom() string {
	return GetEnv("SMTP_FROM", s.GetSmtpAccount())
}
