package mailer

import (
	"context"
	"log/slog"
)

// LogMailer stands in for SMTP in development: every send becomes a log line.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendVerification(ctx context.Context, in VerificationInput) error {
	m.logger.InfoContext(ctx, "mail.verification", "email", in.Email, "name", in.Name, "token", in.Token)
	return nil
}

func (m *LogMailer) SendPasswordChanged(ctx context.Context, in PasswordChangedInput) error {
	m.logger.InfoContext(ctx, "mail.password_changed", "email", in.Email)
	return nil
}

func (m *LogMailer) SendAccountDeleted(ctx context.Context, in AccountDeletedInput) error {
	m.logger.InfoContext(ctx, "mail.account_deleted", "email", in.Email)
	return nil
}

func (m *LogMailer) SendApplicationSubmitted(ctx context.Context, in ApplicationSubmittedInput) error {
	m.logger.InfoContext(ctx, "mail.application_submitted", "email", in.Email, "job", in.JobTitle)
	return nil
}
