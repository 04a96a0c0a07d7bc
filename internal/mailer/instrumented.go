package mailer

import (
	"context"

	"github.com/jobhive/jobhive/internal/observability"
)

// WithMetrics wraps a Mailer so every send lands in the mail counter.
func WithMetrics(inner Mailer, prom *observability.Prom) Mailer {
	if prom == nil {
		return inner
	}
	return &instrumented{inner: inner, prom: prom}
}

type instrumented struct {
	inner Mailer
	prom  *observability.Prom
}

func (m *instrumented) count(template string, err error) error {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.prom.MailsSent.WithLabelValues(template, result).Inc()
	return err
}

func (m *instrumented) SendVerification(ctx context.Context, in VerificationInput) error {
	return m.count("verification", m.inner.SendVerification(ctx, in))
}

func (m *instrumented) SendPasswordChanged(ctx context.Context, in PasswordChangedInput) error {
	return m.count("password_changed", m.inner.SendPasswordChanged(ctx, in))
}

func (m *instrumented) SendAccountDeleted(ctx context.Context, in AccountDeletedInput) error {
	return m.count("account_deleted", m.inner.SendAccountDeleted(ctx, in))
}

func (m *instrumented) SendApplicationSubmitted(ctx context.Context, in ApplicationSubmittedInput) error {
	return m.count("application_submitted", m.inner.SendApplicationSubmitted(ctx, in))
}
