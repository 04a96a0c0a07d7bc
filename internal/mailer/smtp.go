package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// BaseURL is the public frontend origin; verification links point at it.
	BaseURL string
}

type SMTPMailer struct {
	cfg  SMTPConfig
	auth smtp.Auth
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{cfg: cfg, auth: auth}
}

var (
	verificationTmpl = template.Must(template.New("verification").Parse(
		`<p>Hi {{.Name}},</p>
<p>Welcome to JobHive. Please confirm your email address to activate your account:</p>
<p><a href="{{.Link}}">Verify my email</a></p>
<p>The link expires in 15 minutes. If you did not sign up, you can ignore this message.</p>`))

	passwordChangedTmpl = template.Must(template.New("password_changed").Parse(
		`<p>Hi {{.Name}},</p>
<p>Your JobHive password was just changed. If this was not you, reply to this message immediately.</p>`))

	accountDeletedTmpl = template.Must(template.New("account_deleted").Parse(
		`<p>Hi {{.Name}},</p>
<p>Your JobHive account and its data have been deleted. We're sorry to see you go.</p>`))

	applicationSubmittedTmpl = template.Must(template.New("application_submitted").Parse(
		`<p>Hi {{.PosterName}},</p>
<p>{{.ApplicantName}} just applied to your listing <strong>{{.JobTitle}}</strong>.</p>
<p>Sign in to review the application.</p>`))
)

func (m *SMTPMailer) SendVerification(ctx context.Context, in VerificationInput) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", strings.TrimRight(m.cfg.BaseURL, "/"), in.Token)
	return m.send(ctx, in.Email, "Verify your JobHive email", verificationTmpl, map[string]string{
		"Name": in.Name,
		"Link": link,
	})
}

func (m *SMTPMailer) SendPasswordChanged(ctx context.Context, in PasswordChangedInput) error {
	return m.send(ctx, in.Email, "Your JobHive password was changed", passwordChangedTmpl, in)
}

func (m *SMTPMailer) SendAccountDeleted(ctx context.Context, in AccountDeletedInput) error {
	return m.send(ctx, in.Email, "Your JobHive account was deleted", accountDeletedTmpl, in)
}

func (m *SMTPMailer) SendApplicationSubmitted(ctx context.Context, in ApplicationSubmittedInput) error {
	return m.send(ctx, in.Email, "New application: "+in.JobTitle, applicationSubmittedTmpl, in)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject string, tmpl *template.Template, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}

	msg := buildMessage(m.cfg.From, to, subject, body.String())
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	if err := smtp.SendMail(addr, m.auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send %s to %s: %w", tmpl.Name(), to, err)
	}
	return nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	b := &strings.Builder{}
	fmt.Fprintf(b, "From: %s\r\n", from)
	fmt.Fprintf(b, "To: %s\r\n", to)
	fmt.Fprintf(b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
