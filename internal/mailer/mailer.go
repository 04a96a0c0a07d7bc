// Package mailer sends the transactional notifications the API emits:
// verification links, password-change and account-deletion notices, and
// new-application alerts for posters. Sends are advisory; callers log
// failures and move on rather than failing the request.
package mailer

import "context"

type VerificationInput struct {
	Email string
	Name  string
	Token string
}

type PasswordChangedInput struct {
	Email string
	Name  string
}

type AccountDeletedInput struct {
	Email string
	Name  string
}

type ApplicationSubmittedInput struct {
	Email         string // the poster
	PosterName    string
	ApplicantName string
	JobTitle      string
}

type Mailer interface {
	SendVerification(ctx context.Context, in VerificationInput) error
	SendPasswordChanged(ctx context.Context, in PasswordChangedInput) error
	SendAccountDeleted(ctx context.Context, in AccountDeletedInput) error
	SendApplicationSubmitted(ctx context.Context, in ApplicationSubmittedInput) error
}
