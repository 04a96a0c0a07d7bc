package auth_test

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/jobhive/jobhive/internal/auth"
)

const (
	sessionSecret = "test-session-secret"
	emailSecret   = "test-email-secret"
)

func newManager() *auth.Manager {
	return auth.NewManager(sessionSecret, emailSecret, time.Hour, 15*time.Minute)
}

func TestSessionRoundTrip(t *testing.T) {
	m := newManager()

	token, err := m.IssueSession("u-1", "sue@example.com", "seeker")
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}

	claims, err := m.VerifySession(token)
	if err != nil {
		t.Fatalf("VerifySession: %v", err)
	}
	if claims.Subject != "u-1" {
		t.Errorf("sub = %q, want u-1", claims.Subject)
	}
	if claims.Email != "sue@example.com" {
		t.Errorf("email = %q, want sue@example.com", claims.Email)
	}
	if claims.Role != "seeker" {
		t.Errorf("role = %q, want seeker", claims.Role)
	}
	if claims.Scope != auth.ScopeSession {
		t.Errorf("scope = %q, want %q", claims.Scope, auth.ScopeSession)
	}
	if claims.JTI == "" {
		t.Error("jti is empty")
	}
}

func TestEmailActionRoundTrip(t *testing.T) {
	m := newManager()

	token, err := m.IssueEmailAction("u-1", auth.PurposeVerifyEmail)
	if err != nil {
		t.Fatalf("IssueEmailAction: %v", err)
	}

	claims, err := m.VerifyEmailAction(token, auth.PurposeVerifyEmail)
	if err != nil {
		t.Fatalf("VerifyEmailAction: %v", err)
	}
	if claims.Subject != "u-1" {
		t.Errorf("sub = %q, want u-1", claims.Subject)
	}

	if _, err := m.VerifyEmailAction(token, "reset-password"); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("wrong purpose: err = %v, want ErrTokenInvalid", err)
	}
}

func TestScopesAreNotInterchangeable(t *testing.T) {
	m := newManager()

	session, _ := m.IssueSession("u-1", "sue@example.com", "seeker")
	action, _ := m.IssueEmailAction("u-1", auth.PurposeVerifyEmail)

	if _, err := m.VerifyEmailAction(session, auth.PurposeVerifyEmail); err == nil {
		t.Error("session token accepted as email action token")
	}
	if _, err := m.VerifySession(action); err == nil {
		t.Error("email action token accepted as session token")
	}

	// even with identical secrets the scope claim must separate them
	same := auth.NewManager("shared", "shared", time.Hour, time.Hour)
	action, _ = same.IssueEmailAction("u-1", auth.PurposeVerifyEmail)
	if _, err := same.VerifySession(action); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestWrongSecretIsInvalid(t *testing.T) {
	m := newManager()
	other := auth.NewManager("another-secret", emailSecret, time.Hour, time.Hour)

	token, _ := m.IssueSession("u-1", "sue@example.com", "seeker")
	if _, err := other.VerifySession(token); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestExpiredToken(t *testing.T) {
	m := auth.NewManager(sessionSecret, emailSecret, -time.Minute, time.Hour)

	token, _ := m.IssueSession("u-1", "sue@example.com", "seeker")
	if _, err := m.VerifySession(token); !errors.Is(err, auth.ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestNotYetValidToken(t *testing.T) {
	now := time.Now().UTC()
	claims := auth.Claims{
		Scope: auth.ScopeSession,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "u-1",
			IssuedAt:  jwtlib.NewNumericDate(now),
			NotBefore: jwtlib.NewNumericDate(now.Add(time.Hour)),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(2 * time.Hour)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(sessionSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := newManager().VerifySession(token); !errors.Is(err, auth.ErrTokenNotYetValid) {
		t.Errorf("err = %v, want ErrTokenNotYetValid", err)
	}
}

func TestMalformedToken(t *testing.T) {
	m := newManager()
	if _, err := m.VerifySession("not.a.token"); !errors.Is(err, auth.ErrTokenMalformed) {
		t.Errorf("err = %v, want ErrTokenMalformed", err)
	}
}

func TestDecodeSkipsSignature(t *testing.T) {
	m := newManager()
	token, _ := m.IssueSession("u-1", "sue@example.com", "poster")

	claims, err := m.Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if claims.Subject != "u-1" || claims.Role != "poster" {
		t.Errorf("claims = %+v, want sub=u-1 role=poster", claims)
	}

	if _, err := m.Decode("garbage"); !errors.Is(err, auth.ErrTokenMalformed) {
		t.Errorf("err = %v, want ErrTokenMalformed", err)
	}
}
