package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token scopes. Session tokens and email-action tokens are signed with
// independent secrets and carry the scope claim, so they can never be
// presented interchangeably.
const (
	ScopeSession     = "session"
	ScopeEmailAction = "email_action"
)

// Email-action purposes.
const (
	PurposeVerifyEmail = "verify-email"
)

var (
	ErrTokenMalformed   = errors.New("token malformed")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrTokenInvalid     = errors.New("token invalid")
)

type Claims struct {
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Scope   string `json:"scope"`
	Purpose string `json:"purpose,omitempty"`
	JTI     string `json:"jti"`
	jwt.RegisteredClaims
}

type Manager struct {
	sessionSecret []byte
	emailSecret   []byte
	sessionTTL    time.Duration
	emailTTL      time.Duration
}

func NewManager(sessionSecret, emailSecret string, sessionTTL, emailTTL time.Duration) *Manager {
	return &Manager{
		sessionSecret: []byte(sessionSecret),
		emailSecret:   []byte(emailSecret),
		sessionTTL:    sessionTTL,
		emailTTL:      emailTTL,
	}
}

func (m *Manager) IssueSession(userID, email, role string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Email: email,
		Role:  role,
		Scope: ScopeSession,
		JTI:   uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.sessionTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.sessionSecret)
}

func (m *Manager) IssueEmailAction(userID, purpose string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Scope:   ScopeEmailAction,
		Purpose: purpose,
		JTI:     uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.emailTTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.emailSecret)
}

func (m *Manager) VerifySession(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, m.sessionSecret, ScopeSession)
}

func (m *Manager) VerifyEmailAction(tokenStr, purpose string) (*Claims, error) {
	claims, err := m.parse(tokenStr, m.emailSecret, ScopeEmailAction)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Decode extracts claims without verifying the signature. For non-trusted
// introspection only; never use the result for authorization decisions.
func (m *Manager) Decode(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims)
	if err != nil {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

func (m *Manager) parse(tokenStr string, secret []byte, scope string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Scope != scope {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// classify maps jwt/v5 parse errors onto the distinguished sentinels the
// guard chain reports.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return ErrTokenNotYetValid
	default:
		return ErrTokenInvalid
	}
}
