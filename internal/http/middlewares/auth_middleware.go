package middlewares

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/domain/user"
	"github.com/jobhive/jobhive/internal/http/envelope"
)

// Keep these interfaces small so tests can fake them easily.

type TokenVerifier interface {
	VerifySession(token string) (*auth.Claims, error)
	VerifyEmailAction(token, purpose string) (*auth.Claims, error)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, subject string, roles ...user.Role) (*user.User, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	users IdentityResolver
}

func NewAuthMiddleware(jwt TokenVerifier, users IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
}

// RequireAuth verifies the session token and stashes the claims on the
// context. It does not touch the database; role and status freshness is the
// role guard's job.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			envelope.Abort(c, envelope.Unauthorized, "missing bearer token")
			return
		}

		claims, err := m.jwt.VerifySession(raw)
		if err != nil {
			envelope.Abort(c, envelope.Unauthorized, tokenFailureReason(err))
			return
		}

		SetAuthContext(c, claims.Subject, claims.Email, claims.Role)

		c.Next()
	}
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenMalformed):
		return "malformed token"
	case errors.Is(err, auth.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return "token not yet valid"
	default:
		return "invalid token"
	}
}
