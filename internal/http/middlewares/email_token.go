package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/jobhive/jobhive/internal/http/envelope"
)

// RequireEmailActionToken guards the email verification endpoints. The token
// arrives as a ?token= query parameter (links in mail) with a bearer header
// fallback, and must carry the email-action scope and the expected purpose.
func (m *AuthMiddleware) RequireEmailActionToken(purpose string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.Query("token")
		if raw == "" {
			raw = bearerToken(c)
		}
		if raw == "" {
			envelope.Abort(c, envelope.Unauthorized, "missing action token")
			return
		}

		claims, err := m.jwt.VerifyEmailAction(raw, purpose)
		if err != nil {
			envelope.Abort(c, envelope.Unauthorized, tokenFailureReason(err))
			return
		}

		c.Set(ctxUserIDKey, claims.Subject)
		c.Set(ctxEmailKey, claims.Email)

		c.Next()
	}
}
