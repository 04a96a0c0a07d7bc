package middlewares

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jobhive/jobhive/internal/domain/user"
	"github.com/jobhive/jobhive/internal/http/envelope"
)

// RequireRole resolves the token subject against the store and checks the
// live record, so a role change, ban, or deletion takes effect immediately
// instead of at token expiry. Runs after RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := UserIDFromContext(c)
		if !ok || subject == "" {
			envelope.Abort(c, envelope.Unauthorized, "missing identity context")
			return
		}

		u, err := m.users.Resolve(c.Request.Context(), subject)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				envelope.Abort(c, envelope.NotFound, "account no longer exists")
				return
			}
			envelope.Abort(c, envelope.Internal, "could not resolve identity")
			return
		}

		if u.IsRestricted || !u.Status {
			envelope.Abort(c, envelope.Forbidden, "account_disabled")
			return
		}

		if len(roles) > 0 && !hasRole(u.Role, roles) {
			envelope.Abort(c, envelope.Forbidden, "insufficient role")
			return
		}

		c.Set(ctxIdentityKey, u)
		c.Set(ctxRoleKey, string(u.Role))

		c.Next()
	}
}

func hasRole(have user.Role, allowed []user.Role) bool {
	for _, r := range allowed {
		if have == r {
			return true
		}
	}
	return false
}
