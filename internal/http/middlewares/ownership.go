package middlewares

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jobhive/jobhive/internal/domain/user"
	"github.com/jobhive/jobhive/internal/http/envelope"
)

// RequireSameUser only lets a caller operate on their own record: the route
// parameter must match the token subject. Runs after RequireAuth.
func (m *AuthMiddleware) RequireSameUser(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := UserIDFromContext(c)
		if !ok || subject == "" {
			envelope.Abort(c, envelope.Unauthorized, "missing identity context")
			return
		}
		if c.Param(param) != subject {
			envelope.Abort(c, envelope.Forbidden, "not the resource owner")
			return
		}
		c.Next()
	}
}

// RequireSameUserOrAdmin is the relaxed variant: owners pass on the id match
// alone; anyone else must resolve to a live admin. The store is only hit for
// the non-owner path.
func (m *AuthMiddleware) RequireSameUserOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, ok := UserIDFromContext(c)
		if !ok || subject == "" {
			envelope.Abort(c, envelope.Unauthorized, "missing identity context")
			return
		}
		if c.Param(param) == subject {
			c.Next()
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
		if u.Role != user.RoleAdmin {
			envelope.Abort(c, envelope.Forbidden, "not the resource owner")
			return
		}

		c.Set(ctxIdentityKey, u)
		c.Set(ctxRoleKey, string(u.Role))

		c.Next()
	}
}
