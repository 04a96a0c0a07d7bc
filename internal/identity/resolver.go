// Package identity resolves authenticated token subjects into live user
// records, so guards downstream see the current role and status rather than
// whatever was true when the token was minted.
package identity

import (
	"context"

	"github.com/jobhive/jobhive/internal/domain/user"
)

// UserGetter is the slice of the store the resolver needs.
type UserGetter interface {
	GetUserByID(ctx context.Context, id string, roles ...user.Role) (*user.User, error)
}

type Resolver struct {
	users UserGetter
}

func NewResolver(users UserGetter) *Resolver {
	return &Resolver{users: users}
}

// Resolve loads the user behind a verified token subject, optionally
// constrained to a role set. A subject whose account was deleted after the
// token was issued comes back as user.ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, subject string, roles ...user.Role) (*user.User, error) {
	return r.users.GetUserByID(ctx, subject, roles...)
}
