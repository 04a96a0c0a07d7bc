package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/domain/user"
	"github.com/jobhive/jobhive/internal/http/middlewares"
)

func authedMiddleware(role user.Role, resolver *fakeResolver) *middlewares.AuthMiddleware {
	verifier := &fakeVerifier{
		verifySessionFn: func(string) (*auth.Claims, error) {
			return sessionClaims("u-1", "sue@example.com", role), nil
		},
	}
	return middlewares.NewAuthMiddleware(verifier, resolver)
}

func doAuthed(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireRoleAllowsMatchingRole(t *testing.T) {
	resolver := &fakeResolver{
		resolveFn: func(_ context.Context, subject string, _ ...user.Role) (*user.User, error) {
			return &user.User{ID: subject, Role: user.RoleAdmin, Status: true}, nil
		},
	}
	m := authedMiddleware(user.RoleAdmin, resolver)

	var identity *user.User
	r := gin.New()
	r.GET("/admin", m.RequireAuth(), m.RequireRole(user.RoleAdmin), func(c *gin.Context) {
		identity, _ = middlewares.IdentityFromContext(c)
		okHandler(c)
	})

	rec := doAuthed(r, http.MethodGet, "/admin")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if identity == nil || identity.ID != "u-1" {
		t.Fatalf("identity not set on context: %+v", identity)
	}
}

func TestRequireRoleRejectsWrongRole(t *testing.T) {
	resolver := &fakeResolver{
		resolveFn: func(_ context.Context, subject string, _ ...user.Role) (*user.User, error) {
			return &user.User{ID: subject, Role: user.RoleSeeker, Status: true}, nil
		},
	}
	m := authedMiddleware(user.RoleSeeker, resolver)

	r := gin.New()
	r.GET("/admin", m.RequireAuth(), m.RequireRole(user.RoleAdmin), okHandler)

	rec := doAuthed(r, http.MethodGet, "/admin")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireRoleRejectsDisabledAccount(t *testing.T) {
	resolver := &fakeResolver{
		resolveFn: func(_ context.Context, subject string, _ ...user.Role) (*user.User, error) {
			return &user.User{ID: subject, Role: user.RoleAdmin, Status: true, IsRestricted: true}, nil
		},
	}
	m := authedMiddleware(user.RoleAdmin, resolver)

	r := gin.New()
	r.GET("/admin", m.RequireAuth(), m.RequireRole(user.RoleAdmin), okHandler)

	rec := doAuthed(r, http.MethodGet, "/admin")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	body := decodeEnvelope(t, rec)
	if body["longMessage"] != "account_disabled" {
		t.Fatalf("longMessage = %v, want account_disabled", body["longMessage"])
	}
}

func TestRequireRoleDeletedSubjectIsNotFound(t *testing.T) {
	resolver := &fakeResolver{
		resolveFn: func(context.Context, string, ...user.Role) (*user.User, error) {
			return nil, user.ErrNotFound
		},
	}
	m := authedMiddleware(user.RoleAdmin, resolver)

	r := gin.New()
	r.GET("/admin", m.RequireAuth(), m.RequireRole(user.RoleAdmin), okHandler)

	rec := doAuthed(r, http.MethodGet, "/admin")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRequireSameUserBlocksOtherIDs(t *testing.T) {
	m := authedMiddleware(user.RoleSeeker, &fakeResolver{})

	r := gin.New()
	r.GET("/users/:id", m.RequireAuth(), m.RequireSameUser("id"), okHandler)

	if rec := doAuthed(r, http.MethodGet, "/users/u-1"); rec.Code != http.StatusOK {
		t.Fatalf("own record: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := doAuthed(r, http.MethodGet, "/users/u-2"); rec.Code != http.StatusForbidden {
		t.Fatalf("other record: status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestRequireSameUserOrAdminSkipsLookupForOwner(t *testing.T) {
	resolved := false
	resolver := &fakeResolver{
		resolveFn: func(_ context.Context, subject string, _ ...user.Role) (*user.User, error) {
			resolved = true
			return &user.User{ID: subject, Role: user.RoleAdmin, Status: true}, nil
		},
	}
	m := authedMiddleware(user.RoleSeeker, resolver)

	r := gin.New()
	r.GET("/users/:id", m.RequireAuth(), m.RequireSameUserOrAdmin("id"), okHandler)

	if rec := doAuthed(r, http.MethodGet, "/users/u-1"); rec.Code != http.StatusOK {
		t.Fatalf("own record: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if resolved {
		t.Fatal("owner path should not hit the store")
	}

	if rec := doAuthed(r, http.MethodGet, "/users/u-2"); rec.Code != http.StatusOK {
		t.Fatalf("admin on other record: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !resolved {
		t.Fatal("non-owner path must resolve the caller")
	}
}

func TestRequireSameUserOrAdminRejectsNonAdmin(t *testing.T) {
	resolver := &fakeResolver{
		resolveFn: func(_ context.Context, subject string, _ ...user.Role) (*user.User, error) {
			return &user.User{ID: subject, Role: user.RoleSeeker, Status: true}, nil
		},
	}
	m := authedMiddleware(user.RoleSeeker, resolver)

	r := gin.New()
	r.GET("/users/:id", m.RequireAuth(), m.RequireSameUserOrAdmin("id"), okHandler)

	if rec := doAuthed(r, http.MethodGet, "/users/u-2"); rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}
