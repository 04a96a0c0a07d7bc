package middlewares_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/domain/user"
	"github.com/jobhive/jobhive/internal/http/middlewares"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	verifySessionFn     func(token string) (*auth.Claims, error)
	verifyEmailActionFn func(token, purpose string) (*auth.Claims, error)
}

func (f *fakeVerifier) VerifySession(token string) (*auth.Claims, error) {
	if f.verifySessionFn != nil {
		return f.verifySessionFn(token)
	}
	return &auth.Claims{}, nil
}

func (f *fakeVerifier) VerifyEmailAction(token, purpose string) (*auth.Claims, error) {
	if f.verifyEmailActionFn != nil {
		return f.verifyEmailActionFn(token, purpose)
	}
	return &auth.Claims{}, nil
}

type fakeResolver struct {
	resolveFn func(ctx context.Context, subject string, roles ...user.Role) (*user.User, error)
}

func (f *fakeResolver) Resolve(ctx context.Context, subject string, roles ...user.Role) (*user.User, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, subject, roles...)
	}
	return &user.User{ID: subject, Status: true}, nil
}

func sessionClaims(subject, email string, role user.Role) *auth.Claims {
	c := &auth.Claims{Email: email, Role: string(role), Scope: auth.ScopeSession}
	c.Subject = subject
	return c
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": true})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	return body
}

func TestRequireAuthMissingToken(t *testing.T) {
	m := middlewares.NewAuthMiddleware(&fakeVerifier{}, &fakeResolver{})

	r := gin.New()
	r.GET("/secure", m.RequireAuth(), okHandler)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "UNAUTHORIZED" {
		t.Fatalf("message = %v, want UNAUTHORIZED", body["message"])
	}
	if body["longMessage"] != "missing bearer token" {
		t.Fatalf("longMessage = %v, want %q", body["longMessage"], "missing bearer token")
	}
}

func TestRequireAuthDistinguishesFailures(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		longMessage string
	}{
		{"malformed", auth.ErrTokenMalformed, "malformed token"},
		{"expired", auth.ErrTokenExpired, "token expired"},
		{"not_yet_valid", auth.ErrTokenNotYetValid, "token not yet valid"},
		{"bad_signature", auth.ErrTokenInvalid, "invalid token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifier := &fakeVerifier{
				verifySessionFn: func(string) (*auth.Claims, error) { return nil, tc.err },
			}
			m := middlewares.NewAuthMiddleware(verifier, &fakeResolver{})

			r := gin.New()
			r.GET("/secure", m.RequireAuth(), okHandler)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			req.Header.Set("Authorization", "Bearer whatever")
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			body := decodeEnvelope(t, rec)
			if body["longMessage"] != tc.longMessage {
				t.Fatalf("longMessage = %v, want %q", body["longMessage"], tc.longMessage)
			}
		})
	}
}

func TestRequireAuthSetsIdentityContext(t *testing.T) {
	verifier := &fakeVerifier{
		verifySessionFn: func(string) (*auth.Claims, error) {
			return sessionClaims("u-1", "sue@example.com", user.RoleSeeker), nil
		},
	}
	m := middlewares.NewAuthMiddleware(verifier, &fakeResolver{})

	var gotID, gotEmail, gotRole string
	r := gin.New()
	r.GET("/secure", m.RequireAuth(), func(c *gin.Context) {
		gotID, _ = middlewares.UserIDFromContext(c)
		gotEmail, _ = middlewares.EmailFromContext(c)
		gotRole, _ = middlewares.RoleFromContext(c)
		okHandler(c)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotID != "u-1" || gotEmail != "sue@example.com" || gotRole != "seeker" {
		t.Fatalf("context = (%q, %q, %q), want (u-1, sue@example.com, seeker)", gotID, gotEmail, gotRole)
	}
}

func TestRequireEmailActionTokenFromQuery(t *testing.T) {
	var gotPurpose string
	verifier := &fakeVerifier{
		verifyEmailActionFn: func(token, purpose string) (*auth.Claims, error) {
			gotPurpose = purpose
			c := &auth.Claims{Scope: auth.ScopeEmailAction, Purpose: purpose}
			c.Subject = "u-9"
			return c, nil
		},
	}
	m := middlewares.NewAuthMiddleware(verifier, &fakeResolver{})

	r := gin.New()
	r.GET("/verify", m.RequireEmailActionToken(auth.PurposeVerifyEmail), okHandler)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/verify?token=tok-123", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotPurpose != auth.PurposeVerifyEmail {
		t.Fatalf("purpose = %q, want %q", gotPurpose, auth.PurposeVerifyEmail)
	}
}
