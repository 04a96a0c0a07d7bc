package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/domain/user"
	"github.com/jobhive/jobhive/internal/http/middlewares"
	"github.com/jobhive/jobhive/internal/mailer"
	"github.com/jobhive/jobhive/internal/security"
)

type AuthStore interface {
	CreateUser(ctx context.Context, u *user.User) error
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetUserByID(ctx context.Context, id string, roles ...user.Role) (*user.User, error)
	GetUserProjection(ctx context.Context, id string) (*user.Projection, error)
	SetUserVerified(ctx context.Context, id string) error
}

type TokenIssuer interface {
	IssueSession(userID, email, role string) (string, error)
	IssueEmailAction(userID, purpose string) (string, error)
	Decode(token string) (*auth.Claims, error)
}

type CookieConfig struct {
	Domain string
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	store  AuthStore
	tokens TokenIssuer
	mail   mailer.Mailer
	cookie CookieConfig
	logger *slog.Logger
}

func NewAuthHandler(store AuthStore, tokens TokenIssuer, mail mailer.Mailer, cookie CookieConfig, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, mail: mail, cookie: cookie, logger: logger}
}

// Session cookies are role-scoped so a seeker and a poster session can
// coexist in the same browser.
func sessionCookieName(role user.Role) string {
	return "jobhive__" + string(role) + "_session"
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, role user.Role, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName(role), token, int(h.cookie.MaxAge.Seconds()), "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context, role user.Role) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName(role), "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) sendVerificationMail(ctx context.Context, u *user.User) {
	token, err := h.tokens.IssueEmailAction(u.ID, auth.PurposeVerifyEmail)
	if err != nil {
		h.logger.ErrorContext(ctx, "verification_token_issue_failed", "error", err, "user_id", u.ID)
		return
	}
	err = h.mail.SendVerification(ctx, mailer.VerificationInput{
		Email: u.Email,
		Name:  u.Name,
		Token: token,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "verification_mail_failed", "error", err, "user_id", u.ID)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if !BindJSON(c, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		Role:      req.Role, // binding restricts to seeker|poster; admin is seeded, never registered
		Status:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.CreateUser(c.Request.Context(), u); err != nil {
		RespondError(c, err)
		return
	}

	h.sendVerificationMail(c.Request.Context(), u)

	token, err := h.tokens.IssueSession(u.ID, u.Email, string(u.Role))
	if err != nil {
		RespondError(c, err)
		return
	}
	h.setSessionCookie(c, u.Role, token)

	RespondCreated(c, gin.H{"token": token, "user": user.NewProjection(u)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !BindJSON(c, &req) {
		return
	}

	u, err := h.store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondUnauthorized(c, "invalid credentials")
			return
		}
		RespondError(c, err)
		return
	}
	if !security.CheckPassword(u.Password, req.Password) {
		RespondUnauthorized(c, "invalid credentials")
		return
	}
	if u.IsRestricted || !u.Status {
		RespondForbidden(c, "account_disabled")
		return
	}

	token, err := h.tokens.IssueSession(u.ID, u.Email, string(u.Role))
	if err != nil {
		RespondError(c, err)
		return
	}
	h.setSessionCookie(c, u.Role, token)

	RespondOK(c, gin.H{"token": token, "user": user.NewProjection(u)})
}

// Logout clears every role-scoped cookie; the caller may hold any of them.
func (h *AuthHandler) Logout(c *gin.Context) {
	for _, role := range []user.Role{user.RoleAdmin, user.RolePoster, user.RoleSeeker} {
		h.clearSessionCookie(c, role)
	}
	RespondOK(c, gin.H{"loggedOut": true})
}

// Session introspects the role-scoped cookies without verifying signatures.
// It exists so a frontend can restore UI state; it grants nothing.
func (h *AuthHandler) Session(c *gin.Context) {
	sessions := make([]gin.H, 0, 3)
	for _, role := range []user.Role{user.RoleAdmin, user.RolePoster, user.RoleSeeker} {
		raw, err := c.Cookie(sessionCookieName(role))
		if err != nil || raw == "" {
			continue
		}
		claims, err := h.tokens.Decode(raw)
		if err != nil {
			continue
		}
		sessions = append(sessions, gin.H{
			"role":      role,
			"sub":       claims.Subject,
			"email":     claims.Email,
			"expiresAt": claims.ExpiresAt,
		})
	}

	if len(sessions) == 0 {
		RespondUnauthorized(c, "no active session")
		return
	}
	RespondOK(c, gin.H{"sessions": sessions})
}

func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := middlewares.UserIDFromContext(c)
	if !ok {
		RespondUnauthorized(c, "missing identity context")
		return
	}

	p, err := h.store.GetUserProjection(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, p)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	id, ok := middlewares.UserIDFromContext(c)
	if !ok {
		RespondUnauthorized(c, "missing identity context")
		return
	}

	if err := h.store.SetUserVerified(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"verified": true})
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	id, ok := middlewares.UserIDFromContext(c)
	if !ok {
		RespondUnauthorized(c, "missing identity context")
		return
	}

	u, err := h.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if u.IsVerified {
		RespondBadRequest(c, "email already verified")
		return
	}

	h.sendVerificationMail(c.Request.Context(), u)
	RespondOK(c, gin.H{"sent": true})
}
