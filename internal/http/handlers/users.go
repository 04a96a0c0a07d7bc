package handlers

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jobhive/jobhive/internal/domain/user"
	"github.com/jobhive/jobhive/internal/http/middlewares"
	"github.com/jobhive/jobhive/internal/mailer"
	"github.com/jobhive/jobhive/internal/security"
	"github.com/jobhive/jobhive/internal/store/mongostore"
)

type UsersStore interface {
	GetUserByID(ctx context.Context, id string, roles ...user.Role) (*user.User, error)
	GetUserProjection(ctx context.Context, id string) (*user.Projection, error)
	ListUsers(ctx context.Context, page, limit int) (mongostore.Page[user.Projection], error)
	ListAllUsers(ctx context.Context) ([]user.Projection, error)
	UpdateUser(ctx context.Context, id string, req user.UpdateRequest, profileCompleted bool) error
	SetUserPassword(ctx context.Context, id, passwordHash string) error
	DeleteUser(ctx context.Context, id string) error
}

type UsersHandler struct {
	store  UsersStore
	mail   mailer.Mailer
	logger *slog.Logger
}

func NewUsersHandler(store UsersStore, mail mailer.Mailer, logger *slog.Logger) *UsersHandler {
	return &UsersHandler{store: store, mail: mail, logger: logger}
}

func (h *UsersHandler) List(c *gin.Context) {
	q := parseListQuery(c)

	if q.Paginated {
		page, err := h.store.ListUsers(c.Request.Context(), q.Page, q.Limit)
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondOK(c, page)
		return
	}

	users, err := h.store.ListAllUsers(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, users)
}

func (h *UsersHandler) Get(c *gin.Context) {
	p, err := h.store.GetUserProjection(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, p)
}

// callerIsAdmin decides on the caller's live record, never the token claim:
// the owner path of the ownership guard skips the store, and a demoted admin
// holding a stale session token must not keep the privileged fields.
func (h *UsersHandler) callerIsAdmin(c *gin.Context) bool {
	u, ok := middlewares.IdentityFromContext(c)
	if !ok {
		subject, found := middlewares.UserIDFromContext(c)
		if !found {
			return false
		}
		var err error
		u, err = h.store.GetUserByID(c.Request.Context(), subject)
		if err != nil {
			return false
		}
	}
	return u.Role == user.RoleAdmin && u.Status && !u.IsRestricted
}

func (h *UsersHandler) Update(c *gin.Context) {
	var req user.UpdateRequest
	if !BindJSON(c, &req) {
		return
	}

	if req.HasAdminFields() && !h.callerIsAdmin(c) {
		RespondForbidden(c, "role, status and isRestricted are admin-only")
		return
	}

	id := c.Param("id")
	subject, _ := middlewares.UserIDFromContext(c)
	// an owner filling in profile fields completes their profile
	profileCompleted := subject == id && req.HasProfileFields()

	if err := h.store.UpdateUser(c.Request.Context(), id, req, profileCompleted); err != nil {
		RespondError(c, err)
		return
	}

	p, err := h.store.GetUserProjection(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, p)
}

func (h *UsersHandler) ChangePassword(c *gin.Context) {
	var req user.ChangePasswordRequest
	if !BindJSON(c, &req) {
		return
	}

	id := c.Param("id")
	u, err := h.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if !security.CheckPassword(u.Password, req.CurrentPassword) {
		RespondUnauthorized(c, "current password is incorrect")
		return
	}

	hash, err := security.HashPassword(req.NewPassword)
	if err != nil {
		RespondError(c, err)
		return
	}
	if err := h.store.SetUserPassword(c.Request.Context(), id, hash); err != nil {
		RespondError(c, err)
		return
	}

	err = h.mail.SendPasswordChanged(c.Request.Context(), mailer.PasswordChangedInput{Email: u.Email, Name: u.Name})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "password_changed_mail_failed", "error", err, "user_id", id)
	}

	RespondOK(c, gin.H{"changed": true})
}

func (h *UsersHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	u, err := h.store.GetUserByID(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	if err := h.store.DeleteUser(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}

	err = h.mail.SendAccountDeleted(c.Request.Context(), mailer.AccountDeletedInput{Email: u.Email, Name: u.Name})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "account_deleted_mail_failed", "error", err, "user_id", id)
	}

	RespondOK(c, gin.H{"deleted": true})
}
