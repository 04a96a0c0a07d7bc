package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobhive/jobhive/internal/domain/contact"
	"github.com/jobhive/jobhive/internal/http/middlewares"
	"github.com/jobhive/jobhive/internal/store/mongostore"
)

type ContactsStore interface {
	CreateContact(ctx context.Context, c *contact.Contact) error
	GetContact(ctx context.Context, id string) (*contact.Projection, error)
	ListContacts(ctx context.Context, page, limit int) (mongostore.Page[contact.Projection], error)
	ListAllContacts(ctx context.Context) ([]contact.Projection, error)
	DeleteContact(ctx context.Context, id string) error
}

type ContactsHandler struct {
	store ContactsStore
}

func NewContactsHandler(store ContactsStore) *ContactsHandler {
	return &ContactsHandler{store: store}
}

func (h *ContactsHandler) Create(c *gin.Context) {
	var req contact.CreateRequest
	if !BindJSON(c, &req) {
		return
	}

	subject, ok := middlewares.UserIDFromContext(c)
	if !ok {
		RespondUnauthorized(c, "missing identity context")
		return
	}

	msg := &contact.Contact{
		ID:        uuid.NewString(),
		UserID:    subject,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.store.CreateContact(c.Request.Context(), msg); err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, msg)
}

func (h *ContactsHandler) List(c *gin.Context) {
	q := parseListQuery(c)

	if q.Paginated {
		page, err := h.store.ListContacts(c.Request.Context(), q.Page, q.Limit)
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondOK(c, page)
		return
	}

	contacts, err := h.store.ListAllContacts(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, contacts)
}

func (h *ContactsHandler) Get(c *gin.Context) {
	p, err := h.store.GetContact(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, p)
}

func (h *ContactsHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
