package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobhive/jobhive/internal/cache"
	"github.com/jobhive/jobhive/internal/domain/category"
	"github.com/jobhive/jobhive/internal/store/mongostore"
	"github.com/jobhive/jobhive/internal/utils"
)

type CategoriesStore interface {
	CreateCategory(ctx context.Context, c *category.Category) error
	GetCategory(ctx context.Context, id string) (*category.Projection, error)
	ListCategories(ctx context.Context) ([]category.Projection, error)
	ListCategoriesPage(ctx context.Context, page, limit int) (mongostore.Page[category.Projection], error)
	UpdateCategory(ctx context.Context, id string, name, slug string, description *string) error
	DeleteCategoryCascade(ctx context.Context, id string) (int64, error)
}

const categoryListCacheKey = "categories:all"

type CategoriesHandler struct {
	store CategoriesStore
	cache *cache.Cache[[]category.Projection]
}

func NewCategoriesHandler(store CategoriesStore, ttl time.Duration) *CategoriesHandler {
	return &CategoriesHandler{
		store: store,
		cache: cache.New[[]category.Projection](ttl),
	}
}

// InvalidateList drops the cached full listing. The cached projections embed
// each category's jobs and jobCount, so job writes have to call this too, not
// just category writes.
func (h *CategoriesHandler) InvalidateList() {
	h.cache.Delete(categoryListCacheKey)
}

// List serves the full listing from the TTL cache; the paginated shape skips
// the cache since every page/limit pair would need its own entry.
func (h *CategoriesHandler) List(c *gin.Context) {
	q := parseListQuery(c)

	if q.Paginated {
		page, err := h.store.ListCategoriesPage(c.Request.Context(), q.Page, q.Limit)
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondOK(c, page)
		return
	}

	if cached, ok := h.cache.Get(categoryListCacheKey); ok {
		RespondOK(c, cached)
		return
	}

	categories, err := h.store.ListCategories(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	h.cache.Set(categoryListCacheKey, categories)
	RespondOK(c, categories)
}

func (h *CategoriesHandler) Get(c *gin.Context) {
	p, err := h.store.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, p)
}

func (h *CategoriesHandler) Create(c *gin.Context) {
	var req category.CreateRequest
	if !BindJSON(c, &req) {
		return
	}

	slug := utils.Slugify(req.Name)
	if slug == "" {
		RespondBadRequest(c, "name must contain at least one letter or digit")
		return
	}

	now := time.Now().UTC()
	cat := &category.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateCategory(c.Request.Context(), cat); err != nil {
		RespondError(c, err)
		return
	}

	h.InvalidateList()
	RespondCreated(c, cat)
}

func (h *CategoriesHandler) Update(c *gin.Context) {
	var req category.UpdateRequest
	if !BindJSON(c, &req) {
		return
	}
	if req.Name == nil && req.Description == nil {
		RespondBadRequest(c, "nothing to update")
		return
	}

	var name, slug string
	if req.Name != nil {
		name = *req.Name
		slug = utils.Slugify(name)
		if slug == "" {
			RespondBadRequest(c, "name must contain at least one letter or digit")
			return
		}
	}

	id := c.Param("id")
	if err := h.store.UpdateCategory(c.Request.Context(), id, name, slug, req.Description); err != nil {
		RespondError(c, err)
		return
	}

	h.InvalidateList()

	p, err := h.store.GetCategory(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, p)
}

func (h *CategoriesHandler) Delete(c *gin.Context) {
	jobsDeleted, err := h.store.DeleteCategoryCascade(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}

	h.InvalidateList()
	RespondOK(c, gin.H{"deleted": true, "jobsDeleted": jobsDeleted})
}
