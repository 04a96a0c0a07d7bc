package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobhive/jobhive/internal/domain/category"
	"github.com/jobhive/jobhive/internal/domain/job"
	"github.com/jobhive/jobhive/internal/http/middlewares"
	"github.com/jobhive/jobhive/internal/store/mongostore"
)

type JobsStore interface {
	CreateJob(ctx context.Context, j *job.Job) error
	GetJob(ctx context.Context, id string) (*job.Job, error)
	GetJobProjection(ctx context.Context, id string) (*job.Projection, error)
	ListJobs(ctx context.Context, f job.ListFilter, page, limit int) (mongostore.Page[job.Projection], error)
	ListAllJobs(ctx context.Context, f job.ListFilter) ([]job.Projection, error)
	UpdateJob(ctx context.Context, id string, req job.UpdateRequest) error
	SetJobFeatured(ctx context.Context, id string, featured bool) error
	DeleteJob(ctx context.Context, id string) error
	GetCategoryRecord(ctx context.Context, id string) (*category.Category, error)
}

type JobsHandler struct {
	store JobsStore
	// onWrite runs after every successful job write. The category listing
	// cache embeds jobs and jobCount, so the router points this at
	// CategoriesHandler.InvalidateList.
	onWrite func()
}

func NewJobsHandler(store JobsStore, onWrite func()) *JobsHandler {
	return &JobsHandler{store: store, onWrite: onWrite}
}

func (h *JobsHandler) notifyWrite() {
	if h.onWrite != nil {
		h.onWrite()
	}
}

func publicJobFilter(c *gin.Context) job.ListFilter {
	f := job.ListFilter{PublishedOnly: true}
	if v := c.Query("category"); v != "" {
		f.CategoryID = &v
	}
	if v := c.Query("featured"); v == "true" || v == "false" {
		featured := v == "true"
		f.Featured = &featured
	}
	if v := c.Query("q"); v != "" {
		f.Query = &v
	}
	return f
}

func (h *JobsHandler) List(c *gin.Context) {
	q := parseListQuery(c)
	f := publicJobFilter(c)

	if q.Paginated {
		page, err := h.store.ListJobs(c.Request.Context(), f, q.Page, q.Limit)
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondOK(c, page)
		return
	}

	jobs, err := h.store.ListAllJobs(c.Request.Context(), f)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, jobs)
}

func (h *JobsHandler) Get(c *gin.Context) {
	p, err := h.store.GetJobProjection(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, p)
}

func (h *JobsHandler) Create(c *gin.Context) {
	var req job.CreateRequest
	if !BindJSON(c, &req) {
		return
	}

	subject, ok := middlewares.UserIDFromContext(c)
	if !ok {
		RespondUnauthorized(c, "missing identity context")
		return
	}

	// a job may not reference a category that does not exist
	if _, err := h.store.GetCategoryRecord(c.Request.Context(), req.CategoryID); err != nil {
		RespondError(c, err)
		return
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}

	now := time.Now().UTC()
	j := &job.Job{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		PostedBy:    subject, // always the token subject, never the payload
		Location:    req.Location,
		Type:        req.Type,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
		IsPublished: published,
		Status:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateJob(c.Request.Context(), j); err != nil {
		RespondError(c, err)
		return
	}
	h.notifyWrite()
	RespondCreated(c, j)
}

// requireOwnedJob loads the job and enforces postedBy == token subject.
// Returns nil after writing the response when the check fails.
func (h *JobsHandler) requireOwnedJob(c *gin.Context, id string) *job.Job {
	j, err := h.store.GetJob(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return nil
	}
	subject, _ := middlewares.UserIDFromContext(c)
	if j.PostedBy != subject {
		RespondForbidden(c, "not the job owner")
		return nil
	}
	return j
}

func (h *JobsHandler) Update(c *gin.Context) {
	var req job.UpdateRequest
	if !BindJSON(c, &req) {
		return
	}

	id := c.Param("id")
	if h.requireOwnedJob(c, id) == nil {
		return
	}

	if req.CategoryID != nil {
		if _, err := h.store.GetCategoryRecord(c.Request.Context(), *req.CategoryID); err != nil {
			RespondError(c, err)
			return
		}
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMax < *req.SalaryMin {
		RespondBadRequest(c, "salaryMax must be greater than or equal to salaryMin")
		return
	}

	if err := h.store.UpdateJob(c.Request.Context(), id, req); err != nil {
		RespondError(c, err)
		return
	}
	h.notifyWrite()

	p, err := h.store.GetJobProjection(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, p)
}

func (h *JobsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if h.requireOwnedJob(c, id) == nil {
		return
	}

	if err := h.store.DeleteJob(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	h.notifyWrite()
	RespondOK(c, gin.H{"deleted": true})
}

// Mine lists the caller's own postings, drafts included.
func (h *JobsHandler) Mine(c *gin.Context) {
	subject, ok := middlewares.UserIDFromContext(c)
	if !ok {
		RespondUnauthorized(c, "missing identity context")
		return
	}

	q := parseListQuery(c)
	f := job.ListFilter{PostedBy: &subject}

	if q.Paginated {
		page, err := h.store.ListJobs(c.Request.Context(), f, q.Page, q.Limit)
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondOK(c, page)
		return
	}

	jobs, err := h.store.ListAllJobs(c.Request.Context(), f)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, jobs)
}

type featureRequest struct {
	IsFeatured *bool `json:"isFeatured" binding:"required"`
}

// Feature is the admin curation toggle.
func (h *JobsHandler) Feature(c *gin.Context) {
	var req featureRequest
	if !BindJSON(c, &req) {
		return
	}

	id := c.Param("id")
	if err := h.store.SetJobFeatured(c.Request.Context(), id, *req.IsFeatured); err != nil {
		RespondError(c, err)
		return
	}
	h.notifyWrite()
	RespondOK(c, gin.H{"isFeatured": *req.IsFeatured})
}
