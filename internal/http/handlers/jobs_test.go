package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jobhive/jobhive/internal/domain/category"
	"github.com/jobhive/jobhive/internal/domain/job"
	"github.com/jobhive/jobhive/internal/http/handlers"
	"github.com/jobhive/jobhive/internal/store/mongostore"
)

type fakeJobsStore struct {
	createFn      func(ctx context.Context, j *job.Job) error
	getFn         func(ctx context.Context, id string) (*job.Job, error)
	getProjFn     func(ctx context.Context, id string) (*job.Projection, error)
	listFn        func(ctx context.Context, f job.ListFilter, page, limit int) (mongostore.Page[job.Projection], error)
	listAllFn     func(ctx context.Context, f job.ListFilter) ([]job.Projection, error)
	updateFn      func(ctx context.Context, id string, req job.UpdateRequest) error
	setFeaturedFn func(ctx context.Context, id string, featured bool) error
	deleteFn      func(ctx context.Context, id string) error
	getCategoryFn func(ctx context.Context, id string) (*category.Category, error)
}

func (f *fakeJobsStore) CreateJob(ctx context.Context, j *job.Job) error {
	if f.createFn != nil {
		return f.createFn(ctx, j)
	}
	return nil
}

func (f *fakeJobsStore) GetJob(ctx context.Context, id string) (*job.Job, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return &job.Job{ID: id}, nil
}

func (f *fakeJobsStore) GetJobProjection(ctx context.Context, id string) (*job.Projection, error) {
	if f.getProjFn != nil {
		return f.getProjFn(ctx, id)
	}
	return &job.Projection{ID: id}, nil
}

func (f *fakeJobsStore) ListJobs(ctx context.Context, fl job.ListFilter, page, limit int) (mongostore.Page[job.Projection], error) {
	if f.listFn != nil {
		return f.listFn(ctx, fl, page, limit)
	}
	return mongostore.Page[job.Projection]{Items: []job.Projection{}, Page: 1}, nil
}

func (f *fakeJobsStore) ListAllJobs(ctx context.Context, fl job.ListFilter) ([]job.Projection, error) {
	if f.listAllFn != nil {
		return f.listAllFn(ctx, fl)
	}
	return []job.Projection{}, nil
}

func (f *fakeJobsStore) UpdateJob(ctx context.Context, id string, req job.UpdateRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, req)
	}
	return nil
}

func (f *fakeJobsStore) SetJobFeatured(ctx context.Context, id string, featured bool) error {
	if f.setFeaturedFn != nil {
		return f.setFeaturedFn(ctx, id, featured)
	}
	return nil
}

func (f *fakeJobsStore) DeleteJob(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeJobsStore) GetCategoryRecord(ctx context.Context, id string) (*category.Category, error) {
	if f.getCategoryFn != nil {
		return f.getCategoryFn(ctx, id)
	}
	return &category.Category{ID: id}, nil
}

func jobsRouter(store *fakeJobsStore) *gin.Engine {
	return jobsRouterWithHook(store, nil)
}

func jobsRouterWithHook(store *fakeJobsStore, onWrite func()) *gin.Engine {
	h := handlers.NewJobsHandler(store, onWrite)
	r := gin.New()
	r.GET("/jobs", h.List)
	r.GET("/jobs/mine", asUser("poster-1", "p@example.com", "poster"), h.Mine)
	r.GET("/jobs/:id", h.Get)
	r.POST("/jobs", asUser("poster-1", "p@example.com", "poster"), h.Create)
	r.PATCH("/jobs/:id", asUser("poster-1", "p@example.com", "poster"), h.Update)
	r.DELETE("/jobs/:id", asUser("poster-1", "p@example.com", "poster"), h.Delete)
	r.PATCH("/jobs/:id/feature", asUser("admin-1", "a@example.com", "admin"), h.Feature)
	return r
}

func validJobPayload() gin.H {
	return gin.H{
		"title":       "Backend Engineer",
		"description": "Build APIs.",
		"categoryId":  "c-1",
		"type":        "full-time",
	}
}

func TestCreateJobForcesPostedBy(t *testing.T) {
	var created *job.Job
	store := &fakeJobsStore{
		createFn: func(_ context.Context, j *job.Job) error {
			created = j
			return nil
		},
	}
	r := jobsRouter(store)

	payload := validJobPayload()
	payload["postedBy"] = "someone-else" // ignored; not even a request field

	rec := doJSON(r, http.MethodPost, "/jobs", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d\n%s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if created.PostedBy != "poster-1" {
		t.Errorf("postedBy = %q, want poster-1 (the token subject)", created.PostedBy)
	}
	if !created.IsPublished {
		t.Error("isPublished should default to true")
	}
}

func TestCreateJobMissingCategoryIsNotFound(t *testing.T) {
	store := &fakeJobsStore{
		getCategoryFn: func(context.Context, string) (*category.Category, error) {
			return nil, category.ErrNotFound
		},
	}
	r := jobsRouter(store)

	rec := doJSON(r, http.MethodPost, "/jobs", validJobPayload())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestUpdateJobNotOwnerForbidden(t *testing.T) {
	updated := false
	store := &fakeJobsStore{
		getFn: func(_ context.Context, id string) (*job.Job, error) {
			return &job.Job{ID: id, PostedBy: "someone-else"}, nil
		},
		updateFn: func(context.Context, string, job.UpdateRequest) error {
			updated = true
			return nil
		},
	}
	r := jobsRouter(store)

	rec := doJSON(r, http.MethodPatch, "/jobs/j-1", gin.H{"title": "New title"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if updated {
		t.Error("record was written despite failed ownership check")
	}
}

func TestDeleteJobOwnerSucceeds(t *testing.T) {
	store := &fakeJobsStore{
		getFn: func(_ context.Context, id string) (*job.Job, error) {
			return &job.Job{ID: id, PostedBy: "poster-1"}, nil
		},
	}
	r := jobsRouter(store)

	rec := doJSON(r, http.MethodDelete, "/jobs/j-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestGetMissingJobIsNotFound(t *testing.T) {
	store := &fakeJobsStore{
		getProjFn: func(context.Context, string) (*job.Projection, error) {
			return nil, job.ErrNotFound
		},
	}
	r := jobsRouter(store)

	// identical outcome on repeat: the read is idempotent
	for i := 0; i < 2; i++ {
		rec := doJSON(r, http.MethodGet, "/jobs/nope", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("attempt %d: status = %d, want %d", i+1, rec.Code, http.StatusNotFound)
		}
	}
}

func TestListJobsPublicFilterIsPublishedOnly(t *testing.T) {
	var gotFilter job.ListFilter
	store := &fakeJobsStore{
		listAllFn: func(_ context.Context, f job.ListFilter) ([]job.Projection, error) {
			gotFilter = f
			return []job.Projection{}, nil
		},
	}
	r := jobsRouter(store)

	rec := doJSON(r, http.MethodGet, "/jobs?category=c-1&featured=true&q=golang", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !gotFilter.PublishedOnly {
		t.Error("public listing must be published-only")
	}
	if gotFilter.CategoryID == nil || *gotFilter.CategoryID != "c-1" {
		t.Error("category filter not applied")
	}
	if gotFilter.Featured == nil || !*gotFilter.Featured {
		t.Error("featured filter not applied")
	}
	if gotFilter.Query == nil || *gotFilter.Query != "golang" {
		t.Error("text query not applied")
	}
}

func TestListJobsPaginatedShape(t *testing.T) {
	store := &fakeJobsStore{
		listFn: func(_ context.Context, _ job.ListFilter, page, limit int) (mongostore.Page[job.Projection], error) {
			return mongostore.Page[job.Projection]{
				Items:      []job.Projection{{ID: "j-1"}},
				TotalDocs:  11,
				TotalPages: 2,
				Page:       page,
			}, nil
		},
	}
	r := jobsRouter(store)

	rec := doJSON(r, http.MethodGet, "/jobs?paginated=true&page=2&limit=10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var page struct {
		TotalDocs  int64 `json:"totalDocs"`
		TotalPages int   `json:"totalPages"`
		Page       int   `json:"page"`
	}
	body := decodeBody(t, rec)
	if err := json.Unmarshal(body.Data, &page); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if page.TotalDocs != 11 || page.TotalPages != 2 || page.Page != 2 {
		t.Errorf("page meta = %+v, want totalDocs=11 totalPages=2 page=2", page)
	}
}

func TestMineListsOwnJobsOnly(t *testing.T) {
	var gotFilter job.ListFilter
	store := &fakeJobsStore{
		listAllFn: func(_ context.Context, f job.ListFilter) ([]job.Projection, error) {
			gotFilter = f
			return []job.Projection{}, nil
		},
	}
	r := jobsRouter(store)

	doJSON(r, http.MethodGet, "/jobs/mine", nil)
	if gotFilter.PostedBy == nil || *gotFilter.PostedBy != "poster-1" {
		t.Error("mine listing must filter by the token subject")
	}
	if gotFilter.PublishedOnly {
		t.Error("mine listing must include drafts")
	}
}

// Every successful job write has to fire the cache hook, because the category
// listing cache embeds jobs and jobCount. Failed writes must not fire it.
func TestJobWritesFireCacheHook(t *testing.T) {
	fired := 0
	store := &fakeJobsStore{
		getFn: func(_ context.Context, id string) (*job.Job, error) {
			return &job.Job{ID: id, PostedBy: "poster-1"}, nil
		},
	}
	r := jobsRouterWithHook(store, func() { fired++ })

	steps := []struct {
		name   string
		method string
		path   string
		body   gin.H
	}{
		{"create", http.MethodPost, "/jobs", validJobPayload()},
		{"update", http.MethodPatch, "/jobs/j-1", gin.H{"title": "New title"}},
		{"feature", http.MethodPatch, "/jobs/j-1/feature", gin.H{"isFeatured": true}},
		{"delete", http.MethodDelete, "/jobs/j-1", nil},
	}
	for i, s := range steps {
		rec := doJSON(r, s.method, s.path, s.body)
		if rec.Code >= 400 {
			t.Fatalf("%s: status = %d\n%s", s.name, rec.Code, rec.Body.String())
		}
		if fired != i+1 {
			t.Errorf("%s: hook fired %d times, want %d", s.name, fired, i+1)
		}
	}

	store.updateFn = func(context.Context, string, job.UpdateRequest) error {
		return job.ErrNotFound
	}
	doJSON(r, http.MethodPatch, "/jobs/j-1", gin.H{"title": "Again"})
	if fired != len(steps) {
		t.Errorf("hook fired on a failed write: %d, want %d", fired, len(steps))
	}
}

func TestFeatureToggle(t *testing.T) {
	var gotFeatured bool
	store := &fakeJobsStore{
		setFeaturedFn: func(_ context.Context, _ string, featured bool) error {
			gotFeatured = featured
			return nil
		},
	}
	r := jobsRouter(store)

	rec := doJSON(r, http.MethodPatch, "/jobs/j-1/feature", gin.H{"isFeatured": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d\n%s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if !gotFeatured {
		t.Error("isFeatured = false, want true")
	}
}
