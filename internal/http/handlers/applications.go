package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobhive/jobhive/internal/domain/application"
	"github.com/jobhive/jobhive/internal/domain/job"
	"github.com/jobhive/jobhive/internal/domain/user"
	"github.com/jobhive/jobhive/internal/http/middlewares"
	"github.com/jobhive/jobhive/internal/mailer"
)

type ApplicationsStore interface {
	CreateApplication(ctx context.Context, a *application.Application) error
	GetApplication(ctx context.Context, id string) (*application.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]application.Projection, error)
	ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]application.Projection, error)
	UpdateApplicationStatus(ctx context.Context, id string, status application.Status) error
	GetJob(ctx context.Context, id string) (*job.Job, error)
	GetUserByID(ctx context.Context, id string, roles ...user.Role) (*user.User, error)
}

type ApplicationsHandler struct {
	store  ApplicationsStore
	mail   mailer.Mailer
	logger *slog.Logger
}

func NewApplicationsHandler(store ApplicationsStore, mail mailer.Mailer, logger *slog.Logger) *ApplicationsHandler {
	return &ApplicationsHandler{store: store, mail: mail, logger: logger}
}

// Apply creates a pending application for the token subject. Only published,
// active jobs accept applications; the unique (job, applicant) index turns a
// second attempt into a conflict.
func (h *ApplicationsHandler) Apply(c *gin.Context) {
	var req application.ApplyRequest
	if !BindJSON(c, &req) {
		return
	}

	subject, ok := middlewares.UserIDFromContext(c)
	if !ok {
		RespondUnauthorized(c, "missing identity context")
		return
	}

	j, err := h.store.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	if !j.IsPublished || !j.Status {
		RespondNotFound(c, "job not found")
		return
	}

	now := time.Now().UTC()
	a := &application.Application{
		ID:          uuid.NewString(),
		JobID:       j.ID,
		ApplicantID: subject,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		Status:      application.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateApplication(c.Request.Context(), a); err != nil {
		RespondError(c, err)
		return
	}

	h.notifyPoster(c.Request.Context(), j, subject)
	RespondCreated(c, a)
}

func (h *ApplicationsHandler) notifyPoster(ctx context.Context, j *job.Job, applicantID string) {
	poster, err := h.store.GetUserByID(ctx, j.PostedBy)
	if err != nil {
		h.logger.ErrorContext(ctx, "application_mail_poster_lookup_failed", "error", err, "job_id", j.ID)
		return
	}
	applicant, err := h.store.GetUserByID(ctx, applicantID)
	if err != nil {
		h.logger.ErrorContext(ctx, "application_mail_applicant_lookup_failed", "error", err, "job_id", j.ID)
		return
	}

	err = h.mail.SendApplicationSubmitted(ctx, mailer.ApplicationSubmittedInput{
		Email:         poster.Email,
		PosterName:    poster.Name,
		ApplicantName: applicant.Name,
		JobTitle:      j.Title,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "application_mail_failed", "error", err, "job_id", j.ID)
	}
}

// ListByJob is the poster's review list; the job must be theirs.
func (h *ApplicationsHandler) ListByJob(c *gin.Context) {
	id := c.Param("id")

	j, err := h.store.GetJob(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	subject, _ := middlewares.UserIDFromContext(c)
	if j.PostedBy != subject {
		RespondForbidden(c, "not the job owner")
		return
	}

	apps, err := h.store.ListApplicationsByJob(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, apps)
}

func (h *ApplicationsHandler) Mine(c *gin.Context) {
	subject, ok := middlewares.UserIDFromContext(c)
	if !ok {
		RespondUnauthorized(c, "missing identity context")
		return
	}

	apps, err := h.store.ListApplicationsByApplicant(c.Request.Context(), subject)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, apps)
}

// UpdateStatus lets the poster move an application through the pipeline.
// Ownership is of the application's job, not the application itself.
func (h *ApplicationsHandler) UpdateStatus(c *gin.Context) {
	var req application.UpdateStatusRequest
	if !BindJSON(c, &req) {
		return
	}

	id := c.Param("id")
	a, err := h.store.GetApplication(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}

	j, err := h.store.GetJob(c.Request.Context(), a.JobID)
	if err != nil {
		RespondError(c, err)
		return
	}
	subject, _ := middlewares.UserIDFromContext(c)
	if j.PostedBy != subject {
		RespondForbidden(c, "not the job owner")
		return
	}

	if err := h.store.UpdateApplicationStatus(c.Request.Context(), id, req.Status); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": req.Status})
}
