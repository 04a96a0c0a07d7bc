package handlers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jobhive/jobhive/internal/domain/application"
	"github.com/jobhive/jobhive/internal/domain/category"
	"github.com/jobhive/jobhive/internal/domain/contact"
	"github.com/jobhive/jobhive/internal/domain/job"
	"github.com/jobhive/jobhive/internal/domain/user"
	"github.com/jobhive/jobhive/internal/http/envelope"
	"github.com/jobhive/jobhive/internal/http/middlewares"
)

func RespondOK(c *gin.Context, data interface{}) {
	envelope.Write(c, envelope.OK, "", data)
}

func RespondCreated(c *gin.Context, data interface{}) {
	envelope.Write(c, envelope.Created, "", data)
}

func RespondBadRequest(c *gin.Context, longMessage string) {
	envelope.Write(c, envelope.BadRequest, longMessage, nil)
}

func RespondUnauthorized(c *gin.Context, longMessage string) {
	envelope.Write(c, envelope.Unauthorized, longMessage, nil)
}

func RespondForbidden(c *gin.Context, longMessage string) {
	envelope.Write(c, envelope.Forbidden, longMessage, nil)
}

func RespondNotFound(c *gin.Context, longMessage string) {
	envelope.Write(c, envelope.NotFound, longMessage, nil)
}

func RespondConflict(c *gin.Context, longMessage string) {
	envelope.Write(c, envelope.Conflict, longMessage, nil)
}

func RespondInternal(c *gin.Context) {
	envelope.Write(c, envelope.Internal, "something went wrong", nil)
}

// RespondError maps domain sentinels onto the envelope. Anything unmapped is
// a real failure: logged with the request id, surfaced as a 500.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		RespondNotFound(c, "user not found")
	case errors.Is(err, job.ErrNotFound):
		RespondNotFound(c, "job not found")
	case errors.Is(err, category.ErrNotFound):
		RespondNotFound(c, "category not found")
	case errors.Is(err, application.ErrNotFound):
		RespondNotFound(c, "application not found")
	case errors.Is(err, contact.ErrNotFound):
		RespondNotFound(c, "contact message not found")
	case errors.Is(err, user.ErrEmailTaken):
		RespondConflict(c, "email already registered")
	case errors.Is(err, category.ErrSlugTaken):
		RespondConflict(c, "a category with this name already exists")
	case errors.Is(err, application.ErrAlreadyApplied):
		RespondConflict(c, "you have already applied to this job")
	default:
		slog.Default().ErrorContext(c.Request.Context(), "request_failed",
			"error", err,
			"request_id", c.GetString(middlewares.CtxRequestID),
			"route", c.FullPath(),
		)
		RespondInternal(c)
	}
}
