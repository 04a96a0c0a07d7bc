package application

import (
	"errors"
	"time"

	"github.com/jobhive/jobhive/internal/domain/job"
	"github.com/jobhive/jobhive/internal/domain/user"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusRejected Status = "rejected"
	StatusHired    Status = "hired"
)

var (
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyApplied = errors.New("already applied to this job")
)

type Application struct {
	ID          string    `bson:"_id" json:"id"`
	JobID       string    `bson:"jobId" json:"jobId"`
	ApplicantID string    `bson:"applicantId" json:"applicantId"`
	CoverLetter string    `bson:"coverLetter,omitempty" json:"coverLetter,omitempty"`
	ResumeURL   string    `bson:"resumeUrl,omitempty" json:"resumeUrl,omitempty"`
	Status      Status    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Projection joins the applicant (for the poster's review list) or the job
// (for the seeker's own list); either sub-document may be nil depending on
// which read produced it.
type Projection struct {
	UID         string           `bson:"uid" json:"uid"`
	ID          string           `bson:"_id" json:"id"`
	JobID       string           `bson:"jobId" json:"jobId"`
	ApplicantID string           `bson:"applicantId" json:"applicantId"`
	CoverLetter string           `bson:"coverLetter,omitempty" json:"coverLetter,omitempty"`
	ResumeURL   string           `bson:"resumeUrl,omitempty" json:"resumeUrl,omitempty"`
	Status      Status           `bson:"status" json:"status"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt"`
	Applicant   *user.Projection `bson:"applicant,omitempty" json:"applicant,omitempty"`
	Job         *job.Projection  `bson:"job,omitempty" json:"job,omitempty"`
}

type ApplyRequest struct {
	CoverLetter string `json:"coverLetter" binding:"omitempty,max=4000"`
	ResumeURL   string `json:"resumeUrl" binding:"omitempty,url,max=500"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required,oneof=pending reviewed rejected hired"`
}
