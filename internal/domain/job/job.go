package job

import (
	"errors"
	"time"

	"github.com/jobhive/jobhive/internal/domain/user"
)

type Type string

const (
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeContract   Type = "contract"
	TypeInternship Type = "internship"
	TypeRemote     Type = "remote"
)

var ErrNotFound = errors.New("job not found")

type Job struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	CategoryID  string    `bson:"categoryId" json:"categoryId"`
	PostedBy    string    `bson:"postedBy" json:"postedBy"`
	Location    string    `bson:"location,omitempty" json:"location,omitempty"`
	Type        Type      `bson:"type" json:"type"`
	SalaryMin   int       `bson:"salaryMin,omitempty" json:"salaryMin,omitempty"`
	SalaryMax   int       `bson:"salaryMax,omitempty" json:"salaryMax,omitempty"`
	IsPublished bool      `bson:"isPublished" json:"isPublished"`
	IsFeatured  bool      `bson:"isFeatured" json:"isFeatured"`
	Status      bool      `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Projection joins the posting user; the poster sub-document follows the same
// password-exclusion rule as any other user read.
type Projection struct {
	UID         string           `bson:"uid" json:"uid"`
	ID          string           `bson:"_id" json:"id"`
	Title       string           `bson:"title" json:"title"`
	Description string           `bson:"description" json:"description"`
	CategoryID  string           `bson:"categoryId" json:"categoryId"`
	PostedBy    string           `bson:"postedBy" json:"postedBy"`
	Location    string           `bson:"location,omitempty" json:"location,omitempty"`
	Type        Type             `bson:"type" json:"type"`
	SalaryMin   int              `bson:"salaryMin,omitempty" json:"salaryMin,omitempty"`
	SalaryMax   int              `bson:"salaryMax,omitempty" json:"salaryMax,omitempty"`
	IsPublished bool             `bson:"isPublished" json:"isPublished"`
	IsFeatured  bool             `bson:"isFeatured" json:"isFeatured"`
	Status      bool             `bson:"status" json:"status"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt"`
	Poster      *user.Projection `bson:"poster,omitempty" json:"poster,omitempty"`
}

type CreateRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=120"`
	Description string `json:"description" binding:"required,max=8000"`
	CategoryID  string `json:"categoryId" binding:"required"`
	Location    string `json:"location" binding:"omitempty,max=120"`
	Type        Type   `json:"type" binding:"required,oneof=full-time part-time contract internship remote"`
	SalaryMin   int    `json:"salaryMin" binding:"omitempty,min=0"`
	SalaryMax   int    `json:"salaryMax" binding:"omitempty,min=0,gtefield=SalaryMin"`
	IsPublished *bool  `json:"isPublished"`
}

type UpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=3,max=120"`
	Description *string `json:"description" binding:"omitempty,max=8000"`
	CategoryID  *string `json:"categoryId"`
	Location    *string `json:"location" binding:"omitempty,max=120"`
	Type        *Type   `json:"type" binding:"omitempty,oneof=full-time part-time contract internship remote"`
	SalaryMin   *int    `json:"salaryMin" binding:"omitempty,min=0"`
	SalaryMax   *int    `json:"salaryMax" binding:"omitempty,min=0"`
	IsPublished *bool   `json:"isPublished"`
}

// ListFilter narrows list reads; nil fields are not applied.
type ListFilter struct {
	CategoryID    *string
	Featured      *bool
	Query         *string
	PostedBy      *string
	PublishedOnly bool
}
