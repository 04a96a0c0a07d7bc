package category

import (
	"errors"
	"time"

	"github.com/jobhive/jobhive/internal/domain/job"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrSlugTaken = errors.New("category slug already exists")
)

type Category struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Projection carries the category's jobs and their cardinality. jobCount is
// computed by the query layer at read time, never stored.
type Projection struct {
	UID         string           `bson:"uid" json:"uid"`
	ID          string           `bson:"_id" json:"id"`
	Name        string           `bson:"name" json:"name"`
	Slug        string           `bson:"slug" json:"slug"`
	Description string           `bson:"description,omitempty" json:"description,omitempty"`
	Jobs        []job.Projection `bson:"jobs" json:"jobs"`
	JobCount    int              `bson:"jobCount" json:"jobCount"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt"`
}

type CreateRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=80"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

type UpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=80"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}
