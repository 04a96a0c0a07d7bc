package contact

import (
	"errors"
	"time"

	"github.com/jobhive/jobhive/internal/domain/user"
)

var ErrNotFound = errors.New("contact not found")

// Contact is a support ticket. Immutable once created except for admin deletion.
type Contact struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Subject   string    `bson:"subject" json:"subject"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Projection struct {
	UID       string           `bson:"uid" json:"uid"`
	ID        string           `bson:"_id" json:"id"`
	UserID    string           `bson:"userId" json:"userId"`
	Subject   string           `bson:"subject" json:"subject"`
	Message   string           `bson:"message" json:"message"`
	CreatedAt time.Time        `bson:"createdAt" json:"createdAt"`
	Submitter *user.Projection `bson:"submitter,omitempty" json:"submitter,omitempty"`
}

type CreateRequest struct {
	Subject string `json:"subject" binding:"required,min=3,max=120"`
	Message string `json:"message" binding:"required,min=10,max=4000"`
}
