package user

import (
	"errors"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RolePoster Role = "poster"
	RoleSeeker Role = "seeker"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RolePoster, RoleSeeker:
		return true
	}
	return false
}

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already in use")
)

type User struct {
	ID                 string    `bson:"_id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Email              string    `bson:"email" json:"email"`
	Password           string    `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role               Role      `bson:"role" json:"role"`
	Phone              string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Location           string    `bson:"location,omitempty" json:"location,omitempty"`
	Bio                string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Status             bool      `bson:"status" json:"status"`
	IsVerified         bool      `bson:"isVerified" json:"isVerified"`
	IsRestricted       bool      `bson:"isRestricted" json:"isRestricted"`
	IsProfileCompleted bool      `bson:"isProfileCompleted" json:"isProfileCompleted"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Projection is the read-shaped view of a user: no password field exists on the
// type at all, and uid is the synthetic string identity added at every join level.
type Projection struct {
	UID                string    `bson:"uid" json:"uid"`
	ID                 string    `bson:"_id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Email              string    `bson:"email" json:"email"`
	Role               Role      `bson:"role" json:"role"`
	Phone              string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Location           string    `bson:"location,omitempty" json:"location,omitempty"`
	Bio                string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Status             bool      `bson:"status" json:"status"`
	IsVerified         bool      `bson:"isVerified" json:"isVerified"`
	IsRestricted       bool      `bson:"isRestricted" json:"isRestricted"`
	IsProfileCompleted bool      `bson:"isProfileCompleted" json:"isProfileCompleted"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// NewProjection strips a stored record down to its read shape.
func NewProjection(u *User) Projection {
	return Projection{
		UID:                u.ID,
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		Phone:              u.Phone,
		Location:           u.Location,
		Bio:                u.Bio,
		Status:             u.Status,
		IsVerified:         u.IsVerified,
		IsRestricted:       u.IsRestricted,
		IsProfileCompleted: u.IsProfileCompleted,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=80"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     Role   `json:"role" binding:"required,oneof=seeker poster"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateRequest is a partial update; nil means "leave unchanged".
// Role, Status and IsRestricted are admin-only and rejected for other callers
// at the handler layer.
type UpdateRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=80"`
	Phone        *string `json:"phone" binding:"omitempty,max=32"`
	Location     *string `json:"location" binding:"omitempty,max=120"`
	Bio          *string `json:"bio" binding:"omitempty,max=1000"`
	Role         *Role   `json:"role" binding:"omitempty,oneof=admin poster seeker"`
	Status       *bool   `json:"status"`
	IsRestricted *bool   `json:"isRestricted"`
}

// HasAdminFields reports whether the payload touches fields only admins may set.
func (r UpdateRequest) HasAdminFields() bool {
	return r.Role != nil || r.Status != nil || r.IsRestricted != nil
}

// HasProfileFields reports whether the payload touches the owner-editable
// profile fields; a successful owner edit marks the profile completed.
func (r UpdateRequest) HasProfileFields() bool {
	return r.Name != nil || r.Phone != nil || r.Location != nil || r.Bio != nil
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}
