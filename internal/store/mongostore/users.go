package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jobhive/jobhive/internal/domain/user"
)

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	err := s.observe("users.create", func() error {
		return insertOne(ctx, s.col(ColUsers), u)
	})
	if errors.Is(err, errDuplicate) {
		return user.ErrEmailTaken
	}
	return err
}

// GetUserByID returns the stored record. An optional role filter is pushed
// into the query so "this id, if it exists, must have this role" is a single
// read. Callers strip secrets before any external exposure.
func (s *Store) GetUserByID(ctx context.Context, id string, roles ...user.Role) (*user.User, error) {
	filter := bson.D{{Key: "_id", Value: id}}
	if len(roles) > 0 {
		filter = append(filter, bson.E{Key: "role", Value: bson.D{{Key: "$in", Value: roles}}})
	}

	var u *user.User
	err := s.observe("users.get", func() error {
		var err error
		u, err = findOne[user.User](ctx, s.col(ColUsers), filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	var u *user.User
	err := s.observe("users.get_by_email", func() error {
		var err error
		u, err = findOne[user.User](ctx, s.col(ColUsers), bson.D{{Key: "email", Value: email}})
		return err
	})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrNotFound
	}
	return u, nil
}

// GetUserProjection is the read-path single lookup: password excluded in the
// pipeline, uid attached.
func (s *Store) GetUserProjection(ctx context.Context, id string) (*user.Projection, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		addUIDStage(),
		bson.D{{Key: "$unset", Value: "password"}},
	}

	var items []user.Projection
	err := s.observe("users.get_projection", func() error {
		var err error
		items, err = aggregateAll[user.Projection](ctx, s.col(ColUsers), pipeline)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, user.ErrNotFound
	}
	return &items[0], nil
}

func userListPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		sortNewestFirst(),
		addUIDStage(),
		bson.D{{Key: "$unset", Value: "password"}},
	}
}

func (s *Store) ListUsers(ctx context.Context, page, limit int) (Page[user.Projection], error) {
	var out Page[user.Projection]
	err := s.observe("users.list", func() error {
		var err error
		out, err = aggregatePage[user.Projection](ctx, s.col(ColUsers), userListPipeline(), page, limit)
		return err
	})
	return out, err
}

func (s *Store) ListAllUsers(ctx context.Context) ([]user.Projection, error) {
	var out []user.Projection
	err := s.observe("users.list_all", func() error {
		var err error
		out, err = aggregateAll[user.Projection](ctx, s.col(ColUsers), userListPipeline())
		return err
	})
	return out, err
}

// UpdateUser applies a partial update; profileCompleted marks the profile
// complete in the same write when the owner edits profile fields.
func (s *Store) UpdateUser(ctx context.Context, id string, req user.UpdateRequest, profileCompleted bool) error {
	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if req.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *req.Name})
	}
	if req.Phone != nil {
		set = append(set, bson.E{Key: "phone", Value: *req.Phone})
	}
	if req.Location != nil {
		set = append(set, bson.E{Key: "location", Value: *req.Location})
	}
	if req.Bio != nil {
		set = append(set, bson.E{Key: "bio", Value: *req.Bio})
	}
	if req.Role != nil {
		set = append(set, bson.E{Key: "role", Value: *req.Role})
	}
	if req.Status != nil {
		set = append(set, bson.E{Key: "status", Value: *req.Status})
	}
	if req.IsRestricted != nil {
		set = append(set, bson.E{Key: "isRestricted", Value: *req.IsRestricted})
	}
	if profileCompleted {
		set = append(set, bson.E{Key: "isProfileCompleted", Value: true})
	}

	err := s.observe("users.update", func() error {
		return updateFields(ctx, s.col(ColUsers), id, set)
	})
	if errors.Is(err, errNotFound) {
		return user.ErrNotFound
	}
	return err
}

func (s *Store) SetUserPassword(ctx context.Context, id, passwordHash string) error {
	err := s.observe("users.set_password", func() error {
		return updateFields(ctx, s.col(ColUsers), id, bson.D{
			{Key: "password", Value: passwordHash},
			{Key: "updatedAt", Value: time.Now().UTC()},
		})
	})
	if errors.Is(err, errNotFound) {
		return user.ErrNotFound
	}
	return err
}

func (s *Store) SetUserVerified(ctx context.Context, id string) error {
	err := s.observe("users.set_verified", func() error {
		return updateFields(ctx, s.col(ColUsers), id, bson.D{
			{Key: "isVerified", Value: true},
			{Key: "updatedAt", Value: time.Now().UTC()},
		})
	})
	if errors.Is(err, errNotFound) {
		return user.ErrNotFound
	}
	return err
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	err := s.observe("users.delete", func() error {
		return deleteByID(ctx, s.col(ColUsers), id)
	})
	if errors.Is(err, errNotFound) {
		return user.ErrNotFound
	}
	return err
}
