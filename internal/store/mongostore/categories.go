package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jobhive/jobhive/internal/domain/category"
)

func (s *Store) CreateCategory(ctx context.Context, c *category.Category) error {
	err := s.observe("categories.create", func() error {
		return insertOne(ctx, s.col(ColCategories), c)
	})
	if errors.Is(err, errDuplicate) {
		return category.ErrSlugTaken
	}
	return err
}

// GetCategoryRecord returns the raw record, used for existence checks.
func (s *Store) GetCategoryRecord(ctx context.Context, id string) (*category.Category, error) {
	var c *category.Category
	err := s.observe("categories.get", func() error {
		var err error
		c, err = findOne[category.Category](ctx, s.col(ColCategories), bson.D{{Key: "_id", Value: id}})
		return err
	})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, category.ErrNotFound
	}
	return c, nil
}

func categoryListPipeline() mongo.Pipeline {
	pipeline := mongo.Pipeline{
		sortNewestFirst(),
		addUIDStage(),
	}
	return append(pipeline, lookupCategoryJobsStages()...)
}

func (s *Store) GetCategory(ctx context.Context, id string) (*category.Projection, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		addUIDStage(),
	}
	pipeline = append(pipeline, lookupCategoryJobsStages()...)

	var items []category.Projection
	err := s.observe("categories.get_projection", func() error {
		var err error
		items, err = aggregateAll[category.Projection](ctx, s.col(ColCategories), pipeline)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, category.ErrNotFound
	}
	return &items[0], nil
}

func (s *Store) ListCategories(ctx context.Context) ([]category.Projection, error) {
	var out []category.Projection
	err := s.observe("categories.list_all", func() error {
		var err error
		out, err = aggregateAll[category.Projection](ctx, s.col(ColCategories), categoryListPipeline())
		return err
	})
	return out, err
}

func (s *Store) ListCategoriesPage(ctx context.Context, page, limit int) (Page[category.Projection], error) {
	var out Page[category.Projection]
	err := s.observe("categories.list", func() error {
		var err error
		out, err = aggregatePage[category.Projection](ctx, s.col(ColCategories), categoryListPipeline(), page, limit)
		return err
	})
	return out, err
}

// UpdateCategory renames and/or re-describes; a rename carries its re-derived
// slug. A slug collision surfaces as ErrSlugTaken via the unique index.
func (s *Store) UpdateCategory(ctx context.Context, id string, name, slug string, description *string) error {
	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if name != "" {
		set = append(set,
			bson.E{Key: "name", Value: name},
			bson.E{Key: "slug", Value: slug},
		)
	}
	if description != nil {
		set = append(set, bson.E{Key: "description", Value: *description})
	}

	err := s.observe("categories.update", func() error {
		return updateFields(ctx, s.col(ColCategories), id, set)
	})
	switch {
	case errors.Is(err, errNotFound):
		return category.ErrNotFound
	case errors.Is(err, errDuplicate):
		return category.ErrSlugTaken
	}
	return err
}

// DeleteCategoryCascade removes the category, then its jobs, then the
// applications for those jobs. The three deletes are sequential and not
// transactional; a crash in between leaves orphans (known design risk).
func (s *Store) DeleteCategoryCascade(ctx context.Context, id string) (jobsDeleted int64, err error) {
	err = s.observe("categories.delete_cascade", func() error {
		if err := deleteByID(ctx, s.col(ColCategories), id); err != nil {
			return err
		}

		jobIDs, err := s.jobIDsByCategory(ctx, id)
		if err != nil {
			return err
		}

		res, err := s.col(ColJobs).DeleteMany(ctx, bson.D{{Key: "categoryId", Value: id}})
		if err != nil {
			return wrapError(err)
		}
		jobsDeleted = res.DeletedCount

		if len(jobIDs) > 0 {
			_, err = s.col(ColApplications).DeleteMany(ctx, bson.D{
				{Key: "jobId", Value: bson.D{{Key: "$in", Value: jobIDs}}},
			})
			if err != nil {
				return wrapError(err)
			}
		}
		return nil
	})
	if errors.Is(err, errNotFound) {
		return 0, category.ErrNotFound
	}
	return jobsDeleted, err
}
