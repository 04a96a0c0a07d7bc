package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jobhive/jobhive/internal/domain/job"
)

func (s *Store) CreateJob(ctx context.Context, j *job.Job) error {
	return s.observe("jobs.create", func() error {
		return insertOne(ctx, s.col(ColJobs), j)
	})
}

// GetJob returns the raw record, used for ownership checks and writes.
func (s *Store) GetJob(ctx context.Context, id string) (*job.Job, error) {
	var j *job.Job
	err := s.observe("jobs.get", func() error {
		var err error
		j, err = findOne[job.Job](ctx, s.col(ColJobs), bson.D{{Key: "_id", Value: id}})
		return err
	})
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, job.ErrNotFound
	}
	return j, nil
}

// GetJobProjection is the read-path lookup with the poster joined.
func (s *Store) GetJobProjection(ctx context.Context, id string) (*job.Projection, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
	}
	pipeline = append(pipeline, jobProjectionStages()...)

	var items []job.Projection
	err := s.observe("jobs.get_projection", func() error {
		var err error
		items, err = aggregateAll[job.Projection](ctx, s.col(ColJobs), pipeline)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, job.ErrNotFound
	}
	return &items[0], nil
}

func jobFilter(f job.ListFilter) bson.D {
	filter := bson.D{}
	if f.PublishedOnly {
		filter = append(filter,
			bson.E{Key: "isPublished", Value: true},
			bson.E{Key: "status", Value: true},
		)
	}
	if f.CategoryID != nil {
		filter = append(filter, bson.E{Key: "categoryId", Value: *f.CategoryID})
	}
	if f.Featured != nil {
		filter = append(filter, bson.E{Key: "isFeatured", Value: *f.Featured})
	}
	if f.PostedBy != nil {
		filter = append(filter, bson.E{Key: "postedBy", Value: *f.PostedBy})
	}
	if f.Query != nil {
		rx := bson.D{{Key: "$regex", Value: *f.Query}, {Key: "$options", Value: "i"}}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: rx}},
			bson.D{{Key: "description", Value: rx}},
		}})
	}
	return filter
}

func jobListPipeline(f job.ListFilter) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: jobFilter(f)}},
		sortNewestFirst(),
	}
	return append(pipeline, jobProjectionStages()...)
}

func (s *Store) ListJobs(ctx context.Context, f job.ListFilter, page, limit int) (Page[job.Projection], error) {
	var out Page[job.Projection]
	err := s.observe("jobs.list", func() error {
		var err error
		out, err = aggregatePage[job.Projection](ctx, s.col(ColJobs), jobListPipeline(f), page, limit)
		return err
	})
	return out, err
}

func (s *Store) ListAllJobs(ctx context.Context, f job.ListFilter) ([]job.Projection, error) {
	var out []job.Projection
	err := s.observe("jobs.list_all", func() error {
		var err error
		out, err = aggregateAll[job.Projection](ctx, s.col(ColJobs), jobListPipeline(f))
		return err
	})
	return out, err
}

func (s *Store) UpdateJob(ctx context.Context, id string, req job.UpdateRequest) error {
	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if req.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *req.Title})
	}
	if req.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *req.Description})
	}
	if req.CategoryID != nil {
		set = append(set, bson.E{Key: "categoryId", Value: *req.CategoryID})
	}
	if req.Location != nil {
		set = append(set, bson.E{Key: "location", Value: *req.Location})
	}
	if req.Type != nil {
		set = append(set, bson.E{Key: "type", Value: *req.Type})
	}
	if req.SalaryMin != nil {
		set = append(set, bson.E{Key: "salaryMin", Value: *req.SalaryMin})
	}
	if req.SalaryMax != nil {
		set = append(set, bson.E{Key: "salaryMax", Value: *req.SalaryMax})
	}
	if req.IsPublished != nil {
		set = append(set, bson.E{Key: "isPublished", Value: *req.IsPublished})
	}

	err := s.observe("jobs.update", func() error {
		return updateFields(ctx, s.col(ColJobs), id, set)
	})
	if errors.Is(err, errNotFound) {
		return job.ErrNotFound
	}
	return err
}

func (s *Store) SetJobFeatured(ctx context.Context, id string, featured bool) error {
	err := s.observe("jobs.set_featured", func() error {
		return updateFields(ctx, s.col(ColJobs), id, bson.D{
			{Key: "isFeatured", Value: featured},
			{Key: "updatedAt", Value: time.Now().UTC()},
		})
	})
	if errors.Is(err, errNotFound) {
		return job.ErrNotFound
	}
	return err
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	err := s.observe("jobs.delete", func() error {
		if err := deleteByID(ctx, s.col(ColJobs), id); err != nil {
			return err
		}
		// applications without their job are dead weight
		_, err := s.col(ColApplications).DeleteMany(ctx, bson.D{{Key: "jobId", Value: id}})
		return err
	})
	if errors.Is(err, errNotFound) {
		return job.ErrNotFound
	}
	return err
}

// jobIDsByCategory collects the ids the category cascade needs to clear
// applications for.
func (s *Store) jobIDsByCategory(ctx context.Context, categoryID string) ([]string, error) {
	type idOnly struct {
		ID string `bson:"_id"`
	}
	docs, err := findMany[idOnly](ctx, s.col(ColJobs), bson.D{{Key: "categoryId", Value: categoryID}})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}
