package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jobhive/jobhive/internal/domain/application"
)

func (s *Store) CreateApplication(ctx context.Context, a *application.Application) error {
	err := s.observe("applications.create", func() error {
		return insertOne(ctx, s.col(ColApplications), a)
	})
	if errors.Is(err, errDuplicate) {
		return application.ErrAlreadyApplied
	}
	return err
}

func (s *Store) GetApplication(ctx context.Context, id string) (*application.Application, error) {
	var a *application.Application
	err := s.observe("applications.get", func() error {
		var err error
		a, err = findOne[application.Application](ctx, s.col(ColApplications), bson.D{{Key: "_id", Value: id}})
		return err
	})
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, application.ErrNotFound
	}
	return a, nil
}

// ListApplicationsByJob is the poster's review list: applicants joined and
// projected.
func (s *Store) ListApplicationsByJob(ctx context.Context, jobID string) ([]application.Projection, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "jobId", Value: jobID}}}},
		sortNewestFirst(),
		addUIDStage(),
	}
	pipeline = append(pipeline, lookupUserStages("applicantId", "applicant")...)

	var out []application.Projection
	err := s.observe("applications.list_by_job", func() error {
		var err error
		out, err = aggregateAll[application.Projection](ctx, s.col(ColApplications), pipeline)
		return err
	})
	return out, err
}

// ListApplicationsByApplicant is the seeker's own list: jobs joined, with the
// poster projected recursively inside each job.
func (s *Store) ListApplicationsByApplicant(ctx context.Context, applicantID string) ([]application.Projection, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "applicantId", Value: applicantID}}}},
		sortNewestFirst(),
		addUIDStage(),
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: ColJobs},
			{Key: "localField", Value: "jobId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "job"},
			{Key: "pipeline", Value: jobSubPipeline()},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$job"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}

	var out []application.Projection
	err := s.observe("applications.list_by_applicant", func() error {
		var err error
		out, err = aggregateAll[application.Projection](ctx, s.col(ColApplications), pipeline)
		return err
	})
	return out, err
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id string, status application.Status) error {
	err := s.observe("applications.update_status", func() error {
		return updateFields(ctx, s.col(ColApplications), id, bson.D{
			{Key: "status", Value: status},
			{Key: "updatedAt", Value: time.Now().UTC()},
		})
	})
	if errors.Is(err, errNotFound) {
		return application.ErrNotFound
	}
	return err
}
