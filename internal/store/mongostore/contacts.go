package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/jobhive/jobhive/internal/domain/contact"
)

func (s *Store) CreateContact(ctx context.Context, c *contact.Contact) error {
	return s.observe("contacts.create", func() error {
		return insertOne(ctx, s.col(ColContacts), c)
	})
}

func contactListPipeline() mongo.Pipeline {
	pipeline := mongo.Pipeline{
		sortNewestFirst(),
		addUIDStage(),
	}
	return append(pipeline, lookupUserStages("userId", "submitter")...)
}

func (s *Store) GetContact(ctx context.Context, id string) (*contact.Projection, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		addUIDStage(),
	}
	pipeline = append(pipeline, lookupUserStages("userId", "submitter")...)

	var items []contact.Projection
	err := s.observe("contacts.get_projection", func() error {
		var err error
		items, err = aggregateAll[contact.Projection](ctx, s.col(ColContacts), pipeline)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, contact.ErrNotFound
	}
	return &items[0], nil
}

func (s *Store) ListContacts(ctx context.Context, page, limit int) (Page[contact.Projection], error) {
	var out Page[contact.Projection]
	err := s.observe("contacts.list", func() error {
		var err error
		out, err = aggregatePage[contact.Projection](ctx, s.col(ColContacts), contactListPipeline(), page, limit)
		return err
	})
	return out, err
}

func (s *Store) ListAllContacts(ctx context.Context) ([]contact.Projection, error) {
	var out []contact.Projection
	err := s.observe("contacts.list_all", func() error {
		var err error
		out, err = aggregateAll[contact.Projection](ctx, s.col(ColContacts), contactListPipeline())
		return err
	})
	return out, err
}

func (s *Store) DeleteContact(ctx context.Context, id string) error {
	err := s.observe("contacts.delete", func() error {
		return deleteByID(ctx, s.col(ColContacts), id)
	})
	if errors.Is(err, errNotFound) {
		return contact.ErrNotFound
	}
	return err
}
