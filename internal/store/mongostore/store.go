// Package mongostore implements the persistence and aggregation query layer
// on MongoDB. Collection names and indexes are managed in one place; read
// projections are built from shared pipeline stages so the password-exclusion
// rule holds on every path that touches users.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/jobhive/jobhive/internal/observability"
)

const (
	ColUsers        = "users"
	ColJobs         = "jobs"
	ColCategories   = "categories"
	ColApplications = "applications"
	ColContacts     = "contacts"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	prom   *observability.Prom
}

// New connects, pings, and ensures indexes. prom may be nil (tests).
func New(uri, dbName string, prom *observability.Prom) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongostore: ping: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName), prom: prom}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("mongostore: ensure indexes: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) observe(op string, fn func() error) error {
	if s.prom == nil {
		return fn()
	}
	return s.prom.ObserveStore(op, fn)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},
		{ColUsers, bson.D{{Key: "role", Value: 1}}, false},

		// slug uniqueness is enforced here so the check-then-insert race
		// collapses into a duplicate-key conflict
		{ColCategories, bson.D{{Key: "slug", Value: 1}}, true},

		{ColJobs, bson.D{{Key: "categoryId", Value: 1}}, false},
		{ColJobs, bson.D{{Key: "postedBy", Value: 1}}, false},
		{ColJobs, bson.D{{Key: "createdAt", Value: -1}}, false},

		{ColApplications, bson.D{{Key: "jobId", Value: 1}, {Key: "applicantId", Value: 1}}, true},
		{ColApplications, bson.D{{Key: "applicantId", Value: 1}}, false},

		{ColContacts, bson.D{{Key: "userId", Value: 1}}, false},
		{ColContacts, bson.D{{Key: "createdAt", Value: -1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}

	return nil
}
