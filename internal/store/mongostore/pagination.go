package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Page is the paginated response shape. Page numbers are 1-indexed.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalDocs  int64 `json:"totalDocs"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
}

func normalizePageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// facetStage splits one aggregation pass into the requested window plus a
// total count, so items and totalDocs come from the same snapshot.
func facetStage(page, limit int) bson.D {
	return bson.D{{Key: "$facet", Value: bson.D{
		{Key: "items", Value: bson.A{
			bson.D{{Key: "$skip", Value: int64((page - 1) * limit)}},
			bson.D{{Key: "$limit", Value: int64(limit)}},
		}},
		{Key: "meta", Value: bson.A{
			bson.D{{Key: "$count", Value: "total"}},
		}},
	}}}
}

func aggregateAll[T any](ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func aggregatePage[T any](ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline, page, limit int) (Page[T], error) {
	page, limit = normalizePageLimit(page, limit)
	pipeline = append(pipeline, facetStage(page, limit))

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return Page[T]{}, wrapError(err)
	}
	defer cursor.Close(ctx)

	var raw []struct {
		Items []T `bson:"items"`
		Meta  []struct {
			Total int64 `bson:"total"`
		} `bson:"meta"`
	}
	if err := cursor.All(ctx, &raw); err != nil {
		return Page[T]{}, err
	}

	out := Page[T]{Items: []T{}, Page: page}
	if len(raw) > 0 {
		if raw[0].Items != nil {
			out.Items = raw[0].Items
		}
		if len(raw[0].Meta) > 0 {
			out.TotalDocs = raw[0].Meta[0].Total
		}
	}
	out.TotalPages = totalPages(out.TotalDocs, limit)
	return out, nil
}
