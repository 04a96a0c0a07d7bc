package mongostore

import (
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestNormalizePageLimit(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"defaults", 0, 0, 1, defaultLimit},
		{"negative page", -3, 20, 1, 20},
		{"limit capped", 1, 1000, 1, maxLimit},
		{"passthrough", 4, 25, 4, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit := normalizePageLimit(tc.page, tc.limit)
			if page != tc.wantPage || limit != tc.wantLimit {
				t.Fatalf("normalizePageLimit(%d, %d) = (%d, %d), want (%d, %d)",
					tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{99, 10, 10},
	}

	for _, tc := range cases {
		if got := totalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestFacetStageWindow(t *testing.T) {
	stage := facetStage(3, 10)

	if stage[0].Key != "$facet" {
		t.Fatalf("stage key = %q, want $facet", stage[0].Key)
	}
	facet, ok := stage[0].Value.(bson.D)
	if !ok {
		t.Fatalf("$facet value is %T, want bson.D", stage[0].Value)
	}

	items, ok := facet[0].Value.(bson.A)
	if !ok || facet[0].Key != "items" {
		t.Fatalf("first facet branch = %q (%T), want items (bson.A)", facet[0].Key, facet[0].Value)
	}

	skip := items[0].(bson.D)
	if skip[0].Key != "$skip" || skip[0].Value != int64(20) {
		t.Errorf("skip stage = %+v, want $skip: 20", skip)
	}
	limit := items[1].(bson.D)
	if limit[0].Key != "$limit" || limit[0].Value != int64(10) {
		t.Errorf("limit stage = %+v, want $limit: 10", limit)
	}

	if facet[1].Key != "meta" {
		t.Errorf("second facet branch = %q, want meta", facet[1].Key)
	}
}
