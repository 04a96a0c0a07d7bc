package mongostore

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Shared pipeline stages for read projections. Every stage set that joins
// users strips the password and adds the synthetic uid string, so identity is
// comparable across top-level and joined documents.

// addUIDStage attaches uid = string(_id) at the current pipeline level.
func addUIDStage() bson.D {
	return bson.D{{Key: "$addFields", Value: bson.D{
		{Key: "uid", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
	}}}
}

// userSubPipeline is the projection applied inside every $lookup on users.
func userSubPipeline() bson.A {
	return bson.A{
		addUIDStage(),
		bson.D{{Key: "$unset", Value: "password"}},
	}
}

// lookupUserStages joins a single user document under `as`.
func lookupUserStages(localField, as string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: ColUsers},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: as},
			{Key: "pipeline", Value: userSubPipeline()},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + as},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// jobProjectionStages shapes a jobs pipeline level: uid plus the poster join.
func jobProjectionStages() []bson.D {
	stages := []bson.D{addUIDStage()}
	return append(stages, lookupUserStages("postedBy", "poster")...)
}

// jobSubPipeline is jobProjectionStages as a $lookup sub-pipeline.
func jobSubPipeline() bson.A {
	out := bson.A{}
	for _, s := range jobProjectionStages() {
		out = append(out, s)
	}
	return out
}

// lookupCategoryJobsStages joins a category's jobs (posters projected
// recursively) and computes jobCount from the joined set at query time.
func lookupCategoryJobsStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: ColJobs},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "categoryId"},
			{Key: "as", Value: "jobs"},
			{Key: "pipeline", Value: jobSubPipeline()},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "jobCount", Value: bson.D{{Key: "$size", Value: "$jobs"}}},
		}}},
	}
}

// sortNewestFirst is the default list order.
func sortNewestFirst() bson.D {
	return bson.D{{Key: "$sort", Value: bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: 1},
	}}}
}
