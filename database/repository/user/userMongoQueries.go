package userRepo

import (
	"fmt"
	"time"

	"github.com/syedahibahasan/study-sync-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// schedulePath builds the dotted path into the day-keyed schedule map.
func schedulePath(day, field string) string {
	return "schedule." + day + "." + field
}

// AddStudyTimes unions labels into the day's studyGroupTime set in a single
// atomic update. $addToSet creates the day entry when absent, so concurrent
// merges into the same day from different joins compose instead of racing.
func (r *MongoUserRepo) AddStudyTimes(id, day string, labels models.TimeSet) error {
	if labels.IsEmpty() {
		return nil
	}
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$addToSet": bson.M{
			schedulePath(day, "studyGroupTime"): bson.M{"$each": []string(labels)},
		},
		"$set": bson.M{
			schedulePath(day, "day"): day,
			"updatedAt":              time.Now(),
		},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to merge study times for user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

// SetBusyTimes replaces the day's busyTimes set in place. Only the dotted
// per-day path is written, never the whole schedule document, so study-time
// merges racing with a busy edit are preserved. An empty set unsets the
// attribute and drops a day entry carrying no study times either.
func (r *MongoUserRepo) SetBusyTimes(id, day string, labels models.TimeSet) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	busyPath := schedulePath(day, "busyTimes")
	studyPath := schedulePath(day, "studyGroupTime")

	var update bson.M
	if labels.IsEmpty() {
		update = bson.M{
			"$unset": bson.M{busyPath: ""},
			"$set":   bson.M{"updatedAt": time.Now()},
		}
	} else {
		update = bson.M{
			"$set": bson.M{
				busyPath:                 []string(labels),
				schedulePath(day, "day"): day,
				"updatedAt":              time.Now(),
			},
		}
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set busy times for user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found: %w", id, mongo.ErrNoDocuments)
	}

	if labels.IsEmpty() {
		dayEmpty := bson.M{
			"id":     id,
			busyPath: bson.M{"$exists": false},
			"$or": []bson.M{
				{studyPath: bson.M{"$size": 0}},
				{studyPath: bson.M{"$exists": false}},
			},
		}
		if _, err := r.coll.UpdateOne(ctx, dayEmpty, bson.M{"$unset": bson.M{"schedule." + day: ""}}); err != nil {
			return fmt.Errorf("failed to drop empty day entry for user %s: %w", id, err)
		}
	}
	return nil
}

// RemoveStudyTimes pulls labels from the day's studyGroupTime set, then
// clears the attribute once empty and drops a day entry that carries no busy
// times either. Absent days match nothing and are a no-op.
func (r *MongoUserRepo) RemoveStudyTimes(id, day string, labels models.TimeSet) error {
	if labels.IsEmpty() {
		return nil
	}
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	studyPath := schedulePath(day, "studyGroupTime")
	busyPath := schedulePath(day, "busyTimes")

	update := bson.M{"$pullAll": bson.M{studyPath: []string(labels)}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to remove study times for user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found: %w", id, mongo.ErrNoDocuments)
	}

	// Callers treat absent and empty as equivalent; normalize to absent.
	emptyStudy := bson.M{"id": id, studyPath: bson.M{"$size": 0}}
	if _, err := r.coll.UpdateOne(ctx, emptyStudy, bson.M{"$unset": bson.M{studyPath: ""}}); err != nil {
		return fmt.Errorf("failed to clear empty study times for user %s: %w", id, err)
	}

	dayEmpty := bson.M{
		"id":      id,
		studyPath: bson.M{"$exists": false},
		"$or": []bson.M{
			{busyPath: bson.M{"$size": 0}},
			{busyPath: bson.M{"$exists": false}},
		},
	}
	if _, err := r.coll.UpdateOne(ctx, dayEmpty, bson.M{"$unset": bson.M{"schedule." + day: ""}}); err != nil {
		return fmt.Errorf("failed to drop empty day entry for user %s: %w", id, err)
	}
	return nil
}
