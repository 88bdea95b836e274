package groupRepo

import (
	"fmt"
	"time"

	"github.com/syedahibahasan/study-sync-backend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListCandidates returns groups pre-filtered on course, location and
// membership exclusion. Online groups pass the location filter regardless
// of preferred locations since they have no physical venue.
func (r *MongoGroupRepo) ListCandidates(criteria models.MatchCriteria) ([]models.Group, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{}
	if len(criteria.EnrolledCourses) > 0 {
		filter["course"] = bson.M{"$in": criteria.EnrolledCourses}
	}
	if len(criteria.ExcludedGroups) > 0 {
		filter["id"] = bson.M{"$nin": criteria.ExcludedGroups}
	}
	if len(criteria.PreferredLocations) > 0 {
		filter["$or"] = []bson.M{
			{"meetingType": models.MeetingOnline},
			{"location": bson.M{"$in": criteria.PreferredLocations}},
		}
	}

	opts := options.Find().
		SetProjection(bson.M{"messages": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate groups: %w", err)
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode candidate groups: %w", err)
	}
	return groups, nil
}

// ListByMember returns the groups a user currently belongs to.
func (r *MongoGroupRepo) ListByMember(userID string) ([]models.Group, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"messages": 0})
	cursor, err := r.coll.Find(ctx, bson.M{"members": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for member %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var groups []models.Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups for member %s: %w", userID, err)
	}
	return groups, nil
}

// AppendMessage pushes a message onto the group's persisted log. The id and
// timestamp are assigned here so the stored record and the broadcast event
// are the same message.
func (r *MongoGroupRepo) AppendMessage(id string, msg models.ChatMessage) (*models.ChatMessage, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	msg.ID = uuid.NewString()
	msg.Timestamp = time.Now().UTC()

	update := bson.M{"$push": bson.M{"messages": msg}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to append message to group %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("group with id %s not found: %w", id, mongo.ErrNoDocuments)
	}
	return &msg, nil
}

// GetMessages returns a page of the persisted log in append order. Page is
// 1-based; limit caps the page size.
func (r *MongoGroupRepo) GetMessages(id string, page, limit int) ([]models.ChatMessage, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	opts := options.FindOne().SetProjection(bson.M{
		"messages": bson.M{"$slice": []int{(page - 1) * limit, limit}},
	})
	var group models.Group
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&group); err != nil {
		return nil, fmt.Errorf("failed to fetch messages for group %s: %w", id, err)
	}
	return group.Messages, nil
}
