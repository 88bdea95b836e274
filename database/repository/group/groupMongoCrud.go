package groupRepo

import (
	"fmt"
	"time"

	"github.com/syedahibahasan/study-sync-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new group document.
func (r *MongoGroupRepo) Create(group *models.Group) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	group.CreatedAt = time.Now()
	if group.Members == nil {
		group.Members = []string{}
	}
	if group.Messages == nil {
		group.Messages = []models.ChatMessage{}
	}

	_, err := r.coll.InsertOne(ctx, group)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// Delete removes a group document and its message log.
func (r *MongoGroupRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete group with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("group with id %s not found: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

// SetSelectedTimes replaces the group's meeting-time proposal.
func (r *MongoGroupRepo) SetSelectedTimes(id string, selections []models.TimeSelection) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"selectedTimes": selections}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update times for group %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("group with id %s not found: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

// AddMember set-inserts a user into the group's member set.
func (r *MongoGroupRepo) AddMember(id, userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$addToSet": bson.M{"members": userID}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add member %s to group %s: %w", userID, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("group with id %s not found: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

// RemoveMember set-removes a user from the group's member set.
func (r *MongoGroupRepo) RemoveMember(id, userID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$pull": bson.M{"members": userID}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to remove member %s from group %s: %w", userID, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("group with id %s not found: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}
