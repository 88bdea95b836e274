package userRepo

import (
	"fmt"
	"time"

	"github.com/syedahibahasan/study-sync-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update modifies an existing user document.
func (r *MongoUserRepo) Update(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	user.UpdatedAt = time.Now()
	filter := bson.M{"id": user.ID}
	update := bson.M{"$set": user}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", user.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found: %w", user.ID, mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a user document by its ID.
func (r *MongoUserRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete user with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("user with id %s not found: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

// AddGroup set-inserts a group ref into the user's group set. Re-adding an
// existing membership matches the document but changes nothing.
func (r *MongoUserRepo) AddGroup(id, groupID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$addToSet": bson.M{"groups": groupID}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add group %s to user %s: %w", groupID, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}

// RemoveGroup set-removes a group ref from the user's group set.
func (r *MongoUserRepo) RemoveGroup(id, groupID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$pull": bson.M{"groups": groupID}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to remove group %s from user %s: %w", groupID, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found: %w", id, mongo.ErrNoDocuments)
	}
	return nil
}
