package groupRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/syedahibahasan/study-sync-backend/database"
	"github.com/syedahibahasan/study-sync-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGroupRepo implements GroupRepository using MongoDB.
type MongoGroupRepo struct {
	coll *mongo.Collection
}

// NewMongoGroupRepo creates a new instance of GroupRepository using MongoDB.
func NewMongoGroupRepo() GroupRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("groups")
	repo := &MongoGroupRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields used by the candidate query.
func (r *MongoGroupRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "course", Value: 1}}},
		{Keys: bson.D{{Key: "members", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a group by its unique ID, message log excluded.
func (r *MongoGroupRepo) GetByID(id string) (*models.Group, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"messages": 0})
	var group models.Group
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&group); err != nil {
		return nil, fmt.Errorf("failed to fetch group with id %s: %w", id, err)
	}
	return &group, nil
}
