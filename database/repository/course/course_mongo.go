package courseRepo

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

// listProjection mirrors the fields the catalog listing exposes.
var listProjection = bson.M{
	"id": 1, "section": 1, "class_number": 1, "course_title": 1, "days": 1, "times": 1,
}

// MongoCourseRepo implements CourseRepository using MongoDB.
type MongoCourseRepo struct {
	coll *mongo.Collection
}

// NewMongoCourseRepo creates a new instance of CourseRepository using MongoDB.
func NewMongoCourseRepo() CourseRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("scrappedcourses")
	return &MongoCourseRepo{coll: coll}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetByID retrieves a course by its unique ID.
func (r *MongoCourseRepo) GetByID(id string) (*models.Course, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var course models.Course
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&course); err != nil {
		return nil, fmt.Errorf("failed to fetch course with id %s: %w", id, err)
	}
	return &course, nil
}

// List returns the full catalog with the listing projection applied.
func (r *MongoCourseRepo) List() ([]models.Course, error) {
	return r.find(bson.M{})
}

// Search matches the query against course title and class number.
func (r *MongoCourseRepo) Search(query string) ([]models.Course, error) {
	pattern := bson.M{"$regex": query, "$options": "i"}
	return r.find(bson.M{"$or": []bson.M{
		{"course_title": pattern},
		{"class_number": pattern},
	}})
}

func (r *MongoCourseRepo) find(filter bson.M) ([]models.Course, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetProjection(listProjection)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer cursor.Close(ctx)

	var courses []models.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("failed to decode courses: %w", err)
	}
	return courses, nil
}
