package userRepo

import (
	"github.com/syedahibahasan/study-sync-backend/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access. The schedule and
// membership writes are expressed as atomic Mongo array updates rather than
// whole-document overwrites, so concurrent joins racing on the same user
// cannot lose labels or group refs.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(email string) (*models.User, error)
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error

	// AddGroup set-inserts a group ref into the user's group set (idempotent).
	AddGroup(id, groupID string) error
	// RemoveGroup set-removes a group ref from the user's group set (idempotent).
	RemoveGroup(id, groupID string) error

	// AddStudyTimes unions labels into the day's studyGroupTime set.
	AddStudyTimes(id, day string, labels models.TimeSet) error
	// RemoveStudyTimes removes labels from the day's studyGroupTime set and
	// clears the attribute (and an otherwise-empty day entry) afterwards.
	RemoveStudyTimes(id, day string, labels models.TimeSet) error
	// SetBusyTimes replaces the day's busyTimes set without touching the
	// rest of the schedule, so a concurrent study-time merge into another
	// day (or the same day) is never lost to a stale snapshot.
	SetBusyTimes(id, day string, labels models.TimeSet) error
}
