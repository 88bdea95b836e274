package schedule

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a referenced user or group is absent.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is returned when a non-admin attempts an admin-only
	// group mutation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrGroupHasMembers is returned when a proposal update is attempted on
	// a group that members other than the admin have already merged.
	ErrGroupHasMembers = errors.New("group times are locked while the group has members")
)

// asNotFound converts storage-level no-document failures into ErrNotFound
// and passes everything else through unchanged.
func asNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
