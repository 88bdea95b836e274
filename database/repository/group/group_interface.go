package groupRepo

import "github.com/syedahibahasan/study-sync-backend/models"

// GroupRepository defines methods for group data access. Membership writes
// are atomic set-insert/set-remove; the message log is append-only.
type GroupRepository interface {
	// GetByID retrieves a group by its unique ID.
	GetByID(id string) (*models.Group, error)
	// Create inserts a new group record.
	Create(group *models.Group) error
	// Delete removes a group record by its ID.
	Delete(id string) error

	// SetSelectedTimes replaces the group's meeting-time proposal.
	SetSelectedTimes(id string, selections []models.TimeSelection) error
	// AddMember set-inserts a user into the group's member set (idempotent).
	AddMember(id, userID string) error
	// RemoveMember set-removes a user from the group's member set (idempotent).
	RemoveMember(id, userID string) error

	// ListCandidates returns groups matching the pre-filter criteria:
	// enrolled courses, preferred locations, and exclusion of groups the
	// user already belongs to. Time compatibility is not checked here.
	ListCandidates(criteria models.MatchCriteria) ([]models.Group, error)
	// ListByMember returns the groups a user currently belongs to.
	ListByMember(userID string) ([]models.Group, error)

	// AppendMessage appends a message to the group's persisted log and
	// returns it with its assigned id and timestamp.
	AppendMessage(id string, msg models.ChatMessage) (*models.ChatMessage, error)
	// GetMessages returns a page of the persisted log in append order.
	GetMessages(id string, page, limit int) ([]models.ChatMessage, error)
}
