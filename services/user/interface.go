package user

import "github.com/syedahibahasan/study-sync-backend/models"

// UserService handles registration, authentication and profile access.
type UserService interface {
	// Register creates a new user and returns it with a fresh auth token.
	Register(req RegistrationRequest) (*models.User, string, error)
	// Authenticate verifies credentials and returns the user with a token.
	Authenticate(email, password string) (*models.User, string, error)
	// GetUserByID retrieves a user by id.
	GetUserByID(id string) (*models.User, error)
	// UpdateBusyTimes replaces the user's hard commitments for one day.
	UpdateBusyTimes(id, day string, labels models.TimeSet) (models.UserSchedule, error)
	// UpdatePreferences replaces enrolled courses and preferred locations.
	UpdatePreferences(id string, courses, locations []string) (*models.User, error)
	// RevokeToken drops the cached auth token hash for the user.
	RevokeToken(id string) error
}

// RegistrationRequest carries the fields required to create an account.
type RegistrationRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}
