package user

import (
	"errors"
	"fmt"
	"time"

	userRepoPkg "github.com/syedahibahasan/study-sync-backend/database/repository/user"
	"github.com/syedahibahasan/study-sync-backend/models"
	"github.com/syedahibahasan/study-sync-backend/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotFound is returned when the referenced user is absent.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned for a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering with a known email.
	ErrEmailTaken = errors.New("a user with this email already exists")
)

const tokenTTL = time.Hour

// DefaultUserService implements UserService on the user repository.
type DefaultUserService struct {
	Repo userRepoPkg.UserRepository
}

// Register creates a new user with an empty schedule and returns it with a
// fresh auth token.
func (s *DefaultUserService) Register(req RegistrationRequest) (*models.User, string, error) {
	if req.Email == "" || req.Password == "" || req.Username == "" {
		return nil, "", models.ErrInvalidInput("username, email and password are required")
	}

	existing, err := s.Repo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, "", fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:                 uuid.NewString(),
		Username:           req.Username,
		Email:              req.Email,
		PasswordHash:       string(hash),
		EnrolledCourses:    []string{},
		PreferredLocations: []string{},
		Groups:             []string{},
		Schedule:           models.UserSchedule{},
	}
	if err := s.Repo.Create(usr); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Authenticate verifies credentials and returns the user with a token.
func (s *DefaultUserService) Authenticate(email, password string) (*models.User, string, error) {
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to fetch user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// issueToken signs a JWT and caches its hash for the auth middleware.
func (s *DefaultUserService) issueToken(usr *models.User) (string, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Email, tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	if err := utils.CacheAuthToken(usr.ID, utils.HashToken(token), tokenTTL); err != nil {
		// Middleware falls back to validating against the signature alone.
		utils.GetLogger().Warn("failed to cache auth token", zap.String("userID", usr.ID), zap.Error(err))
	}
	return token, nil
}

// GetUserByID retrieves a user by id.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return usr, nil
}

// UpdateBusyTimes replaces the user's hard commitments for one day and
// returns the updated schedule. The write targets that day's busyTimes
// attribute alone; study-group times are owned by the membership protocol
// and a merge landing mid-edit survives.
func (s *DefaultUserService) UpdateBusyTimes(id, day string, labels models.TimeSet) (models.UserSchedule, error) {
	if day == "" {
		return nil, models.ErrInvalidInput("day is required")
	}

	if err := s.Repo.SetBusyTimes(id, day, models.NewTimeSet(labels...)); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to persist busy times: %w", err)
	}
	usr, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	return usr.Schedule, nil
}

// UpdatePreferences replaces enrolled courses and preferred locations.
func (s *DefaultUserService) UpdatePreferences(id string, courses, locations []string) (*models.User, error) {
	usr, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if courses != nil {
		usr.EnrolledCourses = courses
	}
	if locations != nil {
		usr.PreferredLocations = locations
	}
	if err := s.Repo.Update(usr); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return usr, nil
}

// RevokeToken drops the cached auth token hash for the user.
func (s *DefaultUserService) RevokeToken(id string) error {
	if _, err := s.Repo.GetByIDWithProjection(id, bson.M{"id": 1}); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	return utils.DropAuthToken(id)
}
