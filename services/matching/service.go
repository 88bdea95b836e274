package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	groupRepoPkg "github.com/syedahibahasan/study-sync-backend/database/repository/group"
	userRepoPkg "github.com/syedahibahasan/study-sync-backend/database/repository/user"
	"github.com/syedahibahasan/study-sync-backend/models"
	"github.com/syedahibahasan/study-sync-backend/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrUserNotFound is returned when the matching user does not exist.
var ErrUserNotFound = errors.New("user not found")

// matchCacheTTL bounds staleness of cached match results. The cache key
// covers the user's schedule, so schedule edits never serve stale results;
// only newly created groups can lag by up to the TTL.
const matchCacheTTL = 2 * time.Minute

// MatchingService finds study groups a user can join without conflict.
type MatchingService interface {
	MatchingGroups(ctx context.Context, userID string) ([]models.Group, error)
}

// DefaultMatchingService implements MatchingService on the user and group
// repositories, with an optional redis cache of computed results.
type DefaultMatchingService struct {
	UserRepo    userRepoPkg.UserRepository
	GroupRepo   groupRepoPkg.GroupRepository
	CacheClient *redis.Client
}

// MatchingGroups builds the user's match criteria, fetches pre-filtered
// candidates and keeps those whose meeting times clear the user's busy
// times. Candidate order is preserved. When no group matches the result is
// an empty list, not an error.
func (s *DefaultMatchingService) MatchingGroups(ctx context.Context, userID string) ([]models.Group, error) {
	logger := utils.GetLogger()

	user, err := s.UserRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user for matching: %w", err)
	}

	criteria := user.Criteria()
	cacheKey := s.cacheKey(criteria, user.Schedule)
	if s.CacheClient != nil {
		if cached, err := s.CacheClient.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var groups []models.Group
			if err := json.Unmarshal([]byte(cached), &groups); err == nil {
				return groups, nil
			}
			// Corrupt cache entries fall through to re-computation.
		}
	}

	candidates, err := s.GroupRepo.ListCandidates(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate groups: %w", err)
	}
	matched := FilterMatching(candidates, user.Schedule)

	if s.CacheClient != nil {
		if payload, err := json.Marshal(matched); err == nil {
			if err := s.CacheClient.Set(ctx, cacheKey, payload, matchCacheTTL).Err(); err != nil {
				logger.Warn("failed to cache match result", zap.String("userID", userID), zap.Error(err))
			}
		}
	}
	return matched, nil
}

// cacheKey derives a key from the criteria and schedule so any input change
// produces a different key.
func (s *DefaultMatchingService) cacheKey(criteria models.MatchCriteria, schedule models.UserSchedule) string {
	input, _ := json.Marshal(struct {
		Criteria models.MatchCriteria
		Schedule models.UserSchedule
	}{criteria, schedule})
	return "match:" + utils.HashToken(string(input))
}
