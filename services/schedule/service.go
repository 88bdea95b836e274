package schedule

import (
	"context"
	"fmt"

	groupRepoPkg "github.com/syedahibahasan/study-sync-backend/database/repository/group"
	userRepoPkg "github.com/syedahibahasan/study-sync-backend/database/repository/user"
	"github.com/syedahibahasan/study-sync-backend/models"
	"github.com/syedahibahasan/study-sync-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Direction is a membership transition.
type Direction string

const (
	DirectionJoin   Direction = "join"
	DirectionLeave  Direction = "leave"
	DirectionDelete Direction = "delete"
)

// ScheduleService keeps a user's study-group times consistent with their
// group memberships. Invariant: at quiescence, a user's studyGroupTime is
// exactly the union of the proposals of the groups they belong to.
type ScheduleService interface {
	// CreateGroup persists a new group and enrolls the creator as its first
	// member, merging the proposal into the creator's schedule.
	CreateGroup(ctx context.Context, userID string, group *models.Group) (*models.Group, error)
	// ApplyMembershipChange runs one join/leave/delete transition and
	// returns the requesting user's updated schedule.
	ApplyMembershipChange(ctx context.Context, userID, groupID string, direction Direction) (models.UserSchedule, error)
	// UpdateGroupTimes replaces a group's proposal. Admin only, and only
	// while no one but the admin has merged it.
	UpdateGroupTimes(ctx context.Context, userID, groupID string, selections []models.TimeSelection) (*models.Group, error)
}

// DefaultScheduleService implements ScheduleService on the user and group
// repositories. The per-day merges are pushed down to atomic storage
// updates, so racing joins to different groups compose correctly; ordering
// within one transition is schedule first, membership second (see below).
type DefaultScheduleService struct {
	UserRepo  userRepoPkg.UserRepository
	GroupRepo groupRepoPkg.GroupRepository
}

// CreateGroup validates and persists the group, then runs the creator's
// join transition against it.
func (s *DefaultScheduleService) CreateGroup(ctx context.Context, userID string, group *models.Group) (*models.Group, error) {
	if err := group.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.UserRepo.GetByIDWithProjection(userID, nil); err != nil {
		return nil, asNotFound(err)
	}

	group.ID = uuid.NewString()
	group.CreatedBy = userID
	for i, sel := range group.SelectedTimes {
		group.SelectedTimes[i].Times = models.NewTimeSet(sel.Times...)
	}
	if err := s.GroupRepo.Create(group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	if _, err := s.ApplyMembershipChange(ctx, userID, group.ID, DirectionJoin); err != nil {
		return nil, fmt.Errorf("group created but creator enrollment failed: %w", err)
	}
	return s.GroupRepo.GetByID(group.ID)
}

// ApplyMembershipChange runs one membership transition.
//
// Within a transition the schedule write precedes the membership writes: a
// failure in between leaves surplus study-group labels but no membership,
// and surplus study-group time can never wrongly exclude a user from a
// match, since only busy times block. The reverse ordering could.
func (s *DefaultScheduleService) ApplyMembershipChange(ctx context.Context, userID, groupID string, direction Direction) (models.UserSchedule, error) {
	group, err := s.GroupRepo.GetByID(groupID)
	if err != nil {
		return nil, asNotFound(err)
	}

	switch direction {
	case DirectionJoin:
		if err := s.join(userID, group); err != nil {
			return nil, err
		}
	case DirectionLeave:
		if err := s.leave(userID, group); err != nil {
			return nil, err
		}
	case DirectionDelete:
		if err := s.deleteGroup(userID, group); err != nil {
			return nil, err
		}
	default:
		return nil, models.ErrInvalidInput("unknown membership direction " + string(direction))
	}

	user, err := s.UserRepo.GetByIDWithProjection(userID, nil)
	if err != nil {
		return nil, asNotFound(err)
	}
	return user.Schedule, nil
}

// join merges the group's proposal into the user's schedule, then
// set-inserts the membership on both sides. Every step is idempotent, so a
// duplicate join request leaves the user unchanged.
func (s *DefaultScheduleService) join(userID string, group *models.Group) error {
	for _, sel := range group.SelectedTimes {
		if err := s.UserRepo.AddStudyTimes(userID, sel.Day, sel.Times); err != nil {
			return asNotFound(err)
		}
	}
	if err := s.UserRepo.AddGroup(userID, group.ID); err != nil {
		return asNotFound(err)
	}
	if err := s.GroupRepo.AddMember(group.ID, userID); err != nil {
		return asNotFound(err)
	}
	return nil
}

// leave reverses the member's merge and set-removes the membership.
func (s *DefaultScheduleService) leave(userID string, group *models.Group) error {
	if err := s.unmerge(userID, group); err != nil {
		return err
	}
	if err := s.UserRepo.RemoveGroup(userID, group.ID); err != nil {
		return asNotFound(err)
	}
	if err := s.GroupRepo.RemoveMember(group.ID, userID); err != nil {
		return asNotFound(err)
	}
	return nil
}

// deleteGroup runs the leave transition for every current member, then
// deletes the group document along with its message log. Only the recorded
// admin may delete.
func (s *DefaultScheduleService) deleteGroup(userID string, group *models.Group) error {
	if group.CreatedBy != userID {
		return ErrUnauthorized
	}
	logger := utils.GetLogger()
	for _, memberID := range group.Members {
		if err := s.leave(memberID, group); err != nil {
			// Keep going: a vanished member must not strand the rest.
			logger.Warn("failed to detach member during group deletion",
				zap.String("groupID", group.ID), zap.String("memberID", memberID), zap.Error(err))
		}
	}
	if err := s.GroupRepo.Delete(group.ID); err != nil {
		return asNotFound(err)
	}
	return nil
}

// UpdateGroupTimes replaces the proposal of a group no one but the admin
// has merged. While the admin is still a member it reverses their old merge,
// stores the new selection, and re-runs the merge; for an admin who already
// left, only the stored proposal changes.
func (s *DefaultScheduleService) UpdateGroupTimes(ctx context.Context, userID, groupID string, selections []models.TimeSelection) (*models.Group, error) {
	if len(selections) == 0 {
		return nil, models.ErrInvalidInput("at least one meeting time is required")
	}
	if err := models.ValidateSelections(selections); err != nil {
		return nil, err
	}

	group, err := s.GroupRepo.GetByID(groupID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if group.CreatedBy != userID {
		return nil, ErrUnauthorized
	}
	adminIsMember := false
	for _, memberID := range group.Members {
		if memberID != userID {
			return nil, ErrGroupHasMembers
		}
		adminIsMember = true
	}

	// An admin who left their own group may still reshape the proposal, but
	// their schedule carries no merge to reverse or reapply.
	if adminIsMember {
		if err := s.unmerge(userID, group); err != nil {
			return nil, err
		}
	}
	for i, sel := range selections {
		selections[i].Times = models.NewTimeSet(sel.Times...)
	}
	if err := s.GroupRepo.SetSelectedTimes(groupID, selections); err != nil {
		return nil, asNotFound(err)
	}
	group.SelectedTimes = selections
	if adminIsMember {
		for _, sel := range selections {
			if err := s.UserRepo.AddStudyTimes(userID, sel.Day, sel.Times); err != nil {
				return nil, asNotFound(err)
			}
		}
	}
	return group, nil
}

// unmerge removes the group's contribution to the user's study-group times,
// minus whatever the user's other groups still contribute on the same day.
// This is what keeps studyGroupTime the union over current memberships when
// proposals overlap.
func (s *DefaultScheduleService) unmerge(userID string, group *models.Group) error {
	others, err := s.GroupRepo.ListByMember(userID)
	if err != nil {
		return fmt.Errorf("failed to list remaining groups for user %s: %w", userID, err)
	}

	retained := map[string]models.TimeSet{}
	for _, other := range others {
		if other.ID == group.ID {
			continue
		}
		for _, sel := range other.SelectedTimes {
			retained[sel.Day] = retained[sel.Day].Union(sel.Times)
		}
	}

	for _, sel := range group.SelectedTimes {
		remove := sel.Times.Difference(retained[sel.Day])
		if remove.IsEmpty() {
			continue
		}
		if err := s.UserRepo.RemoveStudyTimes(userID, sel.Day, remove); err != nil {
			return asNotFound(err)
		}
	}
	return nil
}
