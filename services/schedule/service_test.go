package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/syedahibahasan/study-sync-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeUserRepo implements userRepo.UserRepository in memory with the same
// set semantics the Mongo updates provide.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		if u.Schedule == nil {
			u.Schedule = models.UserSchedule{}
		}
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) get(id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %s not found: %w", id, mongo.ErrNoDocuments)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) { return f.get(id) }
func (f *fakeUserRepo) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return f.get(id)
}
func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found: %w", email, mongo.ErrNoDocuments)
}
func (f *fakeUserRepo) Create(u *models.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) Update(u *models.User) error {
	if _, err := f.get(u.ID); err != nil {
		return err
	}
	f.users[u.ID] = u
	return nil
}
func (f *fakeUserRepo) Delete(id string) error {
	if _, err := f.get(id); err != nil {
		return err
	}
	delete(f.users, id)
	return nil
}
func (f *fakeUserRepo) AddGroup(id, groupID string) error {
	u, err := f.get(id)
	if err != nil {
		return err
	}
	if !u.InGroup(groupID) {
		u.Groups = append(u.Groups, groupID)
	}
	return nil
}
func (f *fakeUserRepo) RemoveGroup(id, groupID string) error {
	u, err := f.get(id)
	if err != nil {
		return err
	}
	kept := u.Groups[:0]
	for _, g := range u.Groups {
		if g != groupID {
			kept = append(kept, g)
		}
	}
	u.Groups = kept
	return nil
}
func (f *fakeUserRepo) AddStudyTimes(id, day string, labels models.TimeSet) error {
	u, err := f.get(id)
	if err != nil {
		return err
	}
	u.Schedule.AddStudyTimes(day, labels)
	return nil
}
func (f *fakeUserRepo) RemoveStudyTimes(id, day string, labels models.TimeSet) error {
	u, err := f.get(id)
	if err != nil {
		return err
	}
	u.Schedule.RemoveStudyTimes(day, labels)
	return nil
}
func (f *fakeUserRepo) SetBusyTimes(id, day string, labels models.TimeSet) error {
	u, err := f.get(id)
	if err != nil {
		return err
	}
	u.Schedule.SetBusyTimes(day, labels)
	return nil
}

// fakeGroupRepo implements groupRepo.GroupRepository in memory, keeping
// insertion order for candidate listings.
type fakeGroupRepo struct {
	groups map[string]*models.Group
	order  []string
}

func newFakeGroupRepo(groups ...*models.Group) *fakeGroupRepo {
	f := &fakeGroupRepo{groups: map[string]*models.Group{}}
	for _, g := range groups {
		f.groups[g.ID] = g
		f.order = append(f.order, g.ID)
	}
	return f
}

func (f *fakeGroupRepo) GetByID(id string) (*models.Group, error) {
	g, ok := f.groups[id]
	if !ok {
		return nil, fmt.Errorf("group with id %s not found: %w", id, mongo.ErrNoDocuments)
	}
	return g, nil
}
func (f *fakeGroupRepo) Create(g *models.Group) error {
	f.groups[g.ID] = g
	f.order = append(f.order, g.ID)
	return nil
}
func (f *fakeGroupRepo) Delete(id string) error {
	if _, ok := f.groups[id]; !ok {
		return fmt.Errorf("group with id %s not found: %w", id, mongo.ErrNoDocuments)
	}
	delete(f.groups, id)
	return nil
}
func (f *fakeGroupRepo) SetSelectedTimes(id string, selections []models.TimeSelection) error {
	g, err := f.GetByID(id)
	if err != nil {
		return err
	}
	g.SelectedTimes = selections
	return nil
}
func (f *fakeGroupRepo) AddMember(id, userID string) error {
	g, err := f.GetByID(id)
	if err != nil {
		return err
	}
	for _, m := range g.Members {
		if m == userID {
			return nil
		}
	}
	g.Members = append(g.Members, userID)
	return nil
}
func (f *fakeGroupRepo) RemoveMember(id, userID string) error {
	g, err := f.GetByID(id)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		if m != userID {
			kept = append(kept, m)
		}
	}
	g.Members = kept
	return nil
}
func (f *fakeGroupRepo) ListCandidates(criteria models.MatchCriteria) ([]models.Group, error) {
	var out []models.Group
	excluded := map[string]bool{}
	for _, id := range criteria.ExcludedGroups {
		excluded[id] = true
	}
	for _, id := range f.order {
		g, ok := f.groups[id]
		if !ok || excluded[id] {
			continue
		}
		out = append(out, *g)
	}
	return out, nil
}
func (f *fakeGroupRepo) ListByMember(userID string) ([]models.Group, error) {
	var out []models.Group
	for _, id := range f.order {
		g, ok := f.groups[id]
		if !ok {
			continue
		}
		for _, m := range g.Members {
			if m == userID {
				out = append(out, *g)
				break
			}
		}
	}
	return out, nil
}
func (f *fakeGroupRepo) AppendMessage(id string, msg models.ChatMessage) (*models.ChatMessage, error) {
	g, err := f.GetByID(id)
	if err != nil {
		return nil, err
	}
	msg.ID = uuid.NewString()
	msg.Timestamp = time.Now().UTC()
	g.Messages = append(g.Messages, msg)
	return &msg, nil
}
func (f *fakeGroupRepo) GetMessages(id string, page, limit int) ([]models.ChatMessage, error) {
	g, err := f.GetByID(id)
	if err != nil {
		return nil, err
	}
	return g.Messages, nil
}

func mondayGroup(id, admin string, labels ...string) *models.Group {
	return &models.Group{
		ID:          id,
		GroupName:   "Group " + id,
		Course:      "course-1",
		MeetingType: models.MeetingInPerson,
		CreatedBy:   admin,
		SelectedTimes: []models.TimeSelection{
			{Day: "Monday", Times: models.NewTimeSet(labels...)},
		},
	}
}

func newService(users *fakeUserRepo, groups *fakeGroupRepo) *DefaultScheduleService {
	return &DefaultScheduleService{UserRepo: users, GroupRepo: groups}
}

func TestJoinMergesProposalAndMembership(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepo(&models.User{ID: "u1"})
	groups := newFakeGroupRepo(mondayGroup("g1", "admin", "10:00 AM", "11:00 AM"))
	svc := newService(users, groups)

	sched, err := svc.ApplyMembershipChange(context.Background(), "u1", "g1", DirectionJoin)
	req.NoError(err)

	ds := sched.Day("Monday")
	req.NotNil(ds)
	req.ElementsMatch([]string{"10:00 AM", "11:00 AM"}, []string(ds.StudyGroupTime))
	req.True(ds.BusyTimes.IsEmpty())
	req.True(users.users["u1"].InGroup("g1"))
	req.Contains(groups.groups["g1"].Members, "u1")
}

func TestDuplicateJoinIsIdempotent(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepo(&models.User{ID: "u1"})
	groups := newFakeGroupRepo(mondayGroup("g1", "admin", "10:00 AM"))
	svc := newService(users, groups)

	_, err := svc.ApplyMembershipChange(context.Background(), "u1", "g1", DirectionJoin)
	req.NoError(err)
	sched, err := svc.ApplyMembershipChange(context.Background(), "u1", "g1", DirectionJoin)
	req.NoError(err)

	req.ElementsMatch([]string{"10:00 AM"}, []string(sched.Day("Monday").StudyGroupTime))
	req.Equal([]string{"g1"}, users.users["u1"].Groups)
	req.Equal([]string{"u1"}, groups.groups["g1"].Members)
}

func TestLeaveClearsSoleContribution(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepo(&models.User{ID: "u1"})
	groups := newFakeGroupRepo(mondayGroup("g1", "admin", "10:00 AM", "11:00 AM"))
	svc := newService(users, groups)

	_, err := svc.ApplyMembershipChange(context.Background(), "u1", "g1", DirectionJoin)
	req.NoError(err)
	sched, err := svc.ApplyMembershipChange(context.Background(), "u1", "g1", DirectionLeave)
	req.NoError(err)

	req.Nil(sched.Day("Monday"))
	req.Empty(users.users["u1"].Groups)
	req.Empty(groups.groups["g1"].Members)
}

func TestLeaveRetainsOverlappingContribution(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepo(&models.User{ID: "u1"})
	groups := newFakeGroupRepo(
		mondayGroup("g1", "admin", "10:00 AM", "11:00 AM"),
		mondayGroup("g2", "admin", "10:00 AM"),
	)
	svc := newService(users, groups)

	_, err := svc.ApplyMembershipChange(context.Background(), "u1", "g1", DirectionJoin)
	req.NoError(err)
	_, err = svc.ApplyMembershipChange(context.Background(), "u1", "g2", DirectionJoin)
	req.NoError(err)

	sched, err := svc.ApplyMembershipChange(context.Background(), "u1", "g1", DirectionLeave)
	req.NoError(err)

	// 10:00 AM survives because g2 still contributes it; 11:00 AM does not.
	req.ElementsMatch([]string{"10:00 AM"}, []string(sched.Day("Monday").StudyGroupTime))
}

func TestDeleteGroupDetachesEveryMember(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepo(&models.User{ID: "admin"}, &models.User{ID: "u2"})
	groups := newFakeGroupRepo(
		mondayGroup("g1", "admin", "10:00 AM"),
		mondayGroup("g2", "admin", "10:00 AM"),
	)
	svc := newService(users, groups)

	for _, uid := range []string{"admin", "u2"} {
		_, err := svc.ApplyMembershipChange(context.Background(), uid, "g1", DirectionJoin)
		req.NoError(err)
	}
	// u2 also belongs to g2, which proposes the same Monday label.
	_, err := svc.ApplyMembershipChange(context.Background(), "u2", "g2", DirectionJoin)
	req.NoError(err)

	_, err = svc.ApplyMembershipChange(context.Background(), "admin", "g1", DirectionDelete)
	req.NoError(err)

	_, err = groups.GetByID("g1")
	req.Error(err)

	// The admin's sole contribution is gone; u2 keeps the label g2 still
	// contributes.
	req.Nil(users.users["admin"].Schedule.Day("Monday"))
	req.ElementsMatch([]string{"10:00 AM"}, []string(users.users["u2"].Schedule.Day("Monday").StudyGroupTime))
	req.False(users.users["u2"].InGroup("g1"))
	req.True(users.users["u2"].InGroup("g2"))
}

func TestDeleteRequiresAdmin(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepo(&models.User{ID: "u1"})
	groups := newFakeGroupRepo(mondayGroup("g1", "admin", "10:00 AM"))
	svc := newService(users, groups)

	_, err := svc.ApplyMembershipChange(context.Background(), "u1", "g1", DirectionJoin)
	req.NoError(err)
	_, err = svc.ApplyMembershipChange(context.Background(), "u1", "g1", DirectionDelete)
	req.ErrorIs(err, ErrUnauthorized)

	// No effect: the group and the membership survive.
	_, err = groups.GetByID("g1")
	req.NoError(err)
	req.True(users.users["u1"].InGroup("g1"))
}

func TestJoinUnknownGroup(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: "u1"})
	groups := newFakeGroupRepo()
	svc := newService(users, groups)

	_, err := svc.ApplyMembershipChange(context.Background(), "u1", "missing", DirectionJoin)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUnknownDirectionIsRejected(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: "u1"})
	groups := newFakeGroupRepo(mondayGroup("g1", "admin", "10:00 AM"))
	svc := newService(users, groups)

	_, err := svc.ApplyMembershipChange(context.Background(), "u1", "g1", Direction("promote"))
	var invalid models.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestCreateGroupEnrollsCreator(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepo(&models.User{ID: "u1"})
	groups := newFakeGroupRepo()
	svc := newService(users, groups)

	created, err := svc.CreateGroup(context.Background(), "u1", &models.Group{
		GroupName:   "Algorithms",
		Course:      "course-1",
		MeetingType: models.MeetingOnline,
		SelectedTimes: []models.TimeSelection{
			{Day: "Tuesday", Times: models.NewTimeSet("2:00 PM")},
		},
	})
	req.NoError(err)
	req.NotEmpty(created.ID)
	req.Equal("u1", created.CreatedBy)
	req.Contains(created.Members, "u1")
	req.ElementsMatch([]string{"2:00 PM"}, []string(users.users["u1"].Schedule.Day("Tuesday").StudyGroupTime))
}

func TestCreateGroupValidatesInput(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: "u1"})
	svc := newService(users, newFakeGroupRepo())

	_, err := svc.CreateGroup(context.Background(), "u1", &models.Group{
		GroupName:   "Broken",
		Course:      "course-1",
		MeetingType: models.MeetingOnline,
		SelectedTimes: []models.TimeSelection{
			{Day: "Tuesday", Times: models.NewTimeSet()},
		},
	})
	var invalid models.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestUpdateGroupTimesSoleMember(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepo(&models.User{ID: "admin"})
	groups := newFakeGroupRepo(mondayGroup("g1", "admin", "10:00 AM"))
	svc := newService(users, groups)

	_, err := svc.ApplyMembershipChange(context.Background(), "admin", "g1", DirectionJoin)
	req.NoError(err)

	updated, err := svc.UpdateGroupTimes(context.Background(), "admin", "g1", []models.TimeSelection{
		{Day: "Friday", Times: models.NewTimeSet("4:00 PM")},
	})
	req.NoError(err)
	req.Equal("Friday", updated.SelectedTimes[0].Day)

	sched := users.users["admin"].Schedule
	req.Nil(sched.Day("Monday"))
	req.ElementsMatch([]string{"4:00 PM"}, []string(sched.Day("Friday").StudyGroupTime))
}

func TestUpdateGroupTimesLockedWithMembers(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepo(&models.User{ID: "admin"}, &models.User{ID: "u2"})
	groups := newFakeGroupRepo(mondayGroup("g1", "admin", "10:00 AM"))
	svc := newService(users, groups)

	for _, uid := range []string{"admin", "u2"} {
		_, err := svc.ApplyMembershipChange(context.Background(), uid, "g1", DirectionJoin)
		req.NoError(err)
	}

	_, err := svc.UpdateGroupTimes(context.Background(), "admin", "g1", []models.TimeSelection{
		{Day: "Friday", Times: models.NewTimeSet("4:00 PM")},
	})
	req.ErrorIs(err, ErrGroupHasMembers)
}

func TestUpdateGroupTimesAfterAdminLeft(t *testing.T) {
	req := require.New(t)

	users := newFakeUserRepo(&models.User{ID: "admin"})
	groups := newFakeGroupRepo(mondayGroup("g1", "admin", "10:00 AM"))
	svc := newService(users, groups)

	_, err := svc.ApplyMembershipChange(context.Background(), "admin", "g1", DirectionJoin)
	req.NoError(err)
	_, err = svc.ApplyMembershipChange(context.Background(), "admin", "g1", DirectionLeave)
	req.NoError(err)

	updated, err := svc.UpdateGroupTimes(context.Background(), "admin", "g1", []models.TimeSelection{
		{Day: "Friday", Times: models.NewTimeSet("4:00 PM")},
	})
	req.NoError(err)
	req.Equal("Friday", updated.SelectedTimes[0].Day)

	// The admin belongs to no group, so the new proposal must not land in
	// their schedule.
	req.Empty(users.users["admin"].Groups)
	req.Nil(users.users["admin"].Schedule.Day("Friday"))
	req.Empty(users.users["admin"].Schedule)
}

func TestUpdateGroupTimesRequiresAdmin(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: "u1"})
	groups := newFakeGroupRepo(mondayGroup("g1", "admin", "10:00 AM"))
	svc := newService(users, groups)

	_, err := svc.UpdateGroupTimes(context.Background(), "u1", "g1", []models.TimeSelection{
		{Day: "Friday", Times: models.NewTimeSet("4:00 PM")},
	})
	require.ErrorIs(t, err, ErrUnauthorized)
}
