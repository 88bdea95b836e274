package user

import (
	"fmt"
	"testing"

	"github.com/syedahibahasan/study-sync-backend/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeUserRepo keeps users in memory. beforeWrite fires once at the top of
// the next busy-time write, standing in for another writer getting its
// update committed first.
type fakeUserRepo struct {
	users       map[string]*models.User
	beforeWrite func()
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

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Schedule = models.UserSchedule{}
	for day, ds := range u.Schedule {
		copied := *ds
		copied.BusyTimes = models.NewTimeSet(ds.BusyTimes...)
		copied.StudyGroupTime = models.NewTimeSet(ds.StudyGroupTime...)
		c.Schedule[day] = &copied
	}
	return &c
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, err := f.get(id)
	if err != nil {
		return nil, err
	}
	return cloneUser(u), nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found: %w", email, mongo.ErrNoDocuments)
}
func (f *fakeUserRepo) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	return f.GetByID(id)
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
	if f.beforeWrite != nil {
		hook := f.beforeWrite
		f.beforeWrite = nil
		hook()
	}
	u, err := f.get(id)
	if err != nil {
		return err
	}
	u.Schedule.SetBusyTimes(day, labels)
	return nil
}

func TestUpdateBusyTimesReplacesOneDay(t *testing.T) {
	req := require.New(t)

	repo := newFakeUserRepo(&models.User{ID: "u1"})
	svc := &DefaultUserService{Repo: repo}

	sched, err := svc.UpdateBusyTimes("u1", "Monday", models.NewTimeSet("9:00 AM", "10:00 AM"))
	req.NoError(err)
	req.ElementsMatch([]string{"9:00 AM", "10:00 AM"}, []string(sched.Day("Monday").BusyTimes))

	// Clearing the day removes the now-empty entry.
	sched, err = svc.UpdateBusyTimes("u1", "Monday", models.NewTimeSet())
	req.NoError(err)
	req.Nil(sched.Day("Monday"))
}

func TestUpdateBusyTimesSurvivesConcurrentStudyMerge(t *testing.T) {
	req := require.New(t)

	repo := newFakeUserRepo(&models.User{ID: "u1"})
	svc := &DefaultUserService{Repo: repo}

	// A join commits its Tuesday merge while the busy-time edit is in flight.
	repo.beforeWrite = func() {
		repo.users["u1"].Schedule.AddStudyTimes("Tuesday", models.NewTimeSet("2:00 PM"))
	}

	sched, err := svc.UpdateBusyTimes("u1", "Monday", models.NewTimeSet("9:00 AM"))
	req.NoError(err)

	// The edit lands on Monday and the racing merge is not clobbered.
	req.ElementsMatch([]string{"9:00 AM"}, []string(sched.Day("Monday").BusyTimes))
	req.NotNil(sched.Day("Tuesday"))
	req.ElementsMatch([]string{"2:00 PM"}, []string(sched.Day("Tuesday").StudyGroupTime))
	req.ElementsMatch([]string{"2:00 PM"}, []string(repo.users["u1"].Schedule.Day("Tuesday").StudyGroupTime))
}

func TestUpdateBusyTimesRequiresDay(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo(&models.User{ID: "u1"})}
	_, err := svc.UpdateBusyTimes("u1", "", models.NewTimeSet("9:00 AM"))
	var invalid models.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestUpdateBusyTimesUnknownUser(t *testing.T) {
	svc := &DefaultUserService{Repo: newFakeUserRepo()}
	_, err := svc.UpdateBusyTimes("missing", "Monday", models.NewTimeSet("9:00 AM"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePreferences(t *testing.T) {
	req := require.New(t)

	repo := newFakeUserRepo(&models.User{ID: "u1", EnrolledCourses: []string{"old"}})
	svc := &DefaultUserService{Repo: repo}

	usr, err := svc.UpdatePreferences("u1", []string{"course-1"}, []string{"Library"})
	req.NoError(err)
	req.Equal([]string{"course-1"}, usr.EnrolledCourses)
	req.Equal([]string{"Library"}, usr.PreferredLocations)

	// Nil leaves the other attribute alone.
	usr, err = svc.UpdatePreferences("u1", nil, []string{"Union"})
	req.NoError(err)
	req.Equal([]string{"course-1"}, usr.EnrolledCourses)
	req.Equal([]string{"Union"}, usr.PreferredLocations)
}
