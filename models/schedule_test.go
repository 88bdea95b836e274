package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimeSetOperations(t *testing.T) {
	req := require.New(t)

	s := NewTimeSet("9:00 AM", "10:00 AM", "9:00 AM")
	req.Len(s, 2)
	req.True(s.Contains("9:00 AM"))
	req.False(s.Contains("11:00 AM"))

	union := s.Union(NewTimeSet("10:00 AM", "11:00 AM"))
	req.ElementsMatch([]string{"9:00 AM", "10:00 AM", "11:00 AM"}, []string(union))

	diff := union.Difference(NewTimeSet("9:00 AM"))
	req.ElementsMatch([]string{"10:00 AM", "11:00 AM"}, []string(diff))

	req.True(s.Intersects(NewTimeSet("10:00 AM", "2:00 PM")))
	req.False(s.Intersects(NewTimeSet("2:00 PM")))
	req.True(TimeSet(nil).IsEmpty())
}

func TestAddStudyTimesCreatesDayEntry(t *testing.T) {
	req := require.New(t)

	sched := UserSchedule{}
	sched.AddStudyTimes("Monday", NewTimeSet("10:00 AM", "11:00 AM"))

	ds := sched.Day("Monday")
	req.NotNil(ds)
	req.Equal("Monday", ds.Day)
	req.True(ds.BusyTimes.IsEmpty())
	req.ElementsMatch([]string{"10:00 AM", "11:00 AM"}, []string(ds.StudyGroupTime))
}

func TestAddStudyTimesIsIdempotent(t *testing.T) {
	req := require.New(t)

	sched := UserSchedule{}
	sched.AddStudyTimes("Monday", NewTimeSet("10:00 AM"))
	sched.AddStudyTimes("Monday", NewTimeSet("10:00 AM"))

	req.ElementsMatch([]string{"10:00 AM"}, []string(sched.Day("Monday").StudyGroupTime))
}

func TestRemoveStudyTimesClearsEmptyAttribute(t *testing.T) {
	req := require.New(t)

	sched := UserSchedule{}
	sched.AddStudyTimes("Monday", NewTimeSet("10:00 AM", "11:00 AM"))
	sched.RemoveStudyTimes("Monday", NewTimeSet("10:00 AM", "11:00 AM"))

	// Add/remove round trip leaves no day entry behind.
	req.Nil(sched.Day("Monday"))
}

func TestRemoveStudyTimesKeepsBusyDay(t *testing.T) {
	req := require.New(t)

	sched := UserSchedule{}
	sched.SetBusyTimes("Monday", NewTimeSet("9:00 AM"))
	sched.AddStudyTimes("Monday", NewTimeSet("10:00 AM"))
	sched.RemoveStudyTimes("Monday", NewTimeSet("10:00 AM"))

	ds := sched.Day("Monday")
	req.NotNil(ds)
	req.True(ds.StudyGroupTime.IsEmpty())
	req.ElementsMatch([]string{"9:00 AM"}, []string(ds.BusyTimes))
}

func TestRemoveStudyTimesAbsentDayIsNoop(t *testing.T) {
	sched := UserSchedule{}
	sched.RemoveStudyTimes("Friday", NewTimeSet("10:00 AM"))
	require.Empty(t, sched)
}

func TestRemoveStudyTimesKeepsOtherLabels(t *testing.T) {
	req := require.New(t)

	sched := UserSchedule{}
	sched.AddStudyTimes("Monday", NewTimeSet("10:00 AM", "11:00 AM"))
	sched.RemoveStudyTimes("Monday", NewTimeSet("10:00 AM"))

	req.ElementsMatch([]string{"11:00 AM"}, []string(sched.Day("Monday").StudyGroupTime))
}

func TestSetBusyTimesDropsEmptyDay(t *testing.T) {
	req := require.New(t)

	sched := UserSchedule{}
	sched.SetBusyTimes("Tuesday", NewTimeSet("1:00 PM"))
	req.NotNil(sched.Day("Tuesday"))

	sched.SetBusyTimes("Tuesday", NewTimeSet())
	req.Nil(sched.Day("Tuesday"))
}

func TestValidateSelections(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateSelections([]TimeSelection{
		{Day: "Monday", Times: NewTimeSet("10:00 AM")},
	}))
	req.Error(ValidateSelections([]TimeSelection{
		{Day: "", Times: NewTimeSet("10:00 AM")},
	}))
	req.Error(ValidateSelections([]TimeSelection{
		{Day: "Monday", Times: NewTimeSet()},
	}))
}
