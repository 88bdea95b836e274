package models

import "github.com/samber/lo"

// TimeSet is a duplicate-free set of opaque time-of-day labels such as
// "9:00 AM". Labels are compared by equality only; no time arithmetic.
type TimeSet []string

// NewTimeSet builds a set from labels, dropping duplicates.
func NewTimeSet(labels ...string) TimeSet {
	return TimeSet(lo.Uniq(labels))
}

// Contains reports whether the set holds the given label.
func (s TimeSet) Contains(label string) bool {
	return lo.Contains(s, label)
}

// Union returns a new set holding every label of s and other.
func (s TimeSet) Union(other TimeSet) TimeSet {
	return TimeSet(lo.Uniq(append(append([]string{}, s...), other...)))
}

// Difference returns a new set holding the labels of s not present in other.
func (s TimeSet) Difference(other TimeSet) TimeSet {
	return TimeSet(lo.Without(s, other...))
}

// Intersects reports whether s and other share at least one label.
func (s TimeSet) Intersects(other TimeSet) bool {
	return lo.Some(s, other)
}

// IsEmpty treats both nil and zero-length sets as empty.
func (s TimeSet) IsEmpty() bool {
	return len(s) == 0
}

// DaySchedule holds a user's commitments for a single weekday. BusyTimes are
// hard personal commitments; StudyGroupTime is derived from group
// memberships and may overlap BusyTimes in label space.
type DaySchedule struct {
	Day            string  `bson:"day" json:"day"`
	BusyTimes      TimeSet `bson:"busyTimes" json:"busyTimes"`
	StudyGroupTime TimeSet `bson:"studyGroupTime,omitempty" json:"studyGroupTime,omitempty"`
}

// UserSchedule keys day schedules by weekday, so "at most one entry per day"
// holds structurally. Absent days mean no known commitments.
type UserSchedule map[string]*DaySchedule

// Day returns the schedule entry for the given weekday, or nil.
func (u UserSchedule) Day(day string) *DaySchedule {
	return u[day]
}

// AddStudyTimes unions labels into the day's StudyGroupTime, creating the
// day entry if absent. Applying the same labels twice is a no-op.
func (u UserSchedule) AddStudyTimes(day string, labels TimeSet) {
	if labels.IsEmpty() {
		return
	}
	ds, ok := u[day]
	if !ok {
		u[day] = &DaySchedule{
			Day:            day,
			BusyTimes:      TimeSet{},
			StudyGroupTime: NewTimeSet(labels...),
		}
		return
	}
	ds.StudyGroupTime = ds.StudyGroupTime.Union(labels)
}

// RemoveStudyTimes removes labels from the day's StudyGroupTime. When the
// set becomes empty it is cleared rather than left as an empty slice, and a
// day entry carrying no busy times either is dropped. Absent days are a
// no-op.
func (u UserSchedule) RemoveStudyTimes(day string, labels TimeSet) {
	ds, ok := u[day]
	if !ok {
		return
	}
	ds.StudyGroupTime = ds.StudyGroupTime.Difference(labels)
	if ds.StudyGroupTime.IsEmpty() {
		ds.StudyGroupTime = nil
		if ds.BusyTimes.IsEmpty() {
			delete(u, day)
		}
	}
}

// SetBusyTimes replaces the day's hard commitments, creating the entry if
// needed and dropping it when nothing remains.
func (u UserSchedule) SetBusyTimes(day string, labels TimeSet) {
	ds, ok := u[day]
	if !ok {
		if labels.IsEmpty() {
			return
		}
		u[day] = &DaySchedule{Day: day, BusyTimes: NewTimeSet(labels...)}
		return
	}
	ds.BusyTimes = NewTimeSet(labels...)
	if ds.BusyTimes.IsEmpty() && ds.StudyGroupTime.IsEmpty() {
		delete(u, day)
	}
}

// TimeSelection is one day's worth of a group's meeting-time proposal.
type TimeSelection struct {
	Day   string  `bson:"day" json:"day"`
	Times TimeSet `bson:"times" json:"times"`
}

// Validate rejects malformed proposal entries before any mutation runs.
func ValidateSelections(selections []TimeSelection) error {
	for _, sel := range selections {
		if sel.Day == "" {
			return ErrInvalidInput("time selection is missing a day")
		}
		if sel.Times.IsEmpty() {
			return ErrInvalidInput("time selection for " + sel.Day + " has no times")
		}
	}
	return nil
}
