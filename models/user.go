package models

import "time"

// User is a registered student. Schedule is owned exclusively by the user
// and mutated only through the schedule service; Groups and the schedule's
// study-group times are kept consistent by the membership protocol.
type User struct {
	ID                 string       `bson:"id" json:"id"`
	Username           string       `bson:"username" json:"username"`
	Email              string       `bson:"email" json:"email"`
	PasswordHash       string       `bson:"passwordHash" json:"-"`
	EnrolledCourses    []string     `bson:"enrolledCourses" json:"enrolledCourses"`
	PreferredLocations []string     `bson:"preferredLocations" json:"preferredLocations"`
	Groups             []string     `bson:"groups" json:"groups"`
	Schedule           UserSchedule `bson:"schedule" json:"schedule"`
	CreatedAt          time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// InGroup reports whether the user currently belongs to the group.
func (u *User) InGroup(groupID string) bool {
	for _, g := range u.Groups {
		if g == groupID {
			return true
		}
	}
	return false
}

// MatchCriteria is the derived, non-persisted view of a user handed to the
// candidate-group query. Reconstructed per matching request.
type MatchCriteria struct {
	EnrolledCourses    []string
	PreferredLocations []string
	ExcludedGroups     []string
}

// Criteria builds the candidate pre-filter from the user's current state.
// Groups the user already belongs to are excluded up front.
func (u *User) Criteria() MatchCriteria {
	return MatchCriteria{
		EnrolledCourses:    u.EnrolledCourses,
		PreferredLocations: u.PreferredLocations,
		ExcludedGroups:     u.Groups,
	}
}
