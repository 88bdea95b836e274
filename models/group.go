package models

import "time"

// Meeting types accepted at group creation.
const (
	MeetingInPerson = "In-Person"
	MeetingOnline   = "Online"
)

// Group is a study group. SelectedTimes is the meeting-time proposal members
// accept on join; it is set at creation and only replaceable through the
// schedule service while the admin is the sole member. Messages is the
// append-only persisted chat log (insertion order is chronological).
type Group struct {
	ID            string          `bson:"id" json:"id"`
	GroupName     string          `bson:"groupName" json:"groupName"`
	Course        string          `bson:"course" json:"course"`
	MeetingType   string          `bson:"meetingType" json:"meetingType"`
	Location      string          `bson:"location" json:"location"`
	SelectedTimes []TimeSelection `bson:"selectedTimes" json:"selectedTimes"`
	CreatedBy     string          `bson:"createdBy" json:"createdBy"`
	Members       []string        `bson:"members" json:"members"`
	Messages      []ChatMessage   `bson:"messages" json:"-"`
	CreatedAt     time.Time       `bson:"createdAt" json:"createdAt"`
}

// Validate rejects a malformed group before it is persisted.
func (g *Group) Validate() error {
	if g.GroupName == "" {
		return ErrInvalidInput("group name is required")
	}
	if g.Course == "" {
		return ErrInvalidInput("course is required")
	}
	if g.MeetingType != MeetingInPerson && g.MeetingType != MeetingOnline {
		return ErrInvalidInput("meeting type must be In-Person or Online")
	}
	if len(g.SelectedTimes) == 0 {
		return ErrInvalidInput("at least one meeting time is required")
	}
	return ValidateSelections(g.SelectedTimes)
}
