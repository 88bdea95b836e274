package models

// Course is a row of the scraped course catalog. Read-only at runtime.
type Course struct {
	ID          string `bson:"id" json:"id"`
	CourseName  string `bson:"course_title" json:"course_title"`
	CourseCode  string `bson:"class_number" json:"class_number"`
	Section     string `bson:"section" json:"section"`
	Days        string `bson:"days" json:"days"`
	Times       string `bson:"times" json:"times"`
	Location    string `bson:"location,omitempty" json:"location,omitempty"`
	Instructor  string `bson:"instructor,omitempty" json:"instructor,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}
