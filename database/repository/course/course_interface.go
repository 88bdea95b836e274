package courseRepo

import "github.com/syedahibahasan/study-sync-backend/models"

// CourseRepository exposes the static scraped course catalog.
type CourseRepository interface {
	// GetByID retrieves a course by its unique ID.
	GetByID(id string) (*models.Course, error)
	// List returns the full catalog with the listing projection applied.
	List() ([]models.Course, error)
	// Search matches the query against course title and class number.
	Search(query string) ([]models.Course, error)
}
