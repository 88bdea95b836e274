package handlers

import (
	"net/http"

	courseRepoPkg "github.com/syedahibahasan/study-sync-backend/database/repository/course"
	"github.com/syedahibahasan/study-sync-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CourseHandler exposes the scraped course catalog.
type CourseHandler struct {
	CourseRepo courseRepoPkg.CourseRepository
}

// NewCourseHandler wires a CourseHandler.
func NewCourseHandler(repo courseRepoPkg.CourseRepository) *CourseHandler {
	return &CourseHandler{CourseRepo: repo}
}

// ListCoursesHandler handles GET /api/courses, optionally filtered with ?q=.
func (h *CourseHandler) ListCoursesHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var err error
	var courses interface{}
	if q := c.Query("q"); q != "" {
		courses, err = h.CourseRepo.Search(q)
	} else {
		courses, err = h.CourseRepo.List()
	}
	if err != nil {
		logger.Error("Failed to fetch courses", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching courses"})
		return
	}
	c.JSON(http.StatusOK, courses)
}
