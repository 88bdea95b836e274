package handlers

import (
	"errors"
	"net/http"

	"github.com/syedahibahasan/study-sync-backend/models"
	"github.com/syedahibahasan/study-sync-backend/services/matching"
	"github.com/syedahibahasan/study-sync-backend/services/schedule"
	userSvc "github.com/syedahibahasan/study-sync-backend/services/user"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors onto HTTP statuses. Storage
// failures stay generic 500s; the detailed cause is logged by the caller.
func respondServiceError(c *gin.Context, err error) {
	var invalid models.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
	case errors.Is(err, schedule.ErrNotFound),
		errors.Is(err, userSvc.ErrNotFound),
		errors.Is(err, matching.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, schedule.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
	case errors.Is(err, schedule.ErrGroupHasMembers):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, userSvc.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
	case errors.Is(err, userSvc.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
