package handlers

import (
	"net/http"

	"github.com/syedahibahasan/study-sync-backend/middleware"
	"github.com/syedahibahasan/study-sync-backend/models"
	userSvc "github.com/syedahibahasan/study-sync-backend/services/user"
	"github.com/syedahibahasan/study-sync-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes registration, login and profile endpoints.
type UserHandler struct {
	UserService userSvc.UserService
}

// NewUserHandler wires a UserHandler.
func NewUserHandler(svc userSvc.UserService) *UserHandler {
	return &UserHandler{UserService: svc}
}

// RegisterUserHandler handles POST /api/users/register.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req userSvc.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	usr, token, err := h.UserService.Register(req)
	if err != nil {
		logger.Error("Registration failed", zap.String("email", req.Email), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": usr, "token": token})
}

// AuthenticateUserHandler handles POST /api/users/login.
func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	usr, token, err := h.UserService.Authenticate(req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": usr, "token": token})
}

// GetUserByIDHandler handles GET /api/users/me.
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	usr, err := h.UserService.GetUserByID(userID)
	if err != nil {
		logger.Error("User not found", zap.String("id", userID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateBusyTimesHandler handles PUT /api/users/me/busytimes. It replaces
// the authenticated user's hard commitments for one day.
func (h *UserHandler) UpdateBusyTimesHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Day       string   `json:"day" binding:"required"`
		BusyTimes []string `json:"busyTimes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.UserService.UpdateBusyTimes(userID, req.Day, models.NewTimeSet(req.BusyTimes...))
	if err != nil {
		logger.Error("Failed to update busy times", zap.String("id", userID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": updated})
}

// UpdatePreferencesHandler handles PUT /api/users/me/preferences.
func (h *UserHandler) UpdatePreferencesHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		EnrolledCourses    []string `json:"enrolledCourses"`
		PreferredLocations []string `json:"preferredLocations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	usr, err := h.UserService.UpdatePreferences(userID, req.EnrolledCourses, req.PreferredLocations)
	if err != nil {
		logger.Error("Failed to update preferences", zap.String("id", userID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// RevokeUserAuthTokenHandler handles DELETE /api/users/me/token.
func (h *UserHandler) RevokeUserAuthTokenHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.UserService.RevokeToken(userID); err != nil {
		logger.Error("Failed to revoke token", zap.String("id", userID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token revoked"})
}
