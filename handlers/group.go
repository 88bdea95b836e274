package handlers

import (
	"net/http"
	"strconv"

	groupRepoPkg "github.com/syedahibahasan/study-sync-backend/database/repository/group"
	"github.com/syedahibahasan/study-sync-backend/middleware"
	"github.com/syedahibahasan/study-sync-backend/models"
	"github.com/syedahibahasan/study-sync-backend/services/matching"
	"github.com/syedahibahasan/study-sync-backend/services/schedule"
	"github.com/syedahibahasan/study-sync-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GroupHandler exposes group CRUD, membership and matching endpoints.
type GroupHandler struct {
	ScheduleService schedule.ScheduleService
	MatchingService matching.MatchingService
	GroupRepo       groupRepoPkg.GroupRepository
}

// NewGroupHandler wires a GroupHandler.
func NewGroupHandler(sched schedule.ScheduleService, match matching.MatchingService, repo groupRepoPkg.GroupRepository) *GroupHandler {
	return &GroupHandler{ScheduleService: sched, MatchingService: match, GroupRepo: repo}
}

// CreateGroupHandler handles POST /api/groups. The creator becomes the
// group's admin and first member; their schedule absorbs the proposal.
func (h *GroupHandler) CreateGroupHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		GroupName     string                 `json:"groupName" binding:"required"`
		Course        string                 `json:"course" binding:"required"`
		MeetingType   string                 `json:"meetingType" binding:"required"`
		Location      string                 `json:"location"`
		SelectedTimes []models.TimeSelection `json:"selectedTimes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	group := &models.Group{
		GroupName:     req.GroupName,
		Course:        req.Course,
		MeetingType:   req.MeetingType,
		Location:      req.Location,
		SelectedTimes: req.SelectedTimes,
	}
	created, err := h.ScheduleService.CreateGroup(c.Request.Context(), userID, group)
	if err != nil {
		logger.Error("Failed to create group", zap.String("userID", userID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Group created successfully", "group": created})
}

// GetGroupByIDHandler handles GET /api/groups/:groupId.
func (h *GroupHandler) GetGroupByIDHandler(c *gin.Context) {
	logger := utils.GetLogger()

	group, err := h.GroupRepo.GetByID(c.Param("groupId"))
	if err != nil {
		logger.Warn("Group not found", zap.String("groupId", c.Param("groupId")), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// GetMyGroupsHandler handles GET /api/groups/mine.
func (h *GroupHandler) GetMyGroupsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	groups, err := h.GroupRepo.ListByMember(userID)
	if err != nil {
		logger.Error("Failed to list groups", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// MatchingGroupsHandler handles GET /api/groups/matching: groups the user
// could join without colliding with their busy times.
func (h *GroupHandler) MatchingGroupsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	groups, err := h.MatchingService.MatchingGroups(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Matching failed", zap.String("userID", userID), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// JoinGroupHandler handles POST /api/groups/:groupId/join.
func (h *GroupHandler) JoinGroupHandler(c *gin.Context) {
	h.applyMembership(c, schedule.DirectionJoin)
}

// LeaveGroupHandler handles POST /api/groups/:groupId/leave.
func (h *GroupHandler) LeaveGroupHandler(c *gin.Context) {
	h.applyMembership(c, schedule.DirectionLeave)
}

// DeleteGroupHandler handles DELETE /api/groups/:groupId. Admin only.
func (h *GroupHandler) DeleteGroupHandler(c *gin.Context) {
	h.applyMembership(c, schedule.DirectionDelete)
}

func (h *GroupHandler) applyMembership(c *gin.Context, direction schedule.Direction) {
	logger := utils.GetLogger()

	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	groupID := c.Param("groupId")

	updated, err := h.ScheduleService.ApplyMembershipChange(c.Request.Context(), userID, groupID, direction)
	if err != nil {
		logger.Error("Membership change failed",
			zap.String("userID", userID), zap.String("groupID", groupID),
			zap.String("direction", string(direction)), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedule": updated})
}

// UpdateGroupTimesHandler handles PUT /api/groups/:groupId/times.
func (h *GroupHandler) UpdateGroupTimesHandler(c *gin.Context) {
	logger := utils.GetLogger()

	userID, ok := middleware.AuthedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		SelectedTimes []models.TimeSelection `json:"selectedTimes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid selectedTimes format"})
		return
	}

	group, err := h.ScheduleService.UpdateGroupTimes(c.Request.Context(), userID, c.Param("groupId"), req.SelectedTimes)
	if err != nil {
		logger.Error("Failed to update group times", zap.String("groupId", c.Param("groupId")), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group times updated successfully", "group": group})
}

// GetGroupMessagesHandler handles GET /api/groups/:groupId/messages with
// page/limit pagination over the persisted log.
func (h *GroupHandler) GetGroupMessagesHandler(c *gin.Context) {
	logger := utils.GetLogger()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := h.GroupRepo.GetMessages(c.Param("groupId"), page, limit)
	if err != nil {
		logger.Warn("Failed to fetch messages", zap.String("groupId", c.Param("groupId")), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
