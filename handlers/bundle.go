package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct handed to the
// route registration.
type HandlerBundle struct {
	// User endpoints.
	RegisterUserHandler        gin.HandlerFunc
	AuthenticateUserHandler    gin.HandlerFunc
	GetUserByIDHandler         gin.HandlerFunc
	UpdateBusyTimesHandler     gin.HandlerFunc
	UpdatePreferencesHandler   gin.HandlerFunc
	RevokeUserAuthTokenHandler gin.HandlerFunc

	// Course endpoints.
	ListCoursesHandler gin.HandlerFunc

	// Group endpoints.
	CreateGroupHandler      gin.HandlerFunc
	GetGroupByIDHandler     gin.HandlerFunc
	GetMyGroupsHandler      gin.HandlerFunc
	MatchingGroupsHandler   gin.HandlerFunc
	JoinGroupHandler        gin.HandlerFunc
	LeaveGroupHandler       gin.HandlerFunc
	DeleteGroupHandler      gin.HandlerFunc
	UpdateGroupTimesHandler gin.HandlerFunc
	GetGroupMessagesHandler gin.HandlerFunc

	// Chat endpoints.
	GroupChatHandler gin.HandlerFunc
}
