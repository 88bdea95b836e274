package routes

import (
	"time"

	"github.com/syedahibahasan/study-sync-backend/handlers"
	"github.com/syedahibahasan/study-sync-backend/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers user endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.GetUserByIDHandler)
		api.PUT("/me/busytimes", hb.UpdateBusyTimesHandler)
		api.PUT("/me/preferences", hb.UpdatePreferencesHandler)
		api.DELETE("/me/token", hb.RevokeUserAuthTokenHandler)
	}
}

// RegisterCourseRoutes registers the public course catalog endpoints.
func RegisterCourseRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/courses")
	{
		api.GET("", hb.ListCoursesHandler)
	}
}

// RegisterGroupRoutes registers group CRUD, membership, matching and chat
// endpoints. Everything here requires authentication.
func RegisterGroupRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/groups")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", hb.CreateGroupHandler)
		api.GET("/mine", hb.GetMyGroupsHandler)
		api.GET("/matching", hb.MatchingGroupsHandler)
		api.GET("/:groupId", hb.GetGroupByIDHandler)
		api.POST("/:groupId/join", hb.JoinGroupHandler)
		api.POST("/:groupId/leave", hb.LeaveGroupHandler)
		api.DELETE("/:groupId", hb.DeleteGroupHandler)
		api.PUT("/:groupId/times", hb.UpdateGroupTimesHandler)
		api.GET("/:groupId/messages", hb.GetGroupMessagesHandler)
		api.GET("/:groupId/ws", hb.GroupChatHandler)
	}
}

// RegisterHealthRoute registers the health snapshot endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes wires global middleware and all route groups.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterCourseRoutes(r, hb)
	RegisterGroupRoutes(r, hb)
	RegisterHealthRoute(r)
}
