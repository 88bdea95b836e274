// File: study-sync-backend/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/syedahibahasan/study-sync-backend/config"
	"github.com/syedahibahasan/study-sync-backend/database"
	courseRepoPkg "github.com/syedahibahasan/study-sync-backend/database/repository/course"
	groupRepoPkg "github.com/syedahibahasan/study-sync-backend/database/repository/group"
	userRepoPkg "github.com/syedahibahasan/study-sync-backend/database/repository/user"
	"github.com/syedahibahasan/study-sync-backend/handlers"
	"github.com/syedahibahasan/study-sync-backend/middleware"
	"github.com/syedahibahasan/study-sync-backend/realtime"
	"github.com/syedahibahasan/study-sync-backend/routes"
	"github.com/syedahibahasan/study-sync-backend/services/matching"
	"github.com/syedahibahasan/study-sync-backend/services/schedule"
	userSvcPkg "github.com/syedahibahasan/study-sync-backend/services/user"
	"github.com/syedahibahasan/study-sync-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache": utils.CacheClient,
		"auth":  utils.AuthCacheClient,
	}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	groupRepo := groupRepoPkg.NewMongoGroupRepo()
	courseRepo := courseRepoPkg.NewMongoCourseRepo()

	// services.
	userService := &userSvcPkg.DefaultUserService{
		Repo: userRepo,
	}
	matchingService := &matching.DefaultMatchingService{
		UserRepo:    userRepo,
		GroupRepo:   groupRepo,
		CacheClient: utils.GetCacheClient(),
	}
	scheduleService := &schedule.DefaultScheduleService{
		UserRepo:  userRepo,
		GroupRepo: groupRepo,
	}

	// realtime hub, injected into whatever triggers broadcasts.
	hub := realtime.NewHub(logger)

	userHandler := handlers.NewUserHandler(userService)
	courseHandler := handlers.NewCourseHandler(courseRepo)
	groupHandler := handlers.NewGroupHandler(scheduleService, matchingService, groupRepo)
	chatHandler := handlers.NewChatHandler(hub, groupRepo, userRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		RegisterUserHandler:        userHandler.RegisterUserHandler,
		AuthenticateUserHandler:    userHandler.AuthenticateUserHandler,
		GetUserByIDHandler:         userHandler.GetUserByIDHandler,
		UpdateBusyTimesHandler:     userHandler.UpdateBusyTimesHandler,
		UpdatePreferencesHandler:   userHandler.UpdatePreferencesHandler,
		RevokeUserAuthTokenHandler: userHandler.RevokeUserAuthTokenHandler,

		ListCoursesHandler: courseHandler.ListCoursesHandler,

		CreateGroupHandler:      groupHandler.CreateGroupHandler,
		GetGroupByIDHandler:     groupHandler.GetGroupByIDHandler,
		GetMyGroupsHandler:      groupHandler.GetMyGroupsHandler,
		MatchingGroupsHandler:   groupHandler.MatchingGroupsHandler,
		JoinGroupHandler:        groupHandler.JoinGroupHandler,
		LeaveGroupHandler:       groupHandler.LeaveGroupHandler,
		DeleteGroupHandler:      groupHandler.DeleteGroupHandler,
		UpdateGroupTimesHandler: groupHandler.UpdateGroupTimesHandler,
		GetGroupMessagesHandler: groupHandler.GetGroupMessagesHandler,

		GroupChatHandler: chatHandler.ServeWS,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "5001"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
