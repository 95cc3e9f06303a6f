package main

import (
	"context"

	"project-hub/backend/internal/cache"
	"project-hub/backend/internal/config"
	"project-hub/backend/internal/database"
	"project-hub/backend/internal/handlers"
	"project-hub/backend/internal/middleware"
	"project-hub/backend/internal/monitoring"
	"project-hub/backend/internal/services"
	"project-hub/backend/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func setupRouter(cfg *config.Config, pool *database.DatabasePool, redisClient *redis.Client, redisCache *cache.RedisCache, jobs *worker.JobQueue) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryWithLog())

	collector := monitoring.NewCollector()
	router.Use(collector.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit)
		router.Use(limiter.Middleware())
	}

	checker := monitoring.NewHealthChecker()
	checker.Register("database", func(ctx context.Context) error {
		return pool.Health()
	})
	checker.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})

	router.GET("/health", collector.HealthHandler(checker))
	router.GET("/ready", monitoring.ReadinessHandler(checker))
	router.GET("/live", collector.LivenessHandler())
	router.GET("/metrics", collector.MetricsHandler())

	db := pool.DB

	authService := services.NewAuthService(cfg.Auth)
	registerService := services.NewRegisterService(cfg.Auth.BCryptCost)
	taskService := services.NewCachedTaskService(services.NewTaskService(), redisCache)
	userService := services.NewUserService(cfg.Auth.BCryptCost, taskService)
	projectService := services.NewProjectService(taskService)
	memberService := services.NewMemberService()
	commentService := services.NewCommentService()

	registerHandler := handlers.NewRegisterHandler(db, registerService)
	authHandler := handlers.NewAuthHandler(db, authService, int64(cfg.Auth.AccessTokenTTL.Seconds()))
	refreshHandler := handlers.NewRefreshHandler(db, authService)
	logoutHandler := handlers.NewLogoutHandler(db, authService)
	userHandler := handlers.NewUserHandler(db, userService)
	projectHandler := handlers.NewProjectHandler(db, projectService)
	memberHandler := handlers.NewMemberHandler(db, memberService)
	taskHandler := handlers.NewTaskHandler(db, taskService, jobs)
	commentHandler := handlers.NewCommentHandler(db, commentService)

	api := router.Group("/api")

	api.POST("/users/register", registerHandler.Register)
	api.POST("/users/login", authHandler.Login)
	api.POST("/token", authHandler.Login)
	api.POST("/token/refresh", refreshHandler.Refresh)
	api.POST("/token/logout", logoutHandler.Logout)

	api.GET("/users/:id", userHandler.GetUser)
	api.PUT("/users/:id", userHandler.UpdateUser)
	api.PATCH("/users/:id", userHandler.PatchUser)
	api.DELETE("/users/:id", userHandler.DeleteUser)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(cfg.Auth.JWTSecret, cfg.Auth.Issuer))

	protected.GET("/projects", projectHandler.ListProjects)
	protected.POST("/projects", projectHandler.CreateProject)
	protected.GET("/projects/:project_id", projectHandler.GetProject)
	protected.PUT("/projects/:project_id", projectHandler.UpdateProject)
	protected.PATCH("/projects/:project_id", projectHandler.PatchProject)
	protected.DELETE("/projects/:project_id", projectHandler.DeleteProject)

	protected.GET("/projects/:project_id/members", memberHandler.ListMembers)
	protected.POST("/projects/:project_id/members", memberHandler.CreateMember)
	protected.GET("/members/:id", memberHandler.GetMember)
	protected.PUT("/members/:id", memberHandler.UpdateMember)
	protected.PATCH("/members/:id", memberHandler.UpdateMember)
	protected.DELETE("/members/:id", memberHandler.DeleteMember)

	protected.GET("/projects/:project_id/tasks", taskHandler.ListTasks)
	protected.POST("/projects/:project_id/tasks", taskHandler.CreateTask)
	protected.GET("/tasks/:task_id", taskHandler.GetTask)
	protected.PUT("/tasks/:task_id", taskHandler.UpdateTask)
	protected.PATCH("/tasks/:task_id", taskHandler.UpdateTask)
	protected.DELETE("/tasks/:task_id", taskHandler.DeleteTask)

	protected.GET("/tasks/:task_id/comments", commentHandler.ListComments)
	protected.POST("/tasks/:task_id/comments", commentHandler.CreateComment)
	protected.GET("/comments/:id", commentHandler.GetComment)
	protected.PUT("/comments/:id", commentHandler.UpdateComment)
	protected.DELETE("/comments/:id", commentHandler.DeleteComment)

	return router
}
