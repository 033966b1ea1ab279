package routes

import (
	"task-tracker-api/internal/handlers"
	"task-tracker-api/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// allowedOrigins are the local development frontends
var allowedOrigins = map[string]bool{
	"http://localhost:5173": true,
	"http://localhost:5174": true,
}

// SetupRoutes wires services, handlers and middleware onto a gin engine
func SetupRoutes(db *gorm.DB) *gin.Engine {
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowedOrigins[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	authHandler := handlers.NewAuthHandler(services.NewAuthService(db))
	taskHandler := handlers.NewTaskHandler(services.NewTaskService(db))
	userHandler := handlers.NewUserHandler(services.NewUserService(db))
	commentHandler := handlers.NewCommentHandler(services.NewCommentService(db))
	activityHandler := handlers.NewActivityHandler(services.NewActivityService(db))

	api := ginRouter.Group("/api")
	{
		// Auth endpoints
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// Task endpoints
		api.GET("/tasks", taskHandler.GetTasks)
		api.GET("/tasks/by-status/:status", taskHandler.GetTasksByStatus)
		api.GET("/tasks/:id", taskHandler.GetTaskByID)
		api.POST("/tasks", taskHandler.CreateTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.PUT("/tasks/:id/restore", taskHandler.RestoreTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
		api.GET("/trash", taskHandler.GetDeletedTasks)

		// User endpoints
		api.GET("/users", userHandler.GetAllUsers)
		api.GET("/users/:id", userHandler.GetUserByID)
		api.POST("/users", userHandler.CreateUser)
		api.PUT("/users/:id", userHandler.UpdateUser)
		api.PUT("/users/:id/activate", userHandler.ActivateUser)
		api.DELETE("/users/:id", userHandler.DeleteUser)

		// Comment endpoints
		api.GET("/comments/task/:taskId", commentHandler.GetCommentsByTaskID)
		api.POST("/comments", commentHandler.CreateComment)

		// Activity log endpoints
		api.GET("/activities/recent", activityHandler.GetRecentActivities)
		api.GET("/activities/task/:taskId", activityHandler.GetActivitiesByTaskID)
	}

	return ginRouter
}
