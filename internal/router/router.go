package router

import (
	"time"

	"github.com/crewtrack/crewtrack/internal/handlers"
	"github.com/crewtrack/crewtrack/internal/middleware"
	"github.com/crewtrack/crewtrack/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/dashboard", middleware.AuthMiddleware(), handlers.GetDashboard)

		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.POST("/change-password", middleware.AuthMiddleware(), handlers.ChangePassword)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("", middleware.RequireRole(types.RoleAdmin, types.RoleProjectManager), handlers.ListUsers)
			users.POST("", middleware.RequireRole(types.RoleAdmin), handlers.CreateUser)
			users.PATCH("/:user_id", middleware.RequireRole(types.RoleAdmin), handlers.UpdateUser)
			users.DELETE("/:user_id", middleware.RequireRole(types.RoleAdmin), handlers.DeleteUser)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.GET("", handlers.ListProjects)
			projects.POST("", middleware.RequireRole(types.RoleAdmin, types.RoleProjectManager), handlers.CreateProject)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PATCH("/:project_id", middleware.RequireRole(types.RoleAdmin, types.RoleProjectManager), handlers.UpdateProject)
			projects.DELETE("/:project_id", middleware.RequireRole(types.RoleAdmin, types.RoleProjectManager), handlers.DeleteProject)

			projects.POST("/:project_id/messages", handlers.CreateMessage)

			projects.GET("/:project_id/meetings", handlers.ListMeetings)
			projects.POST("/:project_id/meetings", handlers.CreateMeeting)

			projects.GET("/:project_id/notes/:user_id", handlers.GetNote)
			projects.PUT("/:project_id/notes/:user_id", handlers.UpsertNote)
		}

		cfg := api.Group("/config", middleware.AuthMiddleware(), middleware.RequireRole(types.RoleAdmin))
		{
			cfg.GET("/db", handlers.GetDatabaseConfig)
			cfg.POST("/db", handlers.SaveDatabaseConfig)
			cfg.GET("/schema", handlers.DownloadSchema)
		}
	}

	return r
}
