package routes

import (
	"riise-api/controllers"
	"riise-api/middleware"
	"riise-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/users/signup", controllers.Signup)
			public.POST("/users/login", controllers.Login)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "RIISE API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/profile", controllers.UpdateProfile)
			protected.PUT("/change-password", controllers.ChangePassword)
			protected.POST("/profile/id-card", controllers.UploadIDCard)
			protected.POST("/profile/scholar-metrics", controllers.RefreshScholarMetrics)

			// User administration
			users := protected.Group("/users")
			{
				users.GET("", middleware.RequireRole(models.RoleAdmin), controllers.ListUsers)
				users.POST("/:id/verify", middleware.RequireRole(models.RoleAdmin), controllers.VerifyUser)
			}

			// IPR filings
			ipr := protected.Group("/ipr")
			{
				ipr.GET("/", controllers.GetIPRs)
				ipr.POST("/add-ipr", controllers.AddIPR)
				ipr.PUT("/update-ipr/:id", controllers.UpdateIPR)
				ipr.DELETE("/delete-ipr/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteIPR)
			}

			// Research papers
			research := protected.Group("/research")
			{
				research.GET("/", controllers.GetResearchPapers)
				research.POST("/add-research", controllers.AddResearchPaper)
				research.PUT("/update-research/:id", controllers.UpdateResearchPaper)
				research.DELETE("/delete-research/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteResearchPaper)
			}

			// Innovations
			innovation := protected.Group("/innovation")
			{
				innovation.GET("/", controllers.GetInnovations)
				innovation.POST("/add-innovation", controllers.AddInnovation)
				innovation.PUT("/update-innovation/:id", controllers.UpdateInnovation)
				innovation.DELETE("/delete-innovation/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteInnovation)
			}

			// Startups
			startup := protected.Group("/startup")
			{
				startup.GET("/", controllers.GetStartups)
				startup.POST("/add-startup", controllers.AddStartup)
				startup.PUT("/update-startup/:id", controllers.UpdateStartup)
				startup.DELETE("/delete-startup/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeleteStartup)
			}

			// PDF exports
			export := protected.Group("/export")
			{
				export.GET("/user", controllers.ExportOwnData)
				export.GET("/admin/user/:email", middleware.RequireRole(models.RoleAdmin), controllers.ExportUserData)
				export.GET("/admin/all", middleware.RequireRole(models.RoleAdmin), controllers.ExportAllUsersData)
			}

			// Dashboard
			protected.GET("/dashboard/stats", controllers.GetDashboardStats)
		}
	}
}
