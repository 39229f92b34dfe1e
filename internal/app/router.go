package app

import (
	"driveschool_backend/docs"
	"driveschool_backend/internal/config"
	"driveschool_backend/internal/middleware"
	"driveschool_backend/internal/model"
	"driveschool_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	a.registerPublicRoutes(router, c, cfg)

	// Authenticated routes. The maintenance gate sits after auth so
	// admins stay in while the platform is closed.
	authGroup := router.Group("/api")
	authGroup.Use(
		middleware.AuthMiddleware(cfg),
		middleware.ActivityMiddleware(repos.user),
		middleware.MaintenanceMiddleware(a.services.setting),
	)
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// The course catalog is browsable before signing up. A token is
	// optional; when present the listing carries enrolment status.
	catalog := router.Group("/api/courses")
	catalog.Use(middleware.TryAuthMiddleware(cfg))
	{
		catalog.GET("", c.course.List)
		catalog.GET("/:id", c.course.Get)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar", c.user.UploadAvatar)
	rg.GET("/instructors", c.user.ListInstructors)

	// Theory test practice
	theory := rg.Group("/theory")
	{
		theory.GET("/categories", c.theory.GetCategories)
		theory.POST("/categories", c.theory.StartSession)
		theory.POST("/answers", c.theory.SubmitAnswer)
	}

	// Lesson bookings
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", c.booking.Create)
		bookings.GET("", c.booking.List)
		bookings.GET("/:id", c.booking.Get)
		bookings.PATCH("/:id/status", c.booking.UpdateStatus)
	}

	// Enrolment. The catalog itself is public, see registerPublicRoutes.
	courses := rg.Group("/courses")
	{
		courses.GET("/enrolments", c.course.Enrolments)
		courses.POST("/:id/enrol", c.course.Enrol)
	}

	// Messaging
	messages := rg.Group("/messages")
	{
		messages.POST("", c.message.Send)
		messages.GET("", c.message.Conversations)
		messages.GET("/unread", c.message.Unread)
		messages.GET("/:userId", c.message.Conversation)
	}

	rg.GET("/dashboard/student", c.dashboard.Student)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/dashboard")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		instructor.GET("/instructor", c.dashboard.Instructor)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/dashboard", c.dashboard.Admin)

		theory := admin.Group("/theory")
		{
			theory.GET("/stats", c.theoryAdmin.GetStats)
			theory.GET("/questions", c.theoryAdmin.ListQuestions)
			theory.POST("/questions", c.theoryAdmin.CreateQuestion)
			theory.PUT("/questions/:id", c.theoryAdmin.UpdateQuestion)
			theory.PATCH("/questions/:id/active", c.theoryAdmin.SetQuestionActive)
			theory.POST("/questions/:id/image", c.theoryAdmin.UploadQuestionImage)
			theory.GET("/categories", c.theoryAdmin.ListCategories)
			theory.PATCH("/categories/:id/active", c.theoryAdmin.SetCategoryActive)
		}

		users := admin.Group("/users")
		{
			users.GET("", c.user.ListUsers)
			users.POST("", c.user.CreateUser)
			users.PATCH("/:id/disable", c.user.SetDisabled)
		}

		courses := admin.Group("/courses")
		{
			courses.POST("", c.course.Create)
			courses.PUT("/:id", c.course.Update)
			courses.PATCH("/:id/active", c.course.SetActive)
		}

		settings := admin.Group("/settings")
		{
			settings.GET("", c.setting.List)
			settings.PUT("", c.setting.Update)
			settings.PUT("/maintenance", c.setting.SetMaintenance)
		}
	}
}
