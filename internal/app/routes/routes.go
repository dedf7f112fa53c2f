package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/admissions/internal/app/controllers"
	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/middleware"
)

// ResourceHandlers is the handler set behind one record endpoint
type ResourceHandlers interface {
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// Resource binds a record endpoint to its handlers
type Resource struct {
	Path     string
	Handlers ResourceHandlers
}

// Controllers collects every controller the API serves
type Controllers struct {
	Auth   *controllers.AuthController
	Health *controllers.HealthController
	Course *controllers.CourseController
	// Self resources are scoped to the caller
	Self []Resource
	// Admin resources mirror Self for a target user_id
	Admin []Resource
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrls Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	// --- Public routes ---
	api.POST("/login", ctrls.Auth.Login)
	api.POST("/register", ctrls.Auth.Register)
	api.GET("/health", ctrls.Health.Health)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.Authenticate())
	{
		authenticated.POST("/logout", ctrls.Auth.Logout)
		registerResources(authenticated, ctrls.Self)
	}

	// --- Admin routes ---
	admin := authenticated.Group("/admin")
	admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
	{
		course := admin.Group("/course")
		{
			course.GET("", ctrls.Course.GetCourse)
			course.POST("", ctrls.Course.CreateCourse)
			course.PUT("", ctrls.Course.UpdateCourse)
			course.DELETE("", ctrls.Course.DeleteCourse)

			course.GET("/:id", ctrls.Course.GetCourse)
			course.PUT("/:id", ctrls.Course.UpdateCourse)
			course.DELETE("/:id", ctrls.Course.DeleteCourse)
		}
		registerResources(admin, ctrls.Admin)
	}
}

func registerResources(group *gin.RouterGroup, resources []Resource) {
	for _, r := range resources {
		group.GET(r.Path, r.Handlers.Get)
		group.POST(r.Path, r.Handlers.Create)
		group.PUT(r.Path, r.Handlers.Update)
		group.DELETE(r.Path, r.Handlers.Delete)
	}
}
