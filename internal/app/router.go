package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	api := router.Group("/api/v1")
	api.Use(middleware.TenantMiddleware(s.tenant))

	// 公共路由（游客可访问，登录用户附带身份）
	public := api.Group("")
	public.Use(middleware.TryAuthMiddleware(cfg))
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/tenant", c.tenant.Current)
		public.GET("/courses", c.course.List)
		public.GET("/courses/:id", c.course.Get)
		public.GET("/courses/:id/modules", c.course.ListModules)
		public.GET("/courses/:id/reviews", c.course.ListReviews)
		public.GET("/categories", c.course.ListCategories)
	}

	// 学员路由
	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware(cfg))
	{
		authorized.GET("/profile", c.auth.Profile)
		authorized.PUT("/profile", c.auth.UpdateProfile)
		authorized.PUT("/profile/password", c.auth.ChangePassword)

		authorized.POST("/courses/:id/enroll", c.enrollment.Enroll)
		authorized.GET("/courses/:id/progress", c.enrollment.CourseProgress)
		authorized.POST("/courses/:id/reviews", c.course.SubmitReview)
		authorized.GET("/enrollments", c.enrollment.ListMine)
		authorized.POST("/enrollments/:id/withdraw", c.enrollment.Withdraw)

		authorized.GET("/lessons/:id", c.lesson.Get)
		authorized.POST("/lessons/:id/progress", c.lesson.ReportProgress)
		authorized.POST("/lessons/:id/complete", c.lesson.Complete)
		authorized.PUT("/lessons/:id/bookmark", c.lesson.SaveBookmark)
		authorized.DELETE("/lessons/:id/bookmark", c.lesson.DeleteBookmark)
		authorized.GET("/bookmarks", c.lesson.ListBookmarks)

		authorized.GET("/payments", c.payment.ListMine)
		authorized.GET("/payments/:id", c.payment.Get)
		authorized.POST("/payments/:id/confirm", c.payment.Confirm)
		authorized.POST("/payments/:id/cancel", c.payment.Cancel)
	}

	// 教师路由（管理员隐含教师权限）
	teacher := api.Group("")
	teacher.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/courses", c.course.Create)
		teacher.PUT("/courses/:id", c.course.Update)
		teacher.POST("/courses/:id/publish", c.course.Publish)
		teacher.POST("/courses/:id/archive", c.course.Archive)
		teacher.DELETE("/courses/:id", c.course.Delete)
		teacher.POST("/courses/:id/modules", c.course.CreateModule)
		teacher.GET("/courses/:id/enrollments", c.enrollment.ListByCourse)
		teacher.POST("/courses/:id/thumbnail", c.content.UploadThumbnail)
		teacher.DELETE("/modules/:id", c.course.DeleteModule)
		teacher.POST("/modules/:id/lessons", c.lesson.Create)
		teacher.PUT("/lessons/:id", c.lesson.Update)
		teacher.DELETE("/lessons/:id", c.lesson.Delete)
		teacher.POST("/lessons/:id/video", c.content.UploadVideo)
		teacher.POST("/categories", c.course.CreateCategory)
	}

	// 管理员路由
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/tenants", c.tenant.Create)
		admin.GET("/tenants", c.tenant.List)
		admin.GET("/users", c.user.List)
		admin.PUT("/users/:id/role", c.user.SetRole)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)
		admin.POST("/payments/:id/refund", c.payment.Refund)
	}
}
