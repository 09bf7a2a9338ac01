package app

import (
	"smart_quiz_backend/internal/config"
	"smart_quiz_backend/internal/middleware"
	"smart_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, cfg)

	// 2. 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret, s.user))
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		auth.POST("/register", c.auth.Register)
		auth.POST("/login", c.auth.Login)
		auth.POST("/admin/login", c.auth.AdminLogin)

		// 游客也能看分类，登录用户额外返回完成数
		public.GET("/categories", middleware.TryAuthMiddleware(cfg.JWT.Secret), c.category.ListCategories)
	}
}

func (a *App) registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/profile", c.auth.GetProfile)
	group.PUT("/auth/language", c.auth.UpdateLanguage)
	group.PATCH("/auth/profile/language", c.auth.UpdateLanguage)

	group.GET("/questions/:categoryId", c.question.ListUnsolved)
	group.POST("/questions/answer", c.question.SubmitAnswer)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AdminMiddleware(cfg.JWT.Secret))
	{
		admin.GET("/categories", c.category.AdminListCategories)

		admin.GET("/questions", c.question.ListQuestions)
		admin.POST("/questions", c.question.CreateQuestion)
		admin.PUT("/questions/:id", c.question.UpdateQuestion)
		admin.DELETE("/questions/:id", c.question.DeleteQuestion)

		admin.GET("/users/:id", c.user.GetUser)
		admin.PUT("/users/:id/mode", c.user.SetMode)
	}
}
