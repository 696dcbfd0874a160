package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"blog-cms/cmd/api/dto"
	"blog-cms/cmd/api/handlers"
	"blog-cms/cmd/api/middleware"
	"blog-cms/cmd/api/services"
	_ "blog-cms/docs"
	"blog-cms/internal/logger"
)

// Deps are the wired services the routes are built on.
type Deps struct {
	Public *services.PublicService
	Admin  *services.AdminService
	// Auth is nil when no jwt secret is configured; the admin API is then open
	// and the login route is not registered.
	Auth *services.AuthService

	PublicDir   string
	CorsOrigins []string
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(recoverJSON))
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", handlers.HealthHandler(deps.Public))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := r.Group("/api/public", middleware.PublicCORS(deps.CorsOrigins))
	{
		public.GET("/posts", handlers.ListPublicPostsHandler(deps.Public))
		public.GET("/posts/:slug", handlers.GetPublicPostHandler(deps.Public))
		public.GET("/categories", handlers.ListCategoriesHandler(deps.Public))
		public.GET("/authors", handlers.ListAuthorsHandler(deps.Public))
		public.GET("/stats", handlers.StatsHandler(deps.Public))
		// preflight; the cors middleware answers and aborts
		public.OPTIONS("/*path", func(c *gin.Context) {})
	}

	admin := r.Group("/api/posts")
	if deps.Auth != nil {
		loginLimiter := middleware.NewRateLimiter(5, time.Minute)
		r.POST("/api/auth/login", loginLimiter.Limit(), handlers.LoginHandler(deps.Auth))
		admin.Use(middleware.AdminAuthMiddleware(deps.Auth))
	}
	{
		admin.GET("", handlers.AdminListPostsHandler(deps.Admin))
		admin.GET("/:id", handlers.AdminGetPostHandler(deps.Admin))
		admin.POST("", handlers.AdminCreatePostHandler(deps.Admin))
		admin.PUT("/:id", handlers.AdminUpdatePostHandler(deps.Admin))
		admin.DELETE("/:id", handlers.AdminDeletePostHandler(deps.Admin))
	}

	if deps.PublicDir != "" {
		files := http.FileServer(http.Dir(deps.PublicDir))
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "not found"})
				return
			}
			files.ServeHTTP(c.Writer, c.Request)
		})
	}

	return r
}

// recoverJSON 은 panic 을 일반 에러와 같은 봉투로 돌려준다.
func recoverJSON(c *gin.Context, err any) {
	logger.ErrorWithFields("Recovered from panic", logger.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"panic":  err,
	})
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Fail("internal server error"))
}
