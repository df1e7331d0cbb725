// Package router 组装gin引擎与全部路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Options 路由选项
type Options struct {
	Mode          string // debug | release | test
	EnableSwagger bool
	Logger        zerolog.Logger
	// CORS为nil时不启用跨域中间件
	CORS *middleware.CORSOptions
}

// Handlers 所有HTTP处理器
type Handlers struct {
	User   *handler.UserHandler
	Book   *handler.BookHandler
	Rating *handler.RatingHandler
	Review *handler.ReviewHandler
}

// New 创建并配置Gin引擎
// 路由一览：
//
//	POST   /api/v1/auth/register            公开
//	POST   /api/v1/auth/login               公开
//	POST   /api/v1/auth/refresh             公开
//	POST   /api/v1/auth/logout              登录
//	GET    /api/v1/books/search             登录
//	GET    /api/v1/books/:id                登录
//	POST   /api/v1/books                    AUTHOR | ADMIN
//	PUT    /api/v1/books/:id                AUTHOR | ADMIN
//	DELETE /api/v1/books/:id                AUTHOR | ADMIN
//	POST   /api/v1/books/rating/:bookId     USER
//	POST   /api/v1/books/reviews/:bookId    USER
//	GET    /api/v1/genres/top-rated/:genre  公开
func New(opts Options, h Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(opts.Logger),
		middleware.Metrics(),
	)
	if opts.CORS != nil {
		r.Use(middleware.CORS(*opts.CORS))
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档（生产环境关闭）
	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	maintainers := []user.Role{user.RoleAuthor, user.RoleAdmin}

	v1 := r.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", h.User.Register)
			authGroup.POST("/login", h.User.Login)
			authGroup.POST("/refresh", h.User.Refresh)
			authGroup.POST("/logout", auth.RequireAuth(), h.User.Logout)
		}

		books := v1.Group("/books", auth.RequireAuth())
		{
			books.GET("/search", h.Book.SearchBooks)
			books.GET("/:id", h.Book.GetBook)
			books.POST("", auth.RequireRole(maintainers...), h.Book.CreateBook)
			books.PUT("/:id", auth.RequireRole(maintainers...), h.Book.UpdateBook)
			books.DELETE("/:id", auth.RequireRole(maintainers...), h.Book.DeleteBook)

			books.POST("/rating/:bookId", auth.RequireRole(user.RoleUser), h.Rating.UpsertRating)
			books.POST("/reviews/:bookId", auth.RequireRole(user.RoleUser), h.Review.AddReview)
		}

		v1.GET("/genres/top-rated/:genre", h.Rating.TopRated)
	}

	return r
}
