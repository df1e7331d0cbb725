package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	apprating "github.com/xiebiao/bookcatalog/internal/application/rating"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

// 自定义Provider：参数需要从Config中提取，或者需要把仓储转换成更窄的接口
// main.go手动组装与wire.go共用这些函数

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func provideRatingService(ratings rating.Repository, books book.Repository) rating.Service {
	return rating.NewService(ratings, books)
}

func provideReviewService(reviews review.Repository, books book.Repository) review.Service {
	return review.NewService(reviews, books)
}

// provideLoginUseCase 会话有效期与Refresh Token一致
func provideLoginUseCase(cfg *config.Config, svc user.Service, jwtManager *jwt.Manager, sessions user.SessionStore) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(svc, jwtManager, sessions, cfg.JWT.RefreshTokenExpire)
}

func provideTopRatedUseCase(cfg *config.Config, svc rating.Service) *apprating.TopRatedUseCase {
	return apprating.NewTopRatedUseCase(svc, cfg.Catalog.TopRatedDefaultLimit)
}

func provideDeleteBookUseCase(svc book.Service, tx appbook.Transactor) *appbook.DeleteBookUseCase {
	return appbook.NewDeleteBookUseCase(svc, tx)
}

func provideSearchBooksUseCase(cfg *config.Config, svc book.Service) *appbook.SearchBooksUseCase {
	return appbook.NewSearchBooksUseCase(svc, appbook.PageSizes{
		Default: cfg.Catalog.DefaultPageSize,
		Max:     cfg.Catalog.MaxPageSize,
	})
}

func provideRouterOptions(cfg *config.Config, l zerolog.Logger) router.Options {
	opts := router.Options{
		Mode:          cfg.Server.Mode,
		EnableSwagger: cfg.Server.Mode != gin.ReleaseMode,
		Logger:        l,
	}
	if cfg.CORS.Enabled {
		opts.CORS = &middleware.CORSOptions{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     cfg.CORS.AllowMethods,
			AllowHeaders:     cfg.CORS.AllowHeaders,
			ExposeHeaders:    cfg.CORS.ExposeHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		}
	}
	return opts
}

func provideHandlers(
	u *handler.UserHandler,
	b *handler.BookHandler,
	rt *handler.RatingHandler,
	rv *handler.ReviewHandler,
) router.Handlers {
	return router.Handlers{User: u, Book: b, Rating: rt, Review: rv}
}

