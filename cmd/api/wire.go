//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 修改依赖图后执行 wire gen ./cmd/api 生成wire_gen.go；
// 未生成时main.go中的initializeApp手动完成同样的组装

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/rs/zerolog"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	apprating "github.com/xiebiao/bookcatalog/internal/application/rating"
	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// storageSet 仓储层：按storage.driver选择MySQL或内存实现，再按字段拆开
var storageSet = wire.NewSet(
	newStorage,
	wire.FieldsOf(new(*storage), "Books", "Ratings", "Reviews", "Users", "Tx", "Sessions"),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	provideRatingService,
	provideReviewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	provideJWTManager,
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewRefreshTokenUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	provideDeleteBookUseCase,
	provideSearchBooksUseCase,
	apprating.NewUpsertRatingUseCase,
	provideTopRatedUseCase,
	appreview.NewAddReviewUseCase,
)

// httpSet 处理器、中间件与路由
var httpSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewRatingHandler,
	handler.NewReviewHandler,
	middleware.NewAuthMiddleware,
	provideHandlers,
	provideRouterOptions,
	router.New,
)

// InitializeApp Wire注入器
// 返回的cleanup关闭数据库和Redis连接
func InitializeApp(ctx context.Context, cfg *config.Config, l zerolog.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		storageSet,
		domainSet,
		applicationSet,
		httpSet,
	)
	return nil, nil, nil
}
