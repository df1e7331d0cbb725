// @title           Book Catalog API
// @version         1.0
// @description     图书目录服务：多条件检索、评分聚合、评论
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/xiebiao/bookcatalog/docs"
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
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("加载配置失败")
	}

	// 2. 日志
	appLog, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
		Service:      cfg.Tracing.ServiceName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("初始化日志失败")
	}
	logger.SetGlobal(appLog)

	log.Info().
		Int("port", cfg.Server.Port).
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Bool("redis", cfg.Redis.Enabled).
		Msg("配置加载成功")

	// 3. 指标与链路追踪
	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatal().Err(err).Msg("初始化链路追踪失败")
		}
		defer func() {
			if err := shutdownTracer(context.Background()); err != nil {
				log.Warn().Err(err).Msg("关闭TracerProvider失败")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. 依赖注入
	engine, cleanup, err := initializeApp(ctx, cfg, appLog)
	if err != nil {
		log.Fatal().Err(err).Msg("初始化应用失败")
	}
	defer cleanup()

	// 5. 启动服务
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("服务启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("服务异常退出")
			stop()
		}
	}()

	// 6. 优雅关闭
	<-ctx.Done()
	log.Info().Msg("收到退出信号，开始关闭服务")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("服务关闭超时")
	}
	log.Info().Msg("服务已停止")
}

// initializeApp 手动组装依赖
// 依赖链：Repository ← Service ← UseCase ← Handler ← Router
// wire.go声明了同样的依赖图，wire gen生成的代码与这里等价
func initializeApp(ctx context.Context, cfg *config.Config, l zerolog.Logger) (*gin.Engine, func(), error) {
	// 基础设施层
	st, cleanup, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	jwtManager := provideJWTManager(cfg)

	// 领域层
	userService := user.NewService(st.Users)
	bookService := book.NewService(st.Books)
	ratingService := provideRatingService(st.Ratings, st.Books)
	reviewService := provideReviewService(st.Reviews, st.Books)

	// 应用层 + 接口层
	userHandler := handler.NewUserHandler(
		appuser.NewRegisterUseCase(userService),
		provideLoginUseCase(cfg, userService, jwtManager, st.Sessions),
		appuser.NewLogoutUseCase(st.Sessions),
		appuser.NewRefreshTokenUseCase(jwtManager),
	)
	bookHandler := handler.NewBookHandler(
		appbook.NewCreateBookUseCase(bookService),
		appbook.NewGetBookUseCase(bookService),
		appbook.NewUpdateBookUseCase(bookService),
		provideDeleteBookUseCase(bookService, st.Tx),
		provideSearchBooksUseCase(cfg, bookService),
	)
	ratingHandler := handler.NewRatingHandler(
		apprating.NewUpsertRatingUseCase(ratingService),
		provideTopRatedUseCase(cfg, ratingService),
	)
	reviewHandler := handler.NewReviewHandler(appreview.NewAddReviewUseCase(reviewService))

	engine := router.New(
		provideRouterOptions(cfg, l),
		provideHandlers(userHandler, bookHandler, ratingHandler, reviewHandler),
		middleware.NewAuthMiddleware(jwtManager, st.Sessions),
	)
	return engine, cleanup, nil
}
