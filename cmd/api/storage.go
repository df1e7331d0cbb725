package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
)

// storage 按配置选出的仓储实现
// 字段导出，wire.FieldsOf按字段注入
type storage struct {
	Books    book.Repository
	Ratings  rating.Repository
	Reviews  review.Repository
	Users    user.Repository
	Tx       appbook.Transactor
	Sessions user.SessionStore
}

// newStorage 根据storage.driver与redis.enabled组装仓储
// 返回的cleanup关闭数据库和Redis连接
func newStorage(ctx context.Context, cfg *config.Config) (*storage, func(), error) {
	var st storage
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn().Err(err).Msg("关闭连接失败")
			}
		}
	}

	// 1. 业务数据存储
	switch cfg.Storage.Driver {
	case config.DriverMySQL:
		db, err := mysql.NewDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("获取SQL DB失败: %w", err)
		}
		closers = append(closers, sqlDB.Close)

		st.Books = mysql.NewBookRepository(db)
		st.Ratings = mysql.NewRatingRepository(db)
		st.Reviews = mysql.NewReviewRepository(db)
		st.Users = mysql.NewUserRepository(db)
		st.Tx = mysql.NewTxManager(db)
	default:
		store := memory.NewStore()
		st.Books = store.Books()
		st.Ratings = store.Ratings()
		st.Reviews = store.Reviews()
		st.Users = store.Users()
		st.Tx = store
		log.Warn().Msg("使用内存存储，进程退出后数据丢失")
	}

	// 2. 会话与Token黑名单
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, cfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, client.Close)
		st.Sessions = redis.NewSessionStore(client)
	} else {
		st.Sessions = memory.NewSessionStore()
	}

	return &st, cleanup, nil
}
