package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "bookcatalog/mysql"

// txKey context中事务DB的key
type txKey struct{}

// TxManager 事务管理器
// 事务DB通过context向下传递，仓储方法统一用getDB取连接，
// 因此同一个ctx里的仓储调用天然落在同一事务中
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction fn返回error时ROLLBACK，返回nil时COMMIT
// 已处于事务中时GORM使用SAVEPOINT实现嵌套
//
//	err := tx.Transaction(ctx, func(ctx context.Context) error {
//	    return bookService.DeleteBook(ctx, id) // 评分、评论、图书一起删除
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, span := tracing.StartSpan(ctx, tracerName, "Transaction")
	defer span.End()

	err := getDB(ctx, m.db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})

	result := metrics.TxCommit
	if err != nil {
		result = metrics.TxRollback
		tracing.RecordError(span, err)
		logger.FromContext(ctx).Debug().Err(err).Msg("事务回滚")
	}
	metrics.IncCounterVec(metrics.DBTransactionsTotal, map[string]string{"result": result})
	return err
}

// getDB 从context获取事务DB,没有则使用默认DB
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
