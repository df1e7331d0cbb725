package book

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// Transactor 事务执行器
// mysql.TxManager与memory.Store都实现了该接口
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DeleteBookUseCase 删除图书用例
// 存在性检查、删除图书以及级联删除评分/评论在同一个事务里完成
type DeleteBookUseCase struct {
	bookService book.Service
	tx          Transactor
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(bookService book.Service, tx Transactor) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookService: bookService, tx: tx}
}

// Execute 执行删除,不存在时返回NotFound(重复删除同样返回NotFound)
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteBook")
	defer span.End()

	err := uc.tx.Transaction(ctx, func(ctx context.Context) error {
		return uc.bookService.DeleteBook(ctx, id)
	})
	if err != nil {
		tracing.RecordError(span, err)
		return err
	}

	logger.FromContext(ctx).Info().Uint("book_id", id).Msg("图书已删除")
	return nil
}
