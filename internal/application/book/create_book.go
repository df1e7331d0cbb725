package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// CreateBookUseCase 新增图书用例
// 设计说明:
// 1. 应用层负责用例编排,协调领域服务完成业务流程
// 2. 输入输出使用DTO,与HTTP层解耦
// 3. 横切关注点(日志、Span、指标)放在这一层,领域服务保持纯粹
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookRequest 新增图书请求DTO
type CreateBookRequest struct {
	Title       string
	Author      string
	Description string
	Genre       string
	PublishDate *time.Time
}

// Execute 执行新增图书用例
// 字段校验(非空、去空白、日期截断到天)由领域服务负责
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer span.End()

	b, err := uc.bookService.CreateBook(ctx, book.NewBookInput{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Genre:       req.Genre,
		PublishDate: req.PublishDate,
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	metrics.IncCounter(metrics.BooksCreatedTotal)
	logger.FromContext(ctx).Info().
		Uint("book_id", b.ID).
		Str("genre", b.Genre).
		Msg("图书创建成功")

	return toBookResponse(b), nil
}
