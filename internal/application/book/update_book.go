package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/optional"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// UpdateBookUseCase 更新图书用例(部分更新)
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 更新请求DTO
// 未设置的字段保持原值;PublishDate设置为nil表示清空出版日期
type UpdateBookRequest struct {
	ID          uint
	Title       optional.Value[string]
	Author      optional.Value[string]
	Description optional.Value[string]
	Genre       optional.Value[string]
	PublishDate optional.Value[*time.Time]
}

// Execute 执行更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateBook")
	defer span.End()

	b, err := uc.bookService.UpdateBook(ctx, req.ID, book.BookUpdate{
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

	logger.FromContext(ctx).Info().Uint("book_id", b.ID).Msg("图书更新成功")
	return toBookResponse(b), nil
}
