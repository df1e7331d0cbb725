package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// SearchBooksUseCase 图书多条件检索用例
// 设计说明:
// 1. 所有条件都是可选的,未提供的条件不参与过滤
// 2. 每页数量的默认值和上限来自配置(catalog.*_page_size),
//    排序白名单和硬上限由领域层PageRequest.Normalize处理
type SearchBooksUseCase struct {
	bookService book.Service
	sizes       PageSizes
}

// PageSizes 每页数量配置,零值表示使用领域层默认值
type PageSizes struct {
	Default int
	Max     int
}

// NewSearchBooksUseCase 创建检索用例
func NewSearchBooksUseCase(bookService book.Service, sizes PageSizes) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService, sizes: sizes}
}

// pageSize 应用配置的默认值与上限
func (uc *SearchBooksUseCase) pageSize(size int) int {
	if size <= 0 && uc.sizes.Default > 0 {
		size = uc.sizes.Default
	}
	if uc.sizes.Max > 0 && size > uc.sizes.Max {
		size = uc.sizes.Max
	}
	return size
}

// SearchBooksRequest 检索请求DTO
type SearchBooksRequest struct {
	Title           string
	Author          string
	Genre           string
	PublishDateFrom *time.Time
	PublishDateTo   *time.Time

	Page int              // 页码(从0开始)
	Size int              // 每页数量
	Sort []book.SortOrder // 排序项(字段名使用snake_case)
}

// SearchBooksResponse 检索响应DTO
type SearchBooksResponse struct {
	Items []*BookResponse
	Total int64
	Page  int
	Size  int
}

// Execute 执行检索
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) (*SearchBooksResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SearchBooks")
	defer span.End()

	start := time.Now()
	result, err := uc.bookService.SearchBooks(ctx,
		book.Criteria{
			Title:           req.Title,
			Author:          req.Author,
			Genre:           req.Genre,
			PublishDateFrom: req.PublishDateFrom,
			PublishDateTo:   req.PublishDateTo,
		},
		book.PageRequest{Page: req.Page, Size: uc.pageSize(req.Size), Sort: req.Sort},
	)
	metrics.ObserveHistogram(metrics.SearchDuration, time.Since(start).Seconds())
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	items := make([]*BookResponse, len(result.Items))
	for i, b := range result.Items {
		items[i] = toBookResponse(b)
	}

	logger.FromContext(ctx).Debug().
		Int64("total", result.Total).
		Int("page", result.Page).
		Int("size", result.Size).
		Msg("图书检索完成")

	return &SearchBooksResponse{
		Items: items,
		Total: result.Total,
		Page:  result.Page,
		Size:  result.Size,
	}, nil
}
