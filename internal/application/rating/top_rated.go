package rating

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// TopRatedUseCase 类型高分榜用例(公开接口)
type TopRatedUseCase struct {
	ratingService rating.Service
	defaultLimit  int
}

// NewTopRatedUseCase 创建高分榜用例
// defaultLimit来自配置catalog.top_rated_default_limit,请求未带limit时使用
func NewTopRatedUseCase(ratingService rating.Service, defaultLimit int) *TopRatedUseCase {
	if defaultLimit <= 0 {
		defaultLimit = rating.DefaultTopRatedLimit
	}
	return &TopRatedUseCase{ratingService: ratingService, defaultLimit: defaultLimit}
}

// TopRatedRequest 高分榜请求DTO
type TopRatedRequest struct {
	Genre string
	Limit *int // nil表示使用默认值;其余值由领域服务限制在[1,100]
}

// TopRatedBookResponse 高分榜条目
type TopRatedBookResponse struct {
	BookID        uint    `json:"book_id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
}

// Execute 查询高分榜
func (uc *TopRatedUseCase) Execute(ctx context.Context, req TopRatedRequest) ([]TopRatedBookResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "TopRatedByGenre")
	defer span.End()

	limit := uc.defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	rows, err := uc.ratingService.TopRatedByGenre(ctx, req.Genre, limit)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	list := make([]TopRatedBookResponse, len(rows))
	for i, row := range rows {
		list[i] = TopRatedBookResponse{
			BookID:        row.BookID,
			Title:         row.Title,
			Author:        row.Author,
			Genre:         row.Genre,
			AverageRating: row.AverageRating,
			RatingCount:   row.RatingCount,
		}
	}
	return list, nil
}
