package rating

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "bookcatalog/application/rating"

// UpsertRatingUseCase 评分(新增或覆盖)用例
// 设计说明:
// 1. 每个用户对每本书只有一条评分,再次评分覆盖分值,保留首次评分时间
// 2. 不开启外层事务:并发首次评分由(user_id, book_id)唯一索引兜底,
//    领域服务捕获冲突后重新读取并走覆盖分支
type UpsertRatingUseCase struct {
	ratingService rating.Service
}

// NewUpsertRatingUseCase 创建评分用例
func NewUpsertRatingUseCase(ratingService rating.Service) *UpsertRatingUseCase {
	return &UpsertRatingUseCase{ratingService: ratingService}
}

// UpsertRatingRequest 评分请求DTO
type UpsertRatingRequest struct {
	BookID uint
	UserID uint // 从JWT中提取
	Rating int  // 1-5
}

// RatingResponse 评分响应DTO
type RatingResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	BookID    uint      `json:"book_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Execute 执行评分
func (uc *UpsertRatingUseCase) Execute(ctx context.Context, req UpsertRatingRequest) (*RatingResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpsertRating")
	defer span.End()

	r, created, err := uc.ratingService.UpsertRating(ctx, req.BookID, req.UserID, req.Rating)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	result := metrics.ResultUpdated
	if created {
		result = metrics.ResultCreated
	}
	metrics.IncCounterVec(metrics.RatingsUpsertedTotal, map[string]string{"result": result})

	logger.FromContext(ctx).Info().
		Uint("book_id", r.BookID).
		Uint("user_id", r.UserID).
		Int("rating", r.Value).
		Str("result", result).
		Msg("评分已保存")

	return &RatingResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		BookID:    r.BookID,
		Rating:    r.Value,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}
