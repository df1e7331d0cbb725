package review

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

const tracerName = "bookcatalog/application/review"

// AddReviewUseCase 发表评论用例
// 与评分不同,评论不可覆盖:同一用户对同一本书的第二条评论返回Conflict
type AddReviewUseCase struct {
	reviewService review.Service
}

// NewAddReviewUseCase 创建发表评论用例
func NewAddReviewUseCase(reviewService review.Service) *AddReviewUseCase {
	return &AddReviewUseCase{reviewService: reviewService}
}

// AddReviewRequest 评论请求DTO
type AddReviewRequest struct {
	BookID  uint
	UserID  uint
	Comment string
}

// ReviewResponse 评论响应DTO
type ReviewResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	BookID    uint      `json:"book_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Execute 执行发表评论
func (uc *AddReviewUseCase) Execute(ctx context.Context, req AddReviewRequest) (*ReviewResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "AddReview")
	defer span.End()

	rv, err := uc.reviewService.AddReview(ctx, req.BookID, req.UserID, req.Comment)
	if err != nil {
		tracing.RecordError(span, err)
		if errors.Is(err, review.ErrReviewDuplicate) {
			metrics.IncCounter(metrics.ReviewConflictsTotal)
			logger.FromContext(ctx).Warn().
				Uint("book_id", req.BookID).
				Uint("user_id", req.UserID).
				Msg("重复评论被拒绝")
		}
		return nil, err
	}

	metrics.IncCounter(metrics.ReviewsCreatedTotal)
	logger.FromContext(ctx).Info().
		Uint("review_id", rv.ID).
		Uint("book_id", rv.BookID).
		Uint("user_id", rv.UserID).
		Msg("评论发表成功")

	return &ReviewResponse{
		ID:        rv.ID,
		UserID:    rv.UserID,
		BookID:    rv.BookID,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}, nil
}
