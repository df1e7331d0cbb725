package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/review"
)

// reviewRepository 评论仓储实现(MySQL)
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评论仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// FindByBookAndUser 查询用户对图书的评论
func (r *reviewRepository) FindByBookAndUser(ctx context.Context, bookID, userID uint) (*review.Review, error) {
	var model ReviewModel
	err := getDB(ctx, r.db).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, dbError(err, "查询评论失败")
	}

	return &review.Review{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		Comment:   model.Comment,
		CreatedAt: model.CreatedAt,
	}, nil
}

// Create 创建评论
// 并发重复提交时由唯一索引拦截,转换为ErrReviewDuplicate
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		UserID:    rv.UserID,
		BookID:    rv.BookID,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrReviewDuplicate
		}
		return dbError(err, "创建评论失败")
	}

	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	return nil
}
