package review

import (
	"context"
)

// Repository 评论仓储接口
type Repository interface {
	// FindByBookAndUser 查询用户对图书的评论,不存在时返回ErrReviewNotFound
	FindByBookAndUser(ctx context.Context, bookID, userID uint) (*Review, error)

	// Create 创建评论,(user_id, book_id)唯一键冲突时返回ErrReviewDuplicate
	Create(ctx context.Context, review *Review) error
}

// BookLookup 图书存在性检查
type BookLookup interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
}
