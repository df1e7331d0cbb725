package rating

import (
	"context"
)

// Repository 评分仓储接口
type Repository interface {
	// FindByBookAndUser 查询用户对图书的评分,不存在时返回ErrRatingNotFound
	FindByBookAndUser(ctx context.Context, bookID, userID uint) (*Rating, error)

	// Create 创建评分,(user_id, book_id)唯一键冲突时返回ErrRatingDuplicate
	Create(ctx context.Context, rating *Rating) error

	// Update 更新评分值和UpdatedAt(CreatedAt不变)
	Update(ctx context.Context, rating *Rating) error

	// TopRatedByGenre 按类型统计平均分
	// 排序:平均分降序,评分人数降序,图书ID升序;没有评分的图书不出现
	TopRatedByGenre(ctx context.Context, genre string, limit int) ([]TopRatedBook, error)
}

// BookLookup 图书存在性检查(book.Repository满足此接口)
type BookLookup interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
}
