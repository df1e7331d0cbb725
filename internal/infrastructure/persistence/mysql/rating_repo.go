package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/rating"
)

// ratingRepository 评分仓储实现(MySQL)
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository 创建评分仓储
func NewRatingRepository(db *gorm.DB) rating.Repository {
	return &ratingRepository{db: db}
}

// FindByBookAndUser 查询用户对图书的评分
func (r *ratingRepository) FindByBookAndUser(ctx context.Context, bookID, userID uint) (*rating.Rating, error) {
	var model RatingModel
	err := getDB(ctx, r.db).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rating.ErrRatingNotFound
		}
		return nil, dbError(err, "查询评分失败")
	}
	return toRatingEntity(&model), nil
}

// Create 创建评分
// (user_id, book_id)唯一索引冲突 → ErrRatingDuplicate,由领域服务转为覆盖
func (r *ratingRepository) Create(ctx context.Context, rt *rating.Rating) error {
	model := &RatingModel{
		UserID:    rt.UserID,
		BookID:    rt.BookID,
		Rating:    rt.Value,
		CreatedAt: rt.CreatedAt,
		UpdatedAt: rt.UpdatedAt,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return rating.ErrRatingDuplicate
		}
		return dbError(err, "创建评分失败")
	}

	rt.ID = model.ID
	rt.CreatedAt = model.CreatedAt
	rt.UpdatedAt = model.UpdatedAt
	return nil
}

// Update 更新评分值
// 只更新rating和updated_at,created_at保持首次评分时间
func (r *ratingRepository) Update(ctx context.Context, rt *rating.Rating) error {
	result := getDB(ctx, r.db).Model(&RatingModel{ID: rt.ID}).
		Updates(map[string]interface{}{
			"rating":     rt.Value,
			"updated_at": rt.UpdatedAt,
		})
	if result.Error != nil {
		return dbError(result.Error, "更新评分失败")
	}
	return nil
}

// topRatedRow 聚合查询结果
type topRatedRow struct {
	BookID        uint
	Title         string
	Author        string
	Genre         string
	AverageRating float64
	RatingCount   int64
}

// TopRatedByGenre 类型高分榜
// SQL:
//
//	SELECT b.id AS book_id, b.title, b.author, b.genre,
//	       AVG(r.rating) AS average_rating, COUNT(r.id) AS rating_count
//	FROM user_book_ratings r JOIN books b ON b.id = r.book_id
//	WHERE b.genre = ?
//	GROUP BY b.id, b.title, b.author, b.genre
//	ORDER BY average_rating DESC, rating_count DESC, b.id ASC
//	LIMIT ?
func (r *ratingRepository) TopRatedByGenre(ctx context.Context, genre string, limit int) ([]rating.TopRatedBook, error) {
	var rows []topRatedRow
	err := topRatedQuery(getDB(ctx, r.db), genre, limit).Scan(&rows).Error
	if err != nil {
		return nil, dbError(err, "查询高分榜失败")
	}

	result := make([]rating.TopRatedBook, len(rows))
	for i, row := range rows {
		result[i] = rating.TopRatedBook{
			BookID:        row.BookID,
			Title:         row.Title,
			Author:        row.Author,
			Genre:         row.Genre,
			AverageRating: row.AverageRating,
			RatingCount:   row.RatingCount,
		}
	}
	return result, nil
}

func topRatedQuery(db *gorm.DB, genre string, limit int) *gorm.DB {
	return db.Table("user_book_ratings AS r").
		Select("b.id AS book_id, b.title, b.author, b.genre, AVG(r.rating) AS average_rating, COUNT(r.id) AS rating_count").
		Joins("JOIN books b ON b.id = r.book_id").
		Where("b.genre = ?", genre).
		Group("b.id, b.title, b.author, b.genre").
		Order("average_rating DESC, rating_count DESC, b.id ASC").
		Limit(limit)
}

func toRatingEntity(model *RatingModel) *rating.Rating {
	return &rating.Rating{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		Value:     model.Rating,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
