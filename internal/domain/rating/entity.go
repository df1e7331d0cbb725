package rating

import "time"

const (
	// MinValue 最低评分
	MinValue = 1
	// MaxValue 最高评分
	MaxValue = 5

	// DefaultTopRatedLimit 高分榜默认条数
	DefaultTopRatedLimit = 5
	// MaxTopRatedLimit 高分榜条数上限
	MaxTopRatedLimit = 100
)

// Rating 用户对图书的评分
// 业务规则:
// 1. 每个(UserID, BookID)最多一条记录,重复评分覆盖Value
// 2. 覆盖时保留CreatedAt,刷新UpdatedAt
type Rating struct {
	ID        uint
	UserID    uint
	BookID    uint
	Value     int // 1-5
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRating 创建评分(工厂方法)
func NewRating(bookID, userID uint, value int) (*Rating, error) {
	if err := validateValue(value); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Rating{
		UserID:    userID,
		BookID:    bookID,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rescore 覆盖评分(领域行为)
func (r *Rating) Rescore(value int) error {
	if err := validateValue(value); err != nil {
		return err
	}
	r.Value = value
	r.UpdatedAt = time.Now()
	return nil
}

func validateValue(value int) error {
	if value < MinValue || value > MaxValue {
		return ErrInvalidValue(value)
	}
	return nil
}

// TopRatedBook 高分榜条目
type TopRatedBook struct {
	BookID        uint
	Title         string
	Author        string
	Genre         string
	AverageRating float64
	RatingCount   int64
}

// ClampLimit 把榜单条数限制在[1, MaxTopRatedLimit]
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	if limit > MaxTopRatedLimit {
		return MaxTopRatedLimit
	}
	return limit
}
