// Package memory 进程内存储实现
//
// 用于单元测试、handler测试以及storage.driver=memory的本地运行。
// 与MySQL实现保持相同的语义:
//   - (user_id, book_id)唯一约束
//   - 找不到记录时返回与MySQL仓储相同的领域错误
//   - 删除图书时删除其评分和评论
//
// 所有方法在一把RWMutex下执行,写入对之后的读取立即可见。
package memory

import (
	"context"
	"sync"
)

type pairKey struct {
	bookID uint
	userID uint
}

// Store 内存存储
type Store struct {
	mu sync.RWMutex

	books   map[uint]bookRecord
	ratings map[pairKey]ratingRecord
	reviews map[pairKey]reviewRecord
	users   map[uint]userRecord

	nextBookID   uint
	nextRatingID uint
	nextReviewID uint
	nextUserID   uint
}

// NewStore 创建内存存储
func NewStore() *Store {
	return &Store{
		books:   make(map[uint]bookRecord),
		ratings: make(map[pairKey]ratingRecord),
		reviews: make(map[pairKey]reviewRecord),
		users:   make(map[uint]userRecord),
	}
}

// Transaction 直接执行fn
// 内存存储的每个方法都是原子的,不支持跨方法回滚
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
