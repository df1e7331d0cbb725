package review

import (
	"context"
	"errors"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// Service 评论领域服务接口
type Service interface {
	// AddReview 添加评论
	// 业务规则:同一用户对同一本书只能评论一次,第二次返回Conflict
	AddReview(ctx context.Context, bookID, userID uint, comment string) (*Review, error)
}

type service struct {
	repo  Repository
	books BookLookup
}

// NewService 创建评论领域服务
func NewService(repo Repository, books BookLookup) Service {
	return &service{repo: repo, books: books}
}

// AddReview 添加评论
// 注意:与评分不同,评论重复提交不会覆盖,而是返回Conflict
func (s *service) AddReview(ctx context.Context, bookID, userID uint, comment string) (*Review, error) {
	// 1. 校验评论内容
	r, err := NewReview(bookID, userID, comment)
	if err != nil {
		return nil, err
	}

	// 2. 校验图书存在
	exists, err := s.books.ExistsByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, book.NotFound(bookID)
	}

	// 3. 检查是否已评论
	_, err = s.repo.FindByBookAndUser(ctx, bookID, userID)
	if err == nil {
		return nil, Duplicate(userID, bookID)
	}
	if !errors.Is(err, ErrReviewNotFound) {
		return nil, err
	}

	// 4. 创建(并发提交时由唯一索引兜底)
	if err := s.repo.Create(ctx, r); err != nil {
		if errors.Is(err, ErrReviewDuplicate) {
			return nil, Duplicate(userID, bookID)
		}
		return nil, err
	}
	return r, nil
}
