package rating

import (
	"context"
	"errors"
	"strings"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// Service 评分领域服务接口
type Service interface {
	// UpsertRating 新增或覆盖评分
	// 返回值created表示本次是否新建了记录
	UpsertRating(ctx context.Context, bookID, userID uint, value int) (r *Rating, created bool, err error)

	// TopRatedByGenre 类型高分榜
	TopRatedByGenre(ctx context.Context, genre string, limit int) ([]TopRatedBook, error)
}

type service struct {
	repo  Repository
	books BookLookup
}

// NewService 创建评分领域服务
func NewService(repo Repository, books BookLookup) Service {
	return &service{repo: repo, books: books}
}

// UpsertRating 新增或覆盖评分
// 业务流程:
// 1. 校验评分范围
// 2. 校验图书存在
// 3. 已有评分 → 覆盖;没有 → 新建
// 4. 新建遇到唯一键冲突(另一个请求抢先插入) → 重新读取并覆盖,保证同一用户同一本书只有一条
func (s *service) UpsertRating(ctx context.Context, bookID, userID uint, value int) (*Rating, bool, error) {
	// 1. 校验评分范围
	if err := validateValue(value); err != nil {
		return nil, false, err
	}

	// 2. 校验图书存在
	exists, err := s.books.ExistsByID(ctx, bookID)
	if err != nil {
		return nil, false, err
	}
	if !exists {
		return nil, false, book.NotFound(bookID)
	}

	// 3. 查询已有评分
	existing, err := s.repo.FindByBookAndUser(ctx, bookID, userID)
	switch {
	case err == nil:
		return s.rescore(ctx, existing, value)
	case !errors.Is(err, ErrRatingNotFound):
		return nil, false, err
	}

	// 4. 新建
	r, err := NewRating(bookID, userID, value)
	if err != nil {
		return nil, false, err
	}
	err = s.repo.Create(ctx, r)
	if err == nil {
		return r, true, nil
	}
	if !errors.Is(err, ErrRatingDuplicate) {
		return nil, false, err
	}

	// 5. 并发插入冲突:读取胜出的记录后覆盖(后写者生效)
	existing, err = s.repo.FindByBookAndUser(ctx, bookID, userID)
	if err != nil {
		return nil, false, err
	}
	return s.rescore(ctx, existing, value)
}

func (s *service) rescore(ctx context.Context, r *Rating, value int) (*Rating, bool, error) {
	if err := r.Rescore(value); err != nil {
		return nil, false, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, false, err
	}
	return r, false, nil
}

// TopRatedByGenre 类型高分榜
// limit被限制在[1, 100];类型去除首尾空白后精确匹配
func (s *service) TopRatedByGenre(ctx context.Context, genre string, limit int) ([]TopRatedBook, error) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return []TopRatedBook{}, nil
	}
	return s.repo.TopRatedByGenre(ctx, genre, ClampLimit(limit))
}
