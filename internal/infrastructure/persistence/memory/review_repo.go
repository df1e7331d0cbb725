package memory

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/review"
)

type reviewRecord struct {
	review.Review
}

type reviewRepository struct {
	s *Store
}

// Reviews 返回评论仓储
func (s *Store) Reviews() review.Repository {
	return &reviewRepository{s: s}
}

func (r *reviewRepository) FindByBookAndUser(ctx context.Context, bookID, userID uint) (*review.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.reviews[pairKey{bookID: bookID, userID: userID}]
	if !ok {
		return nil, review.ErrReviewNotFound
	}
	rv := rec.Review
	return &rv, nil
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey{bookID: rv.BookID, userID: rv.UserID}
	if _, ok := r.s.reviews[key]; ok {
		return review.ErrReviewDuplicate
	}
	r.s.nextReviewID++
	rv.ID = r.s.nextReviewID
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now()
	}
	r.s.reviews[key] = reviewRecord{Review: *rv}
	return nil
}
