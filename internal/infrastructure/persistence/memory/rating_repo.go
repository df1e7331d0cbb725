package memory

import (
	"context"
	"sort"

	"github.com/xiebiao/bookcatalog/internal/domain/rating"
)

type ratingRecord struct {
	rating.Rating
}

type ratingRepository struct {
	s *Store
}

// Ratings 返回评分仓储
func (s *Store) Ratings() rating.Repository {
	return &ratingRepository{s: s}
}

func (r *ratingRepository) FindByBookAndUser(ctx context.Context, bookID, userID uint) (*rating.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.ratings[pairKey{bookID: bookID, userID: userID}]
	if !ok {
		return nil, rating.ErrRatingNotFound
	}
	rt := rec.Rating
	return &rt, nil
}

func (r *ratingRepository) Create(ctx context.Context, rt *rating.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey{bookID: rt.BookID, userID: rt.UserID}
	if _, ok := r.s.ratings[key]; ok {
		return rating.ErrRatingDuplicate
	}
	r.s.nextRatingID++
	rt.ID = r.s.nextRatingID
	r.s.ratings[key] = ratingRecord{Rating: *rt}
	return nil
}

// Update 只覆盖评分值和更新时间
func (r *ratingRepository) Update(ctx context.Context, rt *rating.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := pairKey{bookID: rt.BookID, userID: rt.UserID}
	rec, ok := r.s.ratings[key]
	if !ok {
		return rating.ErrRatingNotFound
	}
	rec.Value = rt.Value
	rec.UpdatedAt = rt.UpdatedAt
	r.s.ratings[key] = rec
	return nil
}

// TopRatedByGenre 与MySQL聚合查询相同的排序:平均分降序、评分数降序、图书ID升序
func (r *ratingRepository) TopRatedByGenre(ctx context.Context, genre string, limit int) ([]rating.TopRatedBook, error) {
	r.s.mu.RLock()
	type acc struct {
		sum   int64
		count int64
	}
	stats := make(map[uint]*acc)
	for k, rec := range r.s.ratings {
		b, ok := r.s.books[k.bookID]
		if !ok || b.Genre != genre {
			continue
		}
		a := stats[k.bookID]
		if a == nil {
			a = &acc{}
			stats[k.bookID] = a
		}
		a.sum += int64(rec.Value)
		a.count++
	}

	result := make([]rating.TopRatedBook, 0, len(stats))
	for id, a := range stats {
		b := r.s.books[id]
		result = append(result, rating.TopRatedBook{
			BookID:        id,
			Title:         b.Title,
			Author:        b.Author,
			Genre:         b.Genre,
			AverageRating: float64(a.sum) / float64(a.count),
			RatingCount:   a.count,
		})
	}
	r.s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		x, y := result[i], result[j]
		if x.AverageRating != y.AverageRating {
			return x.AverageRating > y.AverageRating
		}
		if x.RatingCount != y.RatingCount {
			return x.RatingCount > y.RatingCount
		}
		return x.BookID < y.BookID
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
