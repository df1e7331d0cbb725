package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// bookRecord 存储副本,避免调用方修改实体影响存储
type bookRecord struct {
	book.Book
}

func newBookRecord(b *book.Book) bookRecord {
	return bookRecord{Book: *bookRecord{Book: *b}.entity()}
}

func (r bookRecord) entity() *book.Book {
	b := r.Book
	if r.PublishDate != nil {
		d := *r.PublishDate
		b.PublishDate = &d
	}
	return &b
}

type bookRepository struct {
	s *Store
}

// Books 返回图书仓储
func (s *Store) Books() book.Repository {
	return &bookRepository{s: s}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextBookID++
	now := time.Now()
	b.ID = r.s.nextBookID
	b.CreatedAt = now
	b.UpdatedAt = now
	r.s.books[b.ID] = newBookRecord(b)
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.books[id]
	if !ok {
		return nil, book.NotFound(id)
	}
	return rec.entity(), nil
}

func (r *bookRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.books[id]
	return ok, nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	old, ok := r.s.books[b.ID]
	if !ok {
		return book.NotFound(b.ID)
	}
	b.CreatedAt = old.CreatedAt
	b.UpdatedAt = time.Now()
	r.s.books[b.ID] = newBookRecord(b)
	return nil
}

// Delete 删除图书及其评分、评论
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.books[id]; !ok {
		return book.NotFound(id)
	}
	delete(r.s.books, id)
	for k := range r.s.ratings {
		if k.bookID == id {
			delete(r.s.ratings, k)
		}
	}
	for k := range r.s.reviews {
		if k.bookID == id {
			delete(r.s.reviews, k)
		}
	}
	return nil
}

func (r *bookRepository) Search(ctx context.Context, filter book.Filter, page book.PageRequest) ([]*book.Book, int64, error) {
	r.s.mu.RLock()
	matched := make([]*book.Book, 0, len(r.s.books))
	for _, rec := range r.s.books {
		b := rec.entity()
		if filter.Matches(b) {
			matched = append(matched, b)
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return less(matched[i], matched[j], page.Sort)
	})

	total := int64(len(matched))
	start := page.Offset()
	if start < 0 || start >= len(matched) {
		return []*book.Book{}, total, nil
	}
	end := start + page.Size
	if end > len(matched) || end < start {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// less 按排序项逐个比较;与MySQL一致,NULL出版日期排在最前(升序时)
func less(a, b *book.Book, orders []book.SortOrder) bool {
	for _, o := range orders {
		c := compareField(a, b, o.Field)
		if c == 0 {
			continue
		}
		if o.Desc {
			return c > 0
		}
		return c < 0
	}
	return false
}

func compareField(a, b *book.Book, field string) int {
	switch field {
	case "id":
		return compareUint(a.ID, b.ID)
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "author":
		return strings.Compare(a.Author, b.Author)
	case "genre":
		return strings.Compare(a.Genre, b.Genre)
	case "publish_date":
		return compareDate(a.PublishDate, b.PublishDate)
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return 0
}

func compareUint(a, b uint) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareDate(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}
