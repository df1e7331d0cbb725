package book

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/optional"
)

// --- Mock Repository ---

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, b *Book) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 1
	}
	return args.Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Book), args.Error(1)
}

func (m *mockRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, b *Book) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) Search(ctx context.Context, f Filter, p PageRequest) ([]*Book, int64, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]*Book), args.Get(1).(int64), args.Error(2)
}

// --- Tests ---

func TestCreateBook_Success(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*book.Book")).Return(nil)

	b, err := svc.CreateBook(ctx, NewBookInput{
		Title:       " Atomic Habits ",
		Author:      "James Clear",
		Genre:       "Self-help",
		PublishDate: date(2018, 10, 16),
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), b.ID)
	assert.Equal(t, "Atomic Habits", b.Title)
	assert.Equal(t, 0, b.PublishDate.Hour())
	assert.False(t, b.UpdatedAt.Before(b.CreatedAt))
	repo.AssertExpectations(t)
}

func TestCreateBook_BlankFields(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)

	_, err := svc.CreateBook(context.Background(), NewBookInput{Title: "  ", Author: "a", Genre: "g"})
	assert.ErrorIs(t, err, ErrBlankTitle)

	_, err = svc.CreateBook(context.Background(), NewBookInput{Title: "t", Author: "a", Genre: ""})
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateBook_PartialUpdate(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	existing := &Book{ID: 5, Title: "Old", Author: "Author", Description: "desc", Genre: "Fiction", PublishDate: TruncateToDay(date(2001, 1, 1))}
	repo.On("FindByID", ctx, uint(5)).Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)

	updated, err := svc.UpdateBook(ctx, 5, BookUpdate{Title: optional.Of("New")})

	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "Author", updated.Author)
	assert.Equal(t, "desc", updated.Description)
	assert.Equal(t, "Fiction", updated.Genre)
	assert.Equal(t, 2001, updated.PublishDate.Year())
	repo.AssertExpectations(t)
}

func TestUpdateBook_BlankGenreRejected(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	existing := &Book{ID: 5, Title: "Old", Author: "Author", Genre: "Fiction"}
	repo.On("FindByID", ctx, uint(5)).Return(existing, nil)

	_, err := svc.UpdateBook(ctx, 5, BookUpdate{Title: optional.Of("New"), Genre: optional.Of(" ")})

	assert.ErrorIs(t, err, ErrBlankGenre)
	// 校验失败时实体不变
	assert.Equal(t, "Old", existing.Title)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateBook_ClearPublishDate(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	existing := &Book{ID: 5, Title: "T", Author: "A", Genre: "G", PublishDate: TruncateToDay(date(2001, 1, 1))}
	repo.On("FindByID", ctx, uint(5)).Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)

	updated, err := svc.UpdateBook(ctx, 5, BookUpdate{PublishDate: optional.Of[*time.Time](nil)})

	require.NoError(t, err)
	assert.Nil(t, updated.PublishDate)
}

func TestUpdateBook_NotFound(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("FindByID", ctx, uint(99999)).Return(nil, NotFound(99999))

	_, err := svc.UpdateBook(ctx, 99999, BookUpdate{})
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestDeleteBook(t *testing.T) {
	t.Run("不存在", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("ExistsByID", mock.Anything, uint(99999)).Return(false, nil)

		err := NewService(repo).DeleteBook(context.Background(), 99999)

		assert.ErrorIs(t, err, ErrBookNotFound)
		assert.Contains(t, err.Error(), "99999")
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("存在", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("ExistsByID", mock.Anything, uint(3)).Return(true, nil)
		repo.On("Delete", mock.Anything, uint(3)).Return(nil)

		require.NoError(t, NewService(repo).DeleteBook(context.Background(), 3))
		repo.AssertExpectations(t)
	})

	t.Run("存储错误透传", func(t *testing.T) {
		repo := new(mockRepository)
		boom := errors.New("connection reset")
		repo.On("ExistsByID", mock.Anything, uint(3)).Return(false, boom)

		assert.ErrorIs(t, NewService(repo).DeleteBook(context.Background(), 3), boom)
	})
}

func TestSearchBooks_NormalizesPage(t *testing.T) {
	repo := new(mockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	want := PageRequest{Page: 0, Size: MaxPageSize, Sort: []SortOrder{{Field: "title", Desc: true}, {Field: "id"}}}
	repo.On("Search", ctx, Criteria{Title: "habits"}.Filter(), want).
		Return([]*Book{{ID: 1, Title: "Atomic Habits"}}, int64(1), nil)

	page, err := svc.SearchBooks(ctx, Criteria{Title: "habits"}, PageRequest{
		Page: -3,
		Size: 10000,
		Sort: []SortOrder{{Field: "title", Desc: true}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, MaxPageSize, page.Size)
	assert.Len(t, page.Items, 1)
	repo.AssertExpectations(t)
}

func TestSearchBooks_UnknownSortField(t *testing.T) {
	repo := new(mockRepository)

	_, err := NewService(repo).SearchBooks(context.Background(), Criteria{}, PageRequest{
		Sort: []SortOrder{{Field: "password"}},
	})

	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestPageRequest_Normalize(t *testing.T) {
	p, err := PageRequest{}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, p.Size)
	assert.Equal(t, []SortOrder{{Field: "id"}}, p.Sort)

	p, err = PageRequest{Page: 2, Size: 10, Sort: []SortOrder{{Field: "id", Desc: true}, {Field: "title"}}}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 20, p.Offset())
	// 已包含id时不再追加
	assert.Equal(t, []SortOrder{{Field: "id", Desc: true}, {Field: "title"}}, p.Sort)
}

func TestPageRequest_OffsetSaturates(t *testing.T) {
	p, err := PageRequest{Page: math.MaxInt64 / 10, Size: 20}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt64/10, p.Page)
	assert.Equal(t, MaxOffset, p.Offset())

	assert.Equal(t, MaxOffset, PageRequest{Page: math.MaxInt64, Size: MaxPageSize}.Offset())
	assert.Equal(t, 0, PageRequest{Page: -1, Size: 20}.Offset())
	assert.Equal(t, MaxOffset-MaxOffset%100, PageRequest{Page: MaxOffset / 100, Size: 100}.Offset())
}
