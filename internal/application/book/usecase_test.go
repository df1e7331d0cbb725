package book

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/optional"
)

type fixture struct {
	store  *memory.Store
	create *CreateBookUseCase
	get    *GetBookUseCase
	update *UpdateBookUseCase
	delete *DeleteBookUseCase
	search *SearchBooksUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	svc := book.NewService(store.Books())
	return &fixture{
		store:  store,
		create: NewCreateBookUseCase(svc),
		get:    NewGetBookUseCase(svc),
		update: NewUpdateBookUseCase(svc),
		delete: NewDeleteBookUseCase(svc, store),
		search: NewSearchBooksUseCase(svc, PageSizes{}),
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
	return &t
}

func TestCreateAndGetBook(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.create.Execute(ctx, CreateBookRequest{
		Title:       " Atomic Habits ",
		Author:      "James Clear",
		Genre:       "Self-help",
		PublishDate: date(2018, 10, 16),
	})
	require.NoError(t, err)
	assert.Equal(t, "Atomic Habits", created.Title)
	require.NotNil(t, created.PublishDate)
	assert.Equal(t, "2018-10-16", *created.PublishDate)

	got, err := f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateBook_BlankTitle(t *testing.T) {
	_, err := newFixture().create.Execute(context.Background(), CreateBookRequest{
		Title: "  ", Author: "x", Genre: "y",
	})
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
}

func TestUpdateBook_Partial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.create.Execute(ctx, CreateBookRequest{Title: "Dune", Author: "Frank Herbert", Genre: "Fiction"})
	require.NoError(t, err)

	updated, err := f.update.Execute(ctx, UpdateBookRequest{
		ID:    created.ID,
		Genre: optional.Of("Sci-Fi"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, "Sci-Fi", updated.Genre)

	_, err = f.update.Execute(ctx, UpdateBookRequest{ID: created.ID, Author: optional.Of("")})
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
}

func TestDeleteBook_NotIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	created, err := f.create.Execute(ctx, CreateBookRequest{Title: "Dune", Author: "Frank Herbert", Genre: "Fiction"})
	require.NoError(t, err)

	require.NoError(t, f.delete.Execute(ctx, created.ID))

	err = f.delete.Execute(ctx, created.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	_, err = f.get.Execute(ctx, created.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestSearchBooks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for _, req := range []CreateBookRequest{
		{Title: "Atomic Habits", Author: "James Clear", Genre: "Self-help", PublishDate: date(2018, 10, 16)},
		{Title: "Deep Work", Author: "Cal Newport", Genre: "Self-help", PublishDate: date(2016, 1, 5)},
		{Title: "Dune", Author: "Frank Herbert", Genre: "Fiction", PublishDate: date(1965, 8, 1)},
	} {
		_, err := f.create.Execute(ctx, req)
		require.NoError(t, err)
	}

	resp, err := f.search.Execute(ctx, SearchBooksRequest{
		Genre: "Self-help",
		Sort:  []book.SortOrder{{Field: "publish_date", Desc: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, book.DefaultPageSize, resp.Size)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Atomic Habits", resp.Items[0].Title)

	// 日期边界包含在内
	resp, err = f.search.Execute(ctx, SearchBooksRequest{
		PublishDateFrom: date(2016, 1, 5),
		PublishDateTo:   date(2016, 1, 5),
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Deep Work", resp.Items[0].Title)

	_, err = f.search.Execute(ctx, SearchBooksRequest{Sort: []book.SortOrder{{Field: "price"}}})
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
}

func TestSearchBooks_ConfiguredPageSizes(t *testing.T) {
	store := memory.NewStore()
	svc := book.NewService(store.Books())
	create := NewCreateBookUseCase(svc)
	search := NewSearchBooksUseCase(svc, PageSizes{Default: 2, Max: 3})
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C", "D"} {
		_, err := create.Execute(ctx, CreateBookRequest{Title: title, Author: "x", Genre: "Fiction"})
		require.NoError(t, err)
	}

	resp, err := search.Execute(ctx, SearchBooksRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Size)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(4), resp.Total)

	resp, err = search.Execute(ctx, SearchBooksRequest{Size: 50})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Size)
	assert.Len(t, resp.Items, 3)
}
