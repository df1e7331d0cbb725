package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	apprating "github.com/xiebiao/bookcatalog/internal/application/rating"
	appreview "github.com/xiebiao/bookcatalog/internal/application/review"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/internal/domain/review"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	sessions := memory.NewSessionStore()
	jwtManager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)

	bookService := book.NewService(store.Books())
	ratingService := rating.NewService(store.Ratings(), store.Books())
	reviewService := review.NewService(store.Reviews(), store.Books())
	userService := user.NewServiceWithCost(store.Users(), bcrypt.MinCost)

	handlers := Handlers{
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService),
			appuser.NewLoginUseCase(userService, jwtManager, sessions, 24*time.Hour),
			appuser.NewLogoutUseCase(sessions),
			appuser.NewRefreshTokenUseCase(jwtManager),
		),
		Book: handler.NewBookHandler(
			appbook.NewCreateBookUseCase(bookService),
			appbook.NewGetBookUseCase(bookService),
			appbook.NewUpdateBookUseCase(bookService),
			appbook.NewDeleteBookUseCase(bookService, store),
			appbook.NewSearchBooksUseCase(bookService, appbook.PageSizes{}),
		),
		Rating: handler.NewRatingHandler(
			apprating.NewUpsertRatingUseCase(ratingService),
			apprating.NewTopRatedUseCase(ratingService, rating.DefaultTopRatedLimit),
		),
		Review: handler.NewReviewHandler(appreview.NewAddReviewUseCase(reviewService)),
	}

	engine := New(
		Options{Mode: gin.TestMode, Logger: zerolog.Nop()},
		handlers,
		middleware.NewAuthMiddleware(jwtManager, sessions),
	)
	return &testServer{t: t, engine: engine}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

// login 注册并登录,返回Access Token
func (s *testServer) login(email, role string) string {
	s.t.Helper()
	code, _ := s.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": email, "password": "password123", "nickname": "tester", "role": role,
	})
	require.Equal(s.t, http.StatusCreated, code)

	code, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": email, "password": "password123",
	})
	require.Equal(s.t, http.StatusOK, code)

	var resp appuser.LoginResponse
	require.NoError(s.t, json.Unmarshal(env.Data, &resp))
	return resp.AccessToken
}

func (s *testServer) createBook(token string, body gin.H) appbook.BookResponse {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/books", token, body)
	require.Equal(s.t, http.StatusCreated, code, env.Message)

	var b appbook.BookResponse
	require.NoError(s.t, json.Unmarshal(env.Data, &b))
	return b
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, env.Code)
}

func TestBookLifecycle(t *testing.T) {
	s := newTestServer(t)
	author := s.login("author@example.com", "AUTHOR")

	created := s.createBook(author, gin.H{
		"title": "Atomic Habits", "author": "James Clear", "genre": "Self-help", "publish_date": "2018-10-16",
	})
	require.NotNil(t, created.PublishDate)
	assert.Equal(t, "2018-10-16", *created.PublishDate)

	path := fmt.Sprintf("/api/v1/books/%d", created.ID)

	code, env := s.do(http.MethodGet, path, author, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodPut, path, author, gin.H{"description": "Tiny changes"})
	require.Equal(t, http.StatusOK, code, env.Message)
	var updated appbook.BookResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Atomic Habits", updated.Title)
	assert.Equal(t, "Tiny changes", updated.Description)

	code, env = s.do(http.MethodPut, path, author, gin.H{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, code)

	// 出版日期必填
	code, env = s.do(http.MethodPost, "/api/v1/books", author, gin.H{"title": "T", "author": "A", "genre": "G"})
	assert.Equal(t, http.StatusBadRequest, code, env.Message)
	assert.Equal(t, apperrors.ErrCodeBindError, env.Code)
	code, _ = s.do(http.MethodPost, "/api/v1/books", author, gin.H{"title": "T", "author": "A", "genre": "G", "publish_date": nil})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodDelete, path, author, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodDelete, path, author, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, apperrors.ErrCodeBookNotFound, env.Code)
}

func TestGetBook_NotFound(t *testing.T) {
	s := newTestServer(t)
	reader := s.login("reader@example.com", "")

	code, env := s.do(http.MethodGet, "/api/v1/books/99999", reader, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, env.Message, "99999")
}

func TestAuthAndRoles(t *testing.T) {
	s := newTestServer(t)
	reader := s.login("reader@example.com", "USER")

	code, _ := s.do(http.MethodGet, "/api/v1/books/search", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/api/v1/books", reader, gin.H{"title": "x", "author": "y", "genre": "z"})
	assert.Equal(t, http.StatusForbidden, code)

	author := s.login("author@example.com", "AUTHOR")
	b := s.createBook(author, gin.H{"title": "Dune", "author": "Frank Herbert", "genre": "Fiction", "publish_date": "2000-01-01"})
	code, _ = s.do(http.MethodPost, fmt.Sprintf("/api/v1/books/rating/%d", b.ID), author, gin.H{"rating": 5})
	assert.Equal(t, http.StatusForbidden, code)

	// 登出后Token失效
	code, _ = s.do(http.MethodPost, "/api/v1/auth/logout", reader, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, "/api/v1/books/search", reader, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestSearchBooks(t *testing.T) {
	s := newTestServer(t)
	author := s.login("author@example.com", "AUTHOR")
	s.createBook(author, gin.H{"title": "Atomic Habits", "author": "James Clear", "genre": "Self-help", "publish_date": "2018-10-16"})
	s.createBook(author, gin.H{"title": "Deep Work", "author": "Cal Newport", "genre": "Self-help", "publish_date": "2016-01-05"})
	s.createBook(author, gin.H{"title": "Dune", "author": "Frank Herbert", "genre": "Fiction", "publish_date": "1965-08-01"})

	code, env := s.do(http.MethodGet, "/api/v1/books/search?title=atomic", author, nil)
	require.Equal(t, http.StatusOK, code)
	var page struct {
		List  []appbook.BookResponse `json:"list"`
		Total int64                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.List, 1)
	assert.Equal(t, "Atomic Habits", page.List[0].Title)

	code, env = s.do(http.MethodGet,
		"/api/v1/books/search?genre=Self-help&sort=publishDate,asc&size=1&page=1", author, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.List, 1)
	assert.Equal(t, "Atomic Habits", page.List[0].Title)

	// 超大页码返回空页而不是500
	code, env = s.do(http.MethodGet, "/api/v1/books/search?page=922337203685477580&size=20", author, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	page.List = nil
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Empty(t, page.List)
	assert.Equal(t, int64(3), page.Total)

	code, _ = s.do(http.MethodGet, "/api/v1/books/search?sort=price", author, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodGet, "/api/v1/books/search?publish_date_from=2016/01/01", author, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRatingsAndTopRated(t *testing.T) {
	s := newTestServer(t)
	author := s.login("author@example.com", "AUTHOR")
	dune := s.createBook(author, gin.H{"title": "Dune", "author": "Frank Herbert", "genre": "Fiction", "publish_date": "2000-01-01"})
	s.createBook(author, gin.H{"title": "Unrated", "author": "Nobody", "genre": "Fiction", "publish_date": "2000-01-01"})

	reader := s.login("reader@example.com", "USER")
	ratePath := fmt.Sprintf("/api/v1/books/rating/%d", dune.ID)

	code, env := s.do(http.MethodPost, ratePath, reader, gin.H{"rating": 4})
	require.Equal(t, http.StatusOK, code, env.Message)
	var first apprating.RatingResponse
	require.NoError(t, json.Unmarshal(env.Data, &first))

	code, env = s.do(http.MethodPost, ratePath, reader, gin.H{"rating": 2})
	require.Equal(t, http.StatusOK, code)
	var second apprating.RatingResponse
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Rating)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	code, _ = s.do(http.MethodPost, ratePath, reader, gin.H{"rating": 6})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/v1/books/rating/99999", reader, gin.H{"rating": 3})
	assert.Equal(t, http.StatusNotFound, code)

	// 高分榜公开访问,没有评分的书不出现
	code, env = s.do(http.MethodGet, "/api/v1/genres/top-rated/Fiction?limit=0", "", nil)
	require.Equal(t, http.StatusOK, code)
	var top []apprating.TopRatedBookResponse
	require.NoError(t, json.Unmarshal(env.Data, &top))
	require.Len(t, top, 1)
	assert.Equal(t, dune.ID, top[0].BookID)
	assert.InDelta(t, 2.0, top[0].AverageRating, 1e-9)
	assert.Equal(t, int64(1), top[0].RatingCount)
}

func TestReviews(t *testing.T) {
	s := newTestServer(t)
	author := s.login("author@example.com", "AUTHOR")
	b := s.createBook(author, gin.H{"title": "Dune", "author": "Frank Herbert", "genre": "Fiction", "publish_date": "2000-01-01"})

	reader := s.login("reader@example.com", "USER")
	path := fmt.Sprintf("/api/v1/books/reviews/%d", b.ID)

	code, env := s.do(http.MethodPost, path, reader, gin.H{"comment": "A classic."})
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, env = s.do(http.MethodPost, path, reader, gin.H{"comment": "Again"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, apperrors.ErrCodeReviewDuplicate, env.Code)

	code, _ = s.do(http.MethodPost, path, reader, gin.H{"comment": ""})
	assert.Equal(t, http.StatusBadRequest, code)
}
