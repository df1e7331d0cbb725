package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookcatalog/pkg/jwt"
)

func setupEngine(t *testing.T) (*gin.Engine, *jwt.Manager, *memory.SessionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := jwt.NewManager("test-secret", time.Hour, time.Hour)
	sessions := memory.NewSessionStore()
	auth := NewAuthMiddleware(jwtManager, sessions)

	r := gin.New()
	r.Use(RequestLogger(zerolog.Nop()), Metrics())
	r.GET("/me", auth.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c), "email": GetEmail(c)})
	})
	r.GET("/admin", auth.RequireAuth(), auth.RequireRole(user.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r, jwtManager, sessions
}

func token(t *testing.T, m *jwt.Manager, role user.Role) string {
	t.Helper()
	pair, err := m.GenerateToken(jwt.Identity{UserID: 7, Email: "a@example.com", Role: string(role)})
	require.NoError(t, err)
	return pair.AccessToken
}

func get(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	r, m, _ := setupEngine(t)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer not-a-jwt").Code)

	w := get(r, "/me", "Bearer "+token(t, m, user.RoleUser))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"USER","email":"a@example.com"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequireAuth_Blacklisted(t *testing.T) {
	r, m, sessions := setupEngine(t)
	tok := token(t, m, user.RoleUser)

	require.NoError(t, sessions.AddToBlacklist(context.Background(), tok, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, get(r, "/me", "Bearer "+tok).Code)
}

func TestRequireRole(t *testing.T) {
	r, m, _ := setupEngine(t)

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "Bearer "+token(t, m, user.RoleAuthor)).Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/admin", "Bearer "+token(t, m, user.RoleAdmin)).Code)
}

func TestRequestLogger_KeepsIncomingRequestID(t *testing.T) {
	r, _, _ := setupEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}
