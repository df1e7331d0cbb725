package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestRegister(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)
	svc := NewServiceWithCost(repo, bcrypt.MinCost)

	u, err := svc.Register(context.Background(), "reader@example.com", "password123", "Reader", "")

	require.NoError(t, err)
	assert.Equal(t, RoleUser, u.Role)
	assert.NotEqual(t, "password123", u.Password)
	assert.NoError(t, svc.ValidatePassword(u.Password, "password123"))
}

func TestRegister_Validation(t *testing.T) {
	svc := NewServiceWithCost(new(mockRepository), bcrypt.MinCost)
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "password123", "Reader", RoleUser)
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))

	_, err = svc.Register(ctx, "a@example.com", "short", "Reader", RoleUser)
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	_, err = svc.Register(ctx, "a@example.com", "password123", "Reader", Role("ROOT"))
	assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := new(mockRepository)
	repo.On("FindByEmail", mock.Anything, "a@example.com").
		Return(&User{ID: 1, Email: "a@example.com", Password: string(hashed), Role: RoleAuthor}, nil)

	_, err = NewServiceWithCost(repo, bcrypt.MinCost).Login(context.Background(), "a@example.com", "password999")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("author")
	assert.True(t, ok)
	assert.Equal(t, RoleAuthor, r)

	r, ok = ParseRole("")
	assert.True(t, ok)
	assert.Equal(t, RoleUser, r)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)

	assert.True(t, (&User{Role: RoleAdmin}).HasRole(RoleAuthor, RoleAdmin))
	assert.False(t, (&User{Role: RoleUser}).HasRole(RoleAuthor, RoleAdmin))
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockRepository)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, apperrors.ErrUserNotFound)

	_, err := NewServiceWithCost(repo, bcrypt.MinCost).Login(context.Background(), "ghost@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}
