package memory

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type userRecord struct {
	user.User
}

type userRepository struct {
	s *Store
}

// Users 返回用户仓储
func (s *Store) Users() user.Repository {
	return &userRepository{s: s}
}

// Create 邮箱唯一
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rec := range r.s.users {
		if rec.Email == u.Email {
			return apperrors.ErrEmailDuplicate
		}
	}
	r.s.nextUserID++
	now := time.Now()
	u.ID = r.s.nextUserID
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.users[u.ID] = userRecord{User: *u}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u := rec.User
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rec := range r.s.users {
		if rec.Email == email {
			u := rec.User
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}
