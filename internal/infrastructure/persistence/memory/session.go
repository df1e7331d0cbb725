package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// SessionStore 进程内会话存储
// redis.enabled=false时使用；过期的条目在读取时清理
type SessionStore struct {
	mu        sync.Mutex
	now       func() time.Time
	sessions  map[uint]expiring[map[string]interface{}]
	blacklist map[string]expiring[struct{}]
}

type expiring[T any] struct {
	value     T
	expiresAt time.Time
}

var _ user.SessionStore = (*SessionStore)(nil)

// NewSessionStore 创建进程内会话存储
func NewSessionStore() *SessionStore {
	return &SessionStore{
		now:       time.Now,
		sessions:  make(map[uint]expiring[map[string]interface{}]),
		blacklist: make(map[string]expiring[struct{}]),
	}
}

func (s *SessionStore) SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[string]interface{}, len(data))
	for k, v := range data {
		copied[k] = v
	}
	s.sessions[userID] = expiring[map[string]interface{}]{value: copied, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}

func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blacklist[token] = expiring[struct{}]{expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.blacklist[token]
	if !ok {
		return false, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.blacklist, token)
		return false, nil
	}
	return true, nil
}
