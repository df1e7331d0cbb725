package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Key设计：
//   - bookcatalog:session:{user_id}  登录会话（Hash）
//   - bookcatalog:blacklist:{token}  已吊销的Access Token
const keyPrefix = "bookcatalog:"

func sessionKey(userID uint) string {
	return fmt.Sprintf("%ssession:%d", keyPrefix, userID)
}

func blacklistKey(token string) string {
	return keyPrefix + "blacklist:" + token
}

// SessionStore 会话存储（Redis）
// 所有命令经过熔断器：Redis连续失败后直接返回错误，不再逐个等待超时
type SessionStore struct {
	client  *redis.Client
	breaker *circuitbreaker.Breaker
}

var _ user.SessionStore = (*SessionStore)(nil)

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{
		client: client,
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:             "redis-session",
			FailureThreshold: 5,
			OpenTimeout:      10 * time.Second,
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("熔断器状态变化")
			},
		}),
	}
}

// do 在熔断器保护下执行Redis命令,失败时包装成ErrCodeRedisError(Unexpected)
func (s *SessionStore) do(ctx context.Context, msg string, fn func(ctx context.Context) error) error {
	if err := s.breaker.Execute(ctx, fn); err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeRedisError, err, msg)
	}
	return nil
}

// SaveSession 保存用户会话
// HSet与Expire放在同一个事务管道里，避免留下没有过期时间的Key
func (s *SessionStore) SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error {
	key := sessionKey(userID)

	return s.do(ctx, "保存会话失败", func(ctx context.Context) error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, data)
			pipe.Expire(ctx, key, ttl)
			return nil
		})
		return err
	})
}

// GetSession 获取用户会话，不存在时返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (map[string]string, error) {
	var result map[string]string
	err := s.do(ctx, "获取会话失败", func(ctx context.Context) (err error) {
		result, err = s.client.HGetAll(ctx, sessionKey(userID)).Result()
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return result, nil
}

// DeleteSession 删除用户会话（用于登出）
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	return s.do(ctx, "删除会话失败", func(ctx context.Context) error {
		return s.client.Del(ctx, sessionKey(userID)).Err()
	})
}

// AddToBlacklist 将Token加入黑名单
// ttl<=0说明Token已过期，无需记录
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.do(ctx, "添加Token到黑名单失败", func(ctx context.Context) error {
		return s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err()
	})
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	var exists int64
	err := s.do(ctx, "检查黑名单失败", func(ctx context.Context) (err error) {
		exists, err = s.client.Exists(ctx, blacklistKey(token)).Result()
		return err
	})
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
