package user

import (
	"context"
	"time"
)

// SessionStore 会话与Token黑名单
// 实现：infrastructure/persistence/redis（生产）、persistence/memory（本地/测试）
type SessionStore interface {
	// SaveSession 保存登录会话，ttl与Refresh Token有效期一致
	SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error

	// DeleteSession 删除登录会话
	DeleteSession(ctx context.Context, userID uint) error

	// AddToBlacklist 吊销Token，ttl为Token剩余有效期
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error

	// IsInBlacklist Token是否已吊销
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}
