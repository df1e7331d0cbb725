package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/pkg/logger"
)

// LogoutUseCase 用户登出用例
// JWT本身无状态，登出通过黑名单让Access Token提前失效
type LogoutUseCase struct {
	sessionStore user.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore user.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// LogoutRequest 登出请求
type LogoutRequest struct {
	UserID      uint
	AccessToken string
	ExpiresAt   time.Time // Token的exp，黑名单只需保留到此时
}

// Execute 执行登出
func (uc *LogoutUseCase) Execute(ctx context.Context, req LogoutRequest) error {
	// 1. 删除会话
	if err := uc.sessionStore.DeleteSession(ctx, req.UserID); err != nil {
		return err
	}

	// 2. Access Token加入黑名单（TTL = 剩余有效期）
	if err := uc.sessionStore.AddToBlacklist(ctx, req.AccessToken, time.Until(req.ExpiresAt)); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Uint("user_id", req.UserID).Msg("用户已登出")
	return nil
}
