package user

import (
	"strings"
	"time"
)

// Role 用户角色
type Role string

const (
	RoleUser   Role = "USER"   // 普通读者:评分、评论
	RoleAuthor Role = "AUTHOR" // 作者:维护图书
	RoleAdmin  Role = "ADMIN"  // 管理员:维护图书
)

// ParseRole 解析角色(忽略大小写),空串视为USER
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case "", RoleUser:
		return RoleUser, true
	case RoleAuthor:
		return RoleAuthor, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. 密码已加密存储（bcrypt），不暴露明文
// 2. 领域实体不依赖GORM tag（infrastructure层负责映射）
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Nickname  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, nickname string, role Role) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasRole 是否具有任一角色
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
