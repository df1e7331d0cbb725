package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

func TestUserModelMapping(t *testing.T) {
	model := toUserModel(&user.User{Email: "a@b.com", Nickname: "ab"})
	assert.Equal(t, "USER", model.Role)

	tests := []struct {
		stored string
		want   user.Role
	}{
		{"author", user.RoleAuthor},
		{"ADMIN", user.RoleAdmin},
		{"", user.RoleUser},
		{"superuser", user.RoleUser},
	}
	for _, tt := range tests {
		got := toUserEntity(&UserModel{ID: 1, Role: tt.stored})
		assert.Equal(t, tt.want, got.Role, tt.stored)
	}
}
