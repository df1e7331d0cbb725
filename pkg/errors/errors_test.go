package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	notFound := New(ErrCodeBookNotFound, "图书不存在")
	err := fmt.Errorf("get book: %w", Newf(ErrCodeBookNotFound, "图书不存在: id=%d", 42))

	assert.True(t, errors.Is(err, notFound))
	assert.False(t, errors.Is(err, ErrUserNotFound))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(New(ErrCodeBookNotFound, "x")))
	assert.Equal(t, KindConflict, KindOf(New(ErrCodeReviewDuplicate, "x")))
	assert.Equal(t, KindConflict, KindOf(ErrEmailDuplicate))
	assert.Equal(t, KindInvalidArgument, KindOf(ErrInvalidParams))
	assert.Equal(t, KindInvalidArgument, KindOf(ErrWeakPassword))
	assert.Equal(t, KindUnauthorized, KindOf(ErrTokenExpired))
	assert.Equal(t, KindForbidden, KindOf(ErrForbidden))
	assert.Equal(t, KindUnexpected, KindOf(Wrap(errors.New("boom"), "内部错误")))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("plain")))
}

func TestGetAppError_WrapsPlainError(t *testing.T) {
	cause := errors.New("boom")
	appErr := GetAppError(cause)

	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.ErrorIs(t, appErr, cause)
}

func TestWrapCode_KeepsCodeAndCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	dbErr := WrapCode(ErrCodeDatabaseError, cause, "查询图书失败")
	assert.Equal(t, ErrCodeDatabaseError, dbErr.Code)
	assert.ErrorIs(t, dbErr, cause)
	assert.Equal(t, KindUnexpected, dbErr.Kind())

	redisErr := WrapCode(ErrCodeRedisError, cause, "会话存储不可用")
	assert.Equal(t, ErrCodeRedisError, GetAppError(fmt.Errorf("login: %w", redisErr)).Code)
	assert.Equal(t, KindUnexpected, KindOf(redisErr))

	assert.Equal(t, KindInvalidArgument, KindOf(New(ErrCodeBindError, "参数格式错误")))
	assert.Equal(t, ErrCodeInternal, Wrap(cause, "x").Code)
}
