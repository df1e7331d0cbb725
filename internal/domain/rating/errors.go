package rating

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	// ErrRatingNotFound 评分不存在(仓储按(book, user)查询不到时返回)
	ErrRatingNotFound = apperrors.New(apperrors.ErrCodeRatingNotFound, "评分不存在")

	// ErrRatingDuplicate 唯一键冲突(并发的首次评分)
	ErrRatingDuplicate = apperrors.New(apperrors.ErrCodeRatingDuplicate, "评分已存在")
)

// ErrInvalidValue 评分超出范围
func ErrInvalidValue(value int) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInvalidParams, "评分必须在%d-%d之间: %d", MinValue, MaxValue, value)
}
