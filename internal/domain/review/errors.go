package review

import (
	"fmt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var (
	// ErrReviewNotFound 评论不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "评论不存在")

	// ErrReviewDuplicate 同一用户对同一本书已经评论过
	ErrReviewDuplicate = apperrors.New(apperrors.ErrCodeReviewDuplicate, "Review already exists for this user and book.")

	// ErrBlankComment 评论为空
	ErrBlankComment = apperrors.New(apperrors.ErrCodeInvalidParams, "评论内容不能为空")

	// ErrCommentTooLong 评论过长
	ErrCommentTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, fmt.Sprintf("评论内容不能超过%d个字符", MaxCommentLength))
)

// Duplicate 带(user, book)的冲突错误
func Duplicate(userID, bookID uint) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeReviewDuplicate,
		"Review already exists for this user and book. user_id=%d, book_id=%d", userID, bookID)
}
