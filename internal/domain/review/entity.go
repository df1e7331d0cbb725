package review

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCommentLength 评论最大字符数(按rune计)
const MaxCommentLength = 2000

// Review 用户对图书的评论
// 业务规则:
// 1. 每个(UserID, BookID)最多一条,重复提交返回Conflict
// 2. 创建后不支持修改和删除
type Review struct {
	ID        uint
	UserID    uint
	BookID    uint
	Comment   string
	CreatedAt time.Time
}

// NewReview 创建评论(工厂方法)
// 评论内容去除首尾空白后不能为空,且不超过2000字符
func NewReview(bookID, userID uint, comment string) (*Review, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, ErrBlankComment
	}
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}
	return &Review{
		UserID:    userID,
		BookID:    bookID,
		Comment:   comment,
		CreatedAt: time.Now(),
	}, nil
}
