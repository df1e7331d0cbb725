package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在(errors.Is按错误码匹配,NotFound(id)生成的错误同样命中)
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrBlankTitle 书名为空
	ErrBlankTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrBlankAuthor 作者为空
	ErrBlankAuthor = apperrors.New(apperrors.ErrCodeInvalidParams, "作者不能为空")

	// ErrBlankGenre 类型为空
	ErrBlankGenre = apperrors.New(apperrors.ErrCodeInvalidParams, "类型不能为空")
)

// NotFound 带id的图书不存在错误
func NotFound(id uint) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeBookNotFound, "图书不存在: id=%d", id)
}

// ErrInvalidSortField 不支持的排序字段
func ErrInvalidSortField(field string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInvalidParams, "不支持的排序字段: %s", field)
}
