package dto

import (
	"time"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/optional"
)

// DateLayout 出版日期格式
const DateLayout = "2006-01-02"

// CreateBookRequest HTTP新增图书请求
// validator tag说明:
// - required: 必填字段(去空白后的非空校验由领域层负责)
// - datetime: 日期格式yyyy-MM-dd
type CreateBookRequest struct {
	Title       string  `json:"title" binding:"required,max=255" example:"Atomic Habits"`
	Author      string  `json:"author" binding:"required,max=255" example:"James Clear"`
	Description string  `json:"description" binding:"max=5000" example:"An easy and proven way to build good habits"`
	Genre       string  `json:"genre" binding:"required,max=100" example:"Self-help"`
	PublishDate *string `json:"publish_date" binding:"required,datetime=2006-01-02" example:"2018-10-16"`
}

// ParsedPublishDate 解析出版日期
func (r CreateBookRequest) ParsedPublishDate() (*time.Time, error) {
	if r.PublishDate == nil {
		return nil, nil
	}
	return ParseDate("publish_date", *r.PublishDate)
}

// UpdateBookRequest HTTP更新图书请求(部分更新)
// 只有出现在JSON里的字段才会被修改;null与缺省等价
type UpdateBookRequest struct {
	Title       optional.Value[string] `json:"title" swaggertype:"string" example:"Atomic Habits"`
	Author      optional.Value[string] `json:"author" swaggertype:"string" example:"James Clear"`
	Description optional.Value[string] `json:"description" swaggertype:"string"`
	Genre       optional.Value[string] `json:"genre" swaggertype:"string" example:"Self-help"`
	PublishDate optional.Value[string] `json:"publish_date" swaggertype:"string" example:"2018-10-16"`
}

// ParsedPublishDate 解析出版日期(未设置时返回未设置)
func (r UpdateBookRequest) ParsedPublishDate() (optional.Value[*time.Time], error) {
	s, ok := r.PublishDate.Get()
	if !ok {
		return optional.None[*time.Time](), nil
	}
	t, err := ParseDate("publish_date", s)
	if err != nil {
		return optional.None[*time.Time](), err
	}
	return optional.Of(t), nil
}

// ParseDate 解析yyyy-MM-dd,空串返回nil
func ParseDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "%s格式错误,应为yyyy-MM-dd: %s", field, s)
	}
	return &t, nil
}
