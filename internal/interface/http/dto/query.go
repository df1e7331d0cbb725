package dto

import (
	"strings"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// SearchBooksQuery 图书检索查询参数
// 示例: /api/v1/books/search?title=atomic&genre=Self-help&page=0&size=10&sort=publish_date,desc
type SearchBooksQuery struct {
	Title           string   `form:"title" example:"atomic"`
	Author          string   `form:"author"`
	Genre           string   `form:"genre" example:"Self-help"`
	PublishDateFrom string   `form:"publish_date_from" binding:"omitempty,datetime=2006-01-02" example:"2016-01-01"`
	PublishDateTo   string   `form:"publish_date_to" binding:"omitempty,datetime=2006-01-02" example:"2018-12-31"`
	Page            int      `form:"page" example:"0"`  // 从0开始,负数按0处理
	Size            int      `form:"size" example:"20"` // 默认20,最大100
	Sort            []string `form:"sort" example:"publish_date,desc"`
}

// DateRange 解析日期区间
func (q SearchBooksQuery) DateRange() (from, to *time.Time, err error) {
	if from, err = ParseDate("publish_date_from", q.PublishDateFrom); err != nil {
		return nil, nil, err
	}
	if to, err = ParseDate("publish_date_to", q.PublishDateTo); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// sortAliases 兼容camelCase字段名
var sortAliases = map[string]string{
	"publishDate": "publish_date",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// ParseSort 解析排序参数
// 格式: field[,asc|desc],可重复出现;字段是否可排序由领域层判断
func ParseSort(values []string) ([]book.SortOrder, error) {
	var orders []book.SortOrder
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		field, dir, _ := strings.Cut(v, ",")
		field = strings.TrimSpace(field)
		if alias, ok := sortAliases[field]; ok {
			field = alias
		}

		order := book.SortOrder{Field: field}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			order.Desc = true
		default:
			return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "无效的排序方向: %s", dir)
		}
		orders = append(orders, order)
	}
	return orders, nil
}
