package book

import "math"

const (
	// DefaultPageSize 未指定每页数量时的默认值
	DefaultPageSize = 20
	// MaxPageSize 每页数量上限
	MaxPageSize = 100
	// MaxOffset 跳过记录数上限,超大页码按此值计算(结果为空页)
	MaxOffset = math.MaxInt32
)

// sortableFields 允许排序的字段白名单(防止把任意输入拼进ORDER BY)
var sortableFields = map[string]bool{
	"id":           true,
	"title":        true,
	"author":       true,
	"genre":        true,
	"publish_date": true,
	"created_at":   true,
	"updated_at":   true,
}

// SortOrder 排序项
type SortOrder struct {
	Field string
	Desc  bool
}

// PageRequest 分页请求
// Page从0开始
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// Page 分页结果
type Page struct {
	Items []*Book
	Total int64
	Page  int
	Size  int
}

// Offset 跳过的记录数,不超过MaxOffset(Page*Size不会溢出)
func (p PageRequest) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > MaxOffset/p.Size {
		return MaxOffset
	}
	return p.Page * p.Size
}

// Normalize 规范化分页参数
// 规则:
// 1. Page < 0 视为0
// 2. Size <= 0 使用默认值,超过MaxPageSize截断
// 3. 排序字段必须在白名单内,否则返回InvalidArgument
// 4. 默认按id升序;id总是作为最后的排序键,保证翻页稳定
func (p PageRequest) Normalize() (PageRequest, error) {
	out := PageRequest{Page: p.Page, Size: p.Size}
	if out.Page < 0 {
		out.Page = 0
	}
	if out.Size <= 0 {
		out.Size = DefaultPageSize
	}
	if out.Size > MaxPageSize {
		out.Size = MaxPageSize
	}

	hasID := false
	for _, s := range p.Sort {
		if !sortableFields[s.Field] {
			return PageRequest{}, ErrInvalidSortField(s.Field)
		}
		if s.Field == "id" {
			if hasID {
				continue
			}
			hasID = true
		}
		out.Sort = append(out.Sort, s)
	}
	if !hasID {
		out.Sort = append(out.Sort, SortOrder{Field: "id"})
	}
	return out, nil
}
