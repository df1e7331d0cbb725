package book

import (
	"strings"
	"time"

	"github.com/xiebiao/bookcatalog/pkg/optional"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book不持有评分/评论集合,聚合统计通过Rating → Book关联查询得到
// 2. PublishDate是日历日期(无时分秒),可以为空
// 3. CreatedAt/UpdatedAt由存储层维护,UpdatedAt >= CreatedAt
type Book struct {
	ID          uint
	Title       string     // 书名(非空)
	Author      string     // 作者(非空)
	Description string     // 简介(可为空)
	Genre       string     // 类型(非空,如Fiction/Self-help)
	PublishDate *time.Time // 出版日期(精确到天)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBookInput 创建图书的输入
type NewBookInput struct {
	Title       string
	Author      string
	Description string
	Genre       string
	PublishDate *time.Time
}

// BookUpdate 部分更新
// 只有已设置(Get返回ok)的字段会被覆盖;PublishDate设置为nil表示清空出版日期
type BookUpdate struct {
	Title       optional.Value[string]
	Author      optional.Value[string]
	Description optional.Value[string]
	Genre       optional.Value[string]
	PublishDate optional.Value[*time.Time]
}

// NewBook 创建新图书(工厂方法)
// 业务规则:书名、作者、类型去除首尾空白后不能为空
func NewBook(in NewBookInput) (*Book, error) {
	b := &Book{
		Title:       strings.TrimSpace(in.Title),
		Author:      strings.TrimSpace(in.Author),
		Description: in.Description,
		Genre:       strings.TrimSpace(in.Genre),
		PublishDate: TruncateToDay(in.PublishDate),
	}
	if err := b.validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	return b, nil
}

// Apply 应用部分更新(领域行为)
// 校验失败时实体保持不变
func (b *Book) Apply(u BookUpdate) error {
	next := *b

	if title, ok := u.Title.Get(); ok {
		next.Title = strings.TrimSpace(title)
	}
	if author, ok := u.Author.Get(); ok {
		next.Author = strings.TrimSpace(author)
	}
	if genre, ok := u.Genre.Get(); ok {
		next.Genre = strings.TrimSpace(genre)
	}
	u.Description.Apply(&next.Description)
	if date, ok := u.PublishDate.Get(); ok {
		next.PublishDate = TruncateToDay(date)
	}

	if err := next.validate(); err != nil {
		return err
	}

	next.UpdatedAt = time.Now()
	*b = next
	return nil
}

func (b *Book) validate() error {
	if b.Title == "" {
		return ErrBlankTitle
	}
	if b.Author == "" {
		return ErrBlankAuthor
	}
	if b.Genre == "" {
		return ErrBlankGenre
	}
	return nil
}

// TruncateToDay 去掉时分秒,保留日历日期(UTC零点)
func TruncateToDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}

// dateKey 日历日期比较键(20240131)
func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
