package book

import (
	"strings"
	"time"
)

// Criteria 图书检索条件
// 每个条件独立可选:空白字符串、nil日期都不产生约束
type Criteria struct {
	Title           string     // 书名包含(忽略大小写)
	Author          string     // 作者包含(忽略大小写)
	Genre           string     // 类型精确匹配(去除首尾空白后)
	PublishDateFrom *time.Time // 出版日期 >= From(含)
	PublishDateTo   *time.Time // 出版日期 <= To(含)
}

// Field 可过滤字段
type Field string

const (
	FieldTitle       Field = "title"
	FieldAuthor      Field = "author"
	FieldGenre       Field = "genre"
	FieldPublishDate Field = "publish_date"
)

// Op 比较操作
type Op string

const (
	OpContainsFold Op = "contains_fold" // Value: string(已转小写)
	OpEquals       Op = "eq"            // Value: string
	OpBetween      Op = "between"       // Value: DateRange
	OpOnOrAfter    Op = "gte"           // Value: time.Time
	OpOnOrBefore   Op = "lte"           // Value: time.Time
)

// DateRange 闭区间[From, To]
type DateRange struct {
	From time.Time
	To   time.Time
}

// Condition 单个过滤条件
type Condition struct {
	Field Field
	Op    Op
	Value interface{}
}

// Filter 按AND组合的条件列表
// 零值Filter匹配全部图书;不支持OR
type Filter struct {
	conditions []Condition
}

// Filter 把检索条件转换为Filter
// 设计说明:
// 1. 从"匹配全部"开始,每个存在的条件追加一个AND子句
// 2. 纯函数,不做IO;内存存储用Matches求值,MySQL存储翻译成WHERE
// 3. 增加条件永远不会扩大结果集
func (c Criteria) Filter() Filter {
	var f Filter

	if title := strings.TrimSpace(c.Title); title != "" {
		f.conditions = append(f.conditions, Condition{Field: FieldTitle, Op: OpContainsFold, Value: strings.ToLower(title)})
	}
	if author := strings.TrimSpace(c.Author); author != "" {
		f.conditions = append(f.conditions, Condition{Field: FieldAuthor, Op: OpContainsFold, Value: strings.ToLower(author)})
	}
	if genre := strings.TrimSpace(c.Genre); genre != "" {
		f.conditions = append(f.conditions, Condition{Field: FieldGenre, Op: OpEquals, Value: genre})
	}

	from, to := TruncateToDay(c.PublishDateFrom), TruncateToDay(c.PublishDateTo)
	switch {
	case from != nil && to != nil:
		f.conditions = append(f.conditions, Condition{Field: FieldPublishDate, Op: OpBetween, Value: DateRange{From: *from, To: *to}})
	case from != nil:
		f.conditions = append(f.conditions, Condition{Field: FieldPublishDate, Op: OpOnOrAfter, Value: *from})
	case to != nil:
		f.conditions = append(f.conditions, Condition{Field: FieldPublishDate, Op: OpOnOrBefore, Value: *to})
	}

	return f
}

// Conditions 返回条件副本
func (f Filter) Conditions() []Condition {
	out := make([]Condition, len(f.conditions))
	copy(out, f.conditions)
	return out
}

// IsEmpty 是否没有任何约束
func (f Filter) IsEmpty() bool {
	return len(f.conditions) == 0
}

// Matches 在内存中判断图书是否满足全部条件
func (f Filter) Matches(b *Book) bool {
	for _, c := range f.conditions {
		if !c.matches(b) {
			return false
		}
	}
	return true
}

func (c Condition) matches(b *Book) bool {
	switch c.Field {
	case FieldTitle:
		return matchString(c, b.Title)
	case FieldAuthor:
		return matchString(c, b.Author)
	case FieldGenre:
		return matchString(c, b.Genre)
	case FieldPublishDate:
		if b.PublishDate == nil {
			return false
		}
		return matchDate(c, dateKey(*b.PublishDate))
	}
	return false
}

func matchString(c Condition, actual string) bool {
	want, _ := c.Value.(string)
	switch c.Op {
	case OpContainsFold:
		return strings.Contains(strings.ToLower(actual), want)
	case OpEquals:
		return actual == want
	}
	return false
}

func matchDate(c Condition, actual int) bool {
	switch c.Op {
	case OpBetween:
		r := c.Value.(DateRange)
		return actual >= dateKey(r.From) && actual <= dateKey(r.To)
	case OpOnOrAfter:
		return actual >= dateKey(c.Value.(time.Time))
	case OpOnOrBefore:
		return actual <= dateKey(c.Value.(time.Time))
	}
	return false
}
