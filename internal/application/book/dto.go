package book

import (
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// tracerName 本包Span所属的Tracer
const tracerName = "bookcatalog/application/book"

// dateLayout 出版日期格式（精确到天）
const dateLayout = "2006-01-02"

// BookResponse 图书响应DTO
// 说明：不直接返回领域实体，领域模型变更不影响API契约
type BookResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Genre       string    `json:"genre"`
	PublishDate *string   `json:"publish_date"` // yyyy-MM-dd，未知时为null
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// toBookResponse 领域实体 → 应用层DTO
func toBookResponse(b *book.Book) *BookResponse {
	resp := &BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Genre:       b.Genre,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.PublishDate != nil {
		s := b.PublishDate.Format(dateLayout)
		resp.PublishDate = &s
	}
	return resp
}
