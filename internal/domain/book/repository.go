package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(mysql/memory)
// 2. 找不到记录时返回NotFound(id),而不是(nil, nil)
type Repository interface {
	// Create 创建图书,回填ID和时间戳
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// ExistsByID 图书是否存在
	ExistsByID(ctx context.Context, id uint) (bool, error)

	// Update 保存图书全部字段
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书,没有删除任何行时返回NotFound
	Delete(ctx context.Context, id uint) error

	// Search 按Filter检索,返回当前页和总数
	// page必须是Normalize之后的请求
	Search(ctx context.Context, filter Filter, page PageRequest) ([]*Book, int64, error)
}
