package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验,不关心鉴权、日志、事务
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书
	// 业务规则:书名、作者、类型不能为空
	CreateBook(ctx context.Context, in NewBookInput) (*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 部分更新图书
	// 只覆盖update中已设置的字段
	UpdateBook(ctx context.Context, id uint, update BookUpdate) (*Book, error)

	// DeleteBook 删除图书(不存在时返回NotFound,不是幂等操作)
	DeleteBook(ctx context.Context, id uint) error

	// SearchBooks 多条件分页检索
	SearchBooks(ctx context.Context, criteria Criteria, page PageRequest) (*Page, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, in NewBookInput) (*Book, error) {
	// 1. 创建并校验实体
	book, err := NewBook(in)
	if err != nil {
		return nil, err
	}

	// 2. 持久化(回填ID)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 部分更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, update BookUpdate) (*Book, error) {
	// 1. 查询图书
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 应用更新(含校验)
	if err := book.Apply(update); err != nil {
		return nil, err
	}

	// 3. 持久化
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	// 1. 存在性检查
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return NotFound(id)
	}

	// 2. 删除(并发删除时仓储在RowsAffected==0时同样返回NotFound)
	return s.repo.Delete(ctx, id)
}

// SearchBooks 多条件分页检索
func (s *service) SearchBooks(ctx context.Context, criteria Criteria, page PageRequest) (*Page, error) {
	// 1. 规范化分页与排序
	req, err := page.Normalize()
	if err != nil {
		return nil, err
	}

	// 2. 组合过滤条件并查询
	items, total, err := s.repo.Search(ctx, criteria.Filter(), req)
	if err != nil {
		return nil, err
	}

	return &Page{
		Items: items,
		Total: total,
		Page:  req.Page,
		Size:  req.Size,
	}, nil
}
