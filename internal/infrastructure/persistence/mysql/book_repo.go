package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

const dateLayout = "2006-01-02"

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. book.Filter在这里翻译成WHERE子句
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := toBookModel(b)
	model.ID = 0

	// 2. 插入数据库
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return dbError(err, "创建图书失败")
	}

	// 3. 回填自增ID和时间戳
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.NotFound(id)
		}
		return nil, dbError(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// ExistsByID 图书是否存在
func (r *bookRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ?", id).Limit(1).Count(&count).Error
	if err != nil {
		return false, dbError(err, "查询图书失败")
	}
	return count > 0, nil
}

// Update 更新图书全部字段
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	// Select("*")保证零值字段(清空的简介、出版日期)也会被写入
	result := getDB(ctx, r.db).Model(model).Select("*").Omit("created_at").Updates(model)
	if result.Error != nil {
		return dbError(result.Error, "更新图书失败")
	}
	// DSN开启了clientFoundRows,RowsAffected为匹配行数;为0说明读取后记录已被并发删除
	if result.RowsAffected == 0 {
		return book.NotFound(b.ID)
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书(连同其评分和评论)
// 在调用方事务内执行时使用Savepoint
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&RatingModel{}).Error; err != nil {
			return dbError(err, "删除图书评分失败")
		}
		if err := tx.Where("book_id = ?", id).Delete(&ReviewModel{}).Error; err != nil {
			return dbError(err, "删除图书评论失败")
		}

		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return dbError(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return book.NotFound(id)
		}
		return nil
	})
}

// Search 多条件分页检索
func (r *bookRepository) Search(ctx context.Context, filter book.Filter, page book.PageRequest) ([]*book.Book, int64, error) {
	var (
		models []BookModel
		total  int64
	)

	// 1. 组合WHERE条件
	query, err := applyFilter(getDB(ctx, r.db).Model(&BookModel{}), filter)
	if err != nil {
		return nil, 0, err
	}

	// 2. 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, dbError(err, "查询图书总数失败")
	}
	if total == 0 {
		return []*book.Book{}, 0, nil
	}

	// 3. 排序与分页(排序字段已在领域层白名单校验)
	query = applySort(query, page.Sort).Limit(page.Size).Offset(page.Offset())

	// 4. 查询数据
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, dbError(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// applyFilter book.Filter → WHERE子句(多个条件AND组合)
func applyFilter(query *gorm.DB, filter book.Filter) (*gorm.DB, error) {
	for _, c := range filter.Conditions() {
		column := string(c.Field)

		switch c.Op {
		case book.OpContainsFold:
			query = query.Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), containsPattern(c.Value.(string)))
		case book.OpEquals:
			query = query.Where(fmt.Sprintf("%s = ?", column), c.Value)
		case book.OpBetween:
			rng := c.Value.(book.DateRange)
			query = query.Where(fmt.Sprintf("%s BETWEEN ? AND ?", column), rng.From.Format(dateLayout), rng.To.Format(dateLayout))
		case book.OpOnOrAfter:
			query = query.Where(fmt.Sprintf("%s >= ?", column), c.Value.(time.Time).Format(dateLayout))
		case book.OpOnOrBefore:
			query = query.Where(fmt.Sprintf("%s <= ?", column), c.Value.(time.Time).Format(dateLayout))
		default:
			return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "不支持的过滤操作: %s", c.Op)
		}
	}
	return query, nil
}

// applySort 追加ORDER BY
func applySort(query *gorm.DB, orders []book.SortOrder) *gorm.DB {
	for _, o := range orders {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Field}, Desc: o.Desc})
	}
	return query
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Genre:       b.Genre,
		PublishDate: b.PublishDate,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
// DATE列按连接的loc解析,这里统一截断成UTC零点
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:          model.ID,
		Title:       model.Title,
		Author:      model.Author,
		Description: model.Description,
		Genre:       model.Genre,
		PublishDate: book.TruncateToDay(model.PublishDate),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
