package mysql

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 2. debug模式打印SQL，其他模式关闭
// 3. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	// 2. 连接数据库
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: time.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 3. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 4. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("数据库连接成功")

	// 5. 自动迁移表结构
	// 注意：生产环境应使用版本化的迁移脚本
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&RatingModel{},
		&ReviewModel{},
	)
}

// UserModel GORM用户模型
// domain/user/entity.go是领域实体，不依赖GORM，Repository负责两者之间的转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Nickname  string    `gorm:"size:50;not null;comment:昵称"`
	Role      string    `gorm:"size:20;not null;default:USER;comment:角色(USER/AUTHOR/ADMIN)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. publish_date使用DATE类型(只保存日历日期)
// 2. genre单独索引,高分榜按类型聚合
// 3. 物理删除;删除图书时同一事务内删除其评分和评论
type BookModel struct {
	ID          uint       `gorm:"primaryKey"`
	Title       string     `gorm:"index:idx_title;size:255;not null;comment:书名"`
	Author      string     `gorm:"index:idx_author;size:255;not null;comment:作者"`
	Description string     `gorm:"type:text;comment:简介"`
	Genre       string     `gorm:"index:idx_genre;size:100;not null;comment:类型"`
	PublishDate *time.Time `gorm:"type:date;index:idx_publish_date;comment:出版日期"`
	CreatedAt   time.Time  `gorm:"comment:创建时间"`
	UpdatedAt   time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// RatingModel GORM评分模型
// (user_id, book_id)唯一索引保证每人每本书只有一条评分
type RatingModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:uk_rating_user_book;not null;comment:用户ID"`
	BookID    uint      `gorm:"uniqueIndex:uk_rating_user_book;index:idx_rating_book;not null;comment:图书ID"`
	Rating    int       `gorm:"type:tinyint;not null;comment:评分(1-5)"`
	CreatedAt time.Time `gorm:"comment:首次评分时间"`
	UpdatedAt time.Time `gorm:"comment:最近评分时间"`
}

// TableName 指定表名
func (RatingModel) TableName() string {
	return "user_book_ratings"
}

// ReviewModel GORM评论模型
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:uk_review_user_book;not null;comment:用户ID"`
	BookID    uint      `gorm:"uniqueIndex:uk_review_user_book;index:idx_review_book;not null;comment:图书ID"`
	Comment   string    `gorm:"type:text;not null;comment:评论内容(最多2000字符)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "user_book_reviews"
}
