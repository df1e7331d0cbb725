// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
//   - Counter（计数器）：只增不减，如请求总数、图书创建总数
//   - Gauge（仪表盘）：可增可减，如正在处理的请求数
//   - Histogram（直方图）：观测值分布，如请求耗时、检索耗时
//
// # 指标清单
//
// HTTP层（middleware.Metrics记录）：
//
//	http_requests_total{method,path,status}
//	http_request_duration_seconds{method,path}
//	http_requests_in_progress
//
// 业务层（application用例记录）：
//
//	catalog_books_created_total
//	catalog_ratings_upserted_total{result=created|updated}
//	catalog_reviews_created_total
//	catalog_review_conflicts_total
//	catalog_search_duration_seconds
//
// 存储层：
//
//	redis_command_duration_seconds{command,status}
//	db_transactions_total{result=commit|rollback}
//
// # 命名规范
//
//   - 使用snake_case，Counter以_total结尾，耗时以_seconds结尾
//   - path标签使用路由模板（/books/:id），不要使用原始URL，避免标签基数爆炸
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 评分写入结果标签
const (
	ResultCreated = "created"
	ResultUpdated = "updated"
)

// 事务结果标签
const (
	TxCommit   = "commit"
	TxRollback = "rollback"
)

var (
	initOnce sync.Once

	// =========================================
	// HTTP指标
	// =========================================

	// HTTPRequestsTotal HTTP请求总数
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// =========================================
	// 图书目录业务指标
	// =========================================

	// BooksCreatedTotal 图书创建总数
	BooksCreatedTotal prometheus.Counter

	// RatingsUpsertedTotal 评分写入次数（按新建/覆盖区分）
	RatingsUpsertedTotal *prometheus.CounterVec

	// ReviewsCreatedTotal 评论创建总数
	ReviewsCreatedTotal prometheus.Counter

	// ReviewConflictsTotal 重复评论被拒绝的次数
	ReviewConflictsTotal prometheus.Counter

	// SearchDuration 图书检索耗时
	SearchDuration prometheus.Histogram

	// =========================================
	// 存储指标
	// =========================================

	// RedisCommandDuration Redis命令耗时（status=ok|error）
	RedisCommandDuration *prometheus.HistogramVec

	// DBTransactionsTotal 数据库事务数（按提交/回滚区分）
	DBTransactionsTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有指标
// 注意：promauto会注册到全局Registry，重复注册会panic，所以只执行一次
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		BooksCreatedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_books_created_total",
				Help: "图书创建总数",
			},
		)

		RatingsUpsertedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_ratings_upserted_total",
				Help: "评分写入次数",
			},
			[]string{"result"}, // created | updated
		)

		ReviewsCreatedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_reviews_created_total",
				Help: "评论创建总数",
			},
		)

		ReviewConflictsTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_review_conflicts_total",
				Help: "重复评论被拒绝次数",
			},
		)

		SearchDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "catalog_search_duration_seconds",
				Help:    "图书检索耗时（秒）",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		)

		RedisCommandDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "redis_command_duration_seconds",
				Help:    "Redis命令耗时（秒）",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"command", "status"},
		)

		DBTransactionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_transactions_total",
				Help: "数据库事务数",
			},
			[]string{"result"}, // commit | rollback
		)
	})
}

// =========================================
// 辅助函数
// =========================================

// 以下辅助函数在InitMetrics之前调用时不做任何事（单元测试不需要注册指标）

// IncCounter 递增Counter
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增带标签的Counter
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录带标签的Histogram观测值
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
