package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// NewClient 创建Redis客户端
// 1. 连接池与超时参数来自redis.*配置
// 2. 挂载metricsHook记录每条命令的耗时
// 3. 启动时Ping一次(受DialTimeout约束)，失败直接返回错误，由调用方决定是否退出
func NewClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rc := cfg.Redis
	client := redis.NewClient(&redis.Options{
		Addr:         rc.Addr(),
		Password:     rc.Password,
		DB:           rc.DB,
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,
		DialTimeout:  rc.DialTimeout,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: rc.WriteTimeout,
	})
	client.AddHook(metricsHook{})

	pingCtx, cancel := context.WithTimeout(ctx, rc.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis连接失败(%s): %w", rc.Addr(), err)
	}

	log.Info().Str("addr", rc.Addr()).Int("db", rc.DB).Int("pool_size", rc.PoolSize).Msg("Redis连接成功")
	return client, nil
}

// metricsHook 按命令名记录耗时
// redis.Nil(键不存在)不算错误
type metricsHook struct{}

var _ redis.Hook = metricsHook{}

func (metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		observeCommand(cmd.Name(), err, time.Since(start))
		return err
	}
}

func (metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		observeCommand("pipeline", err, time.Since(start))
		return err
	}
}

func observeCommand(name string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil && err != redis.Nil {
		status = "error"
	}
	metrics.ObserveHistogramVec(metrics.RedisCommandDuration,
		map[string]string{"command": name, "status": status},
		elapsed.Seconds())
}
