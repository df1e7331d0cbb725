// Package logger 基于zerolog的结构化日志
//
// 使用方式：
//
//	log, err := logger.New(logger.Config{Level: "info", Format: "json", Output: "stdout"})
//	logger.SetGlobal(log)
//
//	// 请求级别：中间件把带request_id的logger放入context
//	logger.FromContext(ctx).Info().Uint("book_id", id).Msg("图书创建成功")
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// Config 日志配置（字段与config.LogConfig一一对应）
type Config struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
	Service      string
}

// New 根据配置创建Logger
func New(cfg Config) (zerolog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out, err := openOutput(cfg.Output)
	if err != nil {
		return zerolog.Nop(), err
	}

	// console格式用于本地开发，json格式用于日志采集
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), nil
}

// SetGlobal 设置全局Logger
// FromContext在context中找不到Logger时回退到这里
func SetGlobal(l zerolog.Logger) {
	log.Logger = l
	zerolog.DefaultContextLogger = &log.Logger
}

// WithContext 把Logger放入context
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// FromContext 从context取出Logger，并附带当前span的trace_id
func FromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled && zerolog.DefaultContextLogger == nil {
		l = &log.Logger
	}

	traceID := tracing.ExtractTraceID(ctx)
	if traceID == "" {
		return l
	}
	withTrace := l.With().
		Str("trace_id", traceID).
		Str("span_id", tracing.ExtractSpanID(ctx)).
		Logger()
	return &withTrace
}

func parseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("无效的日志级别: %s", s)
	}
	return level, nil
}

func openOutput(output string) (io.Writer, error) {
	switch output {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		return f, nil
	}
}
