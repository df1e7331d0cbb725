package middleware

import (
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/response"
	"github.com/xiebiao/bookcatalog/pkg/tracing"
)

// RequestIDHeader 请求ID头，客户端未携带时生成UUID
const RequestIDHeader = "X-Request-ID"

const tracerName = "bookcatalog/http"

// RequestLogger 请求日志中间件
// 1. 生成/透传request_id并写回响应头
// 2. 为每个请求开启一个Span（路由模板作为Span名）
// 3. 把带request_id的Logger放入request context，后续logger.FromContext可取到
// 4. 请求结束后记录访问日志
func RequestLogger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		spanName := c.FullPath()
		if spanName == "" {
			spanName = "unmatched"
		}
		ctx, span := tracing.StartSpan(c.Request.Context(), tracerName, c.Request.Method+" "+spanName)
		defer span.End()

		l := base.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(ctx, l))

		c.Next()

		status := c.Writer.Status()
		evt := logger.FromContext(c.Request.Context()).Info()
		if status >= 500 {
			evt = logger.FromContext(c.Request.Context()).Error()
		}
		evt.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Recovery panic恢复，记录堆栈后返回500
// gin自带的输出写到io.Discard，只保留一条zerolog结构化日志
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered interface{}) {
		logger.FromContext(c.Request.Context()).Error().
			Str("panic", fmt.Sprint(recovered)).
			Str("path", c.Request.URL.Path).
			Bytes("stack", debug.Stack()).
			Msg("panic recovered")
		response.Error(c, apperrors.ErrInternal)
		c.Abort()
	})
}
