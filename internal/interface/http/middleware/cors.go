package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSOptions 跨域配置
type CORSOptions struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int // 预检结果缓存秒数
}

// CORS 跨域中间件
// 规则：
// 1. 没有Origin头的请求（非浏览器）直接放行
// 2. Origin不在白名单内返回403
// 3. 允许携带凭证时回写具体Origin而不是"*"
// 4. OPTIONS预检请求返回204，不进入后续处理器
func CORS(opts CORSOptions) gin.HandlerFunc {
	methods := strings.Join(opts.AllowMethods, ", ")
	headers := joinWith(opts.AllowHeaders, RequestIDHeader)
	expose := joinWith(opts.ExposeHeaders, RequestIDHeader)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		allowed, wildcard := matchOrigin(opts.AllowOrigins, origin)
		if !allowed {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		if wildcard && !opts.AllowCredentials {
			c.Header("Access-Control-Allow-Origin", "*")
		} else {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		if opts.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Expose-Headers", expose)

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", headers)
			if opts.MaxAge > 0 {
				c.Header("Access-Control-Max-Age", strconv.Itoa(opts.MaxAge))
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func matchOrigin(allowed []string, origin string) (ok, wildcard bool) {
	for _, o := range allowed {
		if o == "*" {
			return true, true
		}
		if strings.EqualFold(o, origin) {
			return true, false
		}
	}
	return false, false
}

// joinWith 追加extra后拼接,不修改调用方的切片
func joinWith(list []string, extra string) string {
	all := make([]string, 0, len(list)+1)
	all = append(all, list...)
	return strings.Join(append(all, extra), ", ")
}
