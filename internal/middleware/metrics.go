package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shorturl-service/internal/metrics"
)

// Metrics 记录每个路由的请求耗时
// 使用路由模板而不是实际路径，避免短码和密钥撑爆标签基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
