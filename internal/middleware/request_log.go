package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tradefair/pkg/logger"
)

// HeaderRequestID 请求 ID 响应头
const HeaderRequestID = "X-Request-ID"

// RequestLog 请求日志中间件
// 透传或生成请求 ID，并在请求结束后输出访问日志
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		start := time.Now()
		c.Next()

		logger.L.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
