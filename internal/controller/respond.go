package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradefair/internal/service"
	"tradefair/pkg/logger"
)

// respondError 统一错误出口
// 服务层的哨兵错误在这里映射为 HTTP 状态码, 未识别的错误一律 500 并记录日志
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidState):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrGateway):
		status = http.StatusInternalServerError
	default:
		logger.L.Error("未预期的服务错误",
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(err),
		)
		ctx.JSON(status, gin.H{
			"success": false,
			"error":   "服务器内部错误",
		})
		return
	}

	ctx.JSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// respondOK 统一成功出口
func respondOK(ctx *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	ctx.JSON(http.StatusOK, body)
}
