package controller

import (
	"github.com/gin-gonic/gin"

	"tradefair/internal/api/dto"
	"tradefair/internal/middleware"
	"tradefair/internal/service"
)

// NotificationController 通知控制器
type NotificationController struct {
	svc *service.NotificationService
}

// NewNotificationController 创建通知控制器
func NewNotificationController(svc *service.NotificationService) *NotificationController {
	return &NotificationController{svc: svc}
}

// List 当前用户通知列表
// GET /api/notifications
func (c *NotificationController) List(ctx *gin.Context) {
	notifications, err := c.svc.ListForUser(ctx, middleware.GetPrincipal(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{
		"notifications": dto.ToNotificationVOList(notifications),
		"total":         len(notifications),
	})
}

// MarkRead 标记通知已读
// POST /api/notifications/:id/read
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.svc.MarkRead(ctx, middleware.GetPrincipal(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{})
}
