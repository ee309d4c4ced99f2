package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradefair/internal/api/dto"
	"tradefair/internal/middleware"
	"tradefair/internal/service"
)

// ActivityController 用户行为控制器
type ActivityController struct {
	svc *service.ActivityService
}

// NewActivityController 创建用户行为控制器
func NewActivityController(svc *service.ActivityService) *ActivityController {
	return &ActivityController{svc: svc}
}

// Track 行为埋点（允许匿名, 匿名请求静默丢弃）
// POST /api/activity/track
func (c *ActivityController) Track(ctx *gin.Context) {
	var req dto.TrackActivityReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求参数错误: " + err.Error()})
		return
	}

	tracked, err := c.svc.Track(ctx, middleware.GetPrincipal(ctx), req.ListingID, req.ActivityType, req.Metadata)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"tracked": tracked})
}
