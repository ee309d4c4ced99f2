package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradefair/internal/api/dto"
	"tradefair/internal/middleware"
	"tradefair/internal/service"
)

// UserController 用户控制器
type UserController struct {
	svc *service.UserService
}

// NewUserController 创建用户控制器
func NewUserController(svc *service.UserService) *UserController {
	return &UserController{svc: svc}
}

// Sync 同步身份档案（首次认证接触时建档）
// POST /api/users/sync
func (c *UserController) Sync(ctx *gin.Context) {
	var req dto.SyncUserReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求参数错误: " + err.Error()})
		return
	}

	user, err := c.svc.Sync(ctx, middleware.GetPrincipal(ctx), req.DisplayName, req.Email)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"user": dto.ToUserVO(user)})
}

// Me 当前用户档案
// GET /api/users/me
func (c *UserController) Me(ctx *gin.Context) {
	user, err := c.svc.ResolveCurrent(ctx, middleware.GetPrincipal(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"user": dto.ToUserVO(user)})
}
