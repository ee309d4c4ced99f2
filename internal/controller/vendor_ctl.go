package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tradefair/internal/api/dto"
	"tradefair/internal/middleware"
	"tradefair/internal/service"
)

// VendorController 商家入驻控制器
type VendorController struct {
	svc *service.VendorService
}

// NewVendorController 创建商家入驻控制器
func NewVendorController(svc *service.VendorService) *VendorController {
	return &VendorController{svc: svc}
}

// Apply 提交入驻申请
// POST /api/vendors/apply
func (c *VendorController) Apply(ctx *gin.Context) {
	var req dto.ApplyVendorReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求参数错误: " + err.Error()})
		return
	}

	vendor, err := c.svc.Apply(ctx, middleware.GetPrincipal(ctx), req.BusinessName, req.Description)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"vendor": dto.ToVendorVO(vendor)})
}

// ==================== 管理端 ====================

// AdminController 平台管理控制器
type AdminController struct {
	vendorSvc *service.VendorService
}

// NewAdminController 创建平台管理控制器
func NewAdminController(vendorSvc *service.VendorService) *AdminController {
	return &AdminController{vendorSvc: vendorSvc}
}

// ListPendingVendors 待审申请列表（按提交时间正序）
// GET /api/admin/vendors/pending
func (c *AdminController) ListPendingVendors(ctx *gin.Context) {
	vendors, err := c.vendorSvc.ListPending(ctx, middleware.GetPrincipal(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{
		"vendors": dto.ToVendorVOList(vendors),
		"total":   len(vendors),
	})
}

// ApproveVendor 批准入驻申请
// POST /api/admin/vendors/approve
func (c *AdminController) ApproveVendor(ctx *gin.Context) {
	var req dto.ApproveVendorReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求参数错误: " + err.Error()})
		return
	}

	vendor, err := c.vendorSvc.Approve(ctx, middleware.GetPrincipal(ctx), req.VendorID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"vendor": dto.ToVendorVO(vendor)})
}

// RejectVendor 驳回入驻申请
// POST /api/admin/vendors/reject
func (c *AdminController) RejectVendor(ctx *gin.Context) {
	var req dto.RejectVendorReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求参数错误: " + err.Error()})
		return
	}

	vendor, err := c.vendorSvc.Reject(ctx, middleware.GetPrincipal(ctx), req.VendorID, req.Reason)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"vendor": dto.ToVendorVO(vendor)})
}

// parseIDParam 解析路径中的数字 ID
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "无效的 ID"})
		return 0, false
	}
	return id, true
}
