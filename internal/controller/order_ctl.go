package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradefair/internal/api/dto"
	"tradefair/internal/middleware"
	"tradefair/internal/service"
)

// OrderController 订单控制器
type OrderController struct {
	svc *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(svc *service.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

// MyOrders 买家订单列表
// GET /api/orders/my-orders
func (c *OrderController) MyOrders(ctx *gin.Context) {
	orders, err := c.svc.ListForBuyer(ctx, middleware.GetPrincipal(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{
		"orders": dto.ToOrderVOList(orders),
		"total":  len(orders),
	})
}

// Detail 买家订单详情（仅限本人订单）
// GET /api/orders/:id
func (c *OrderController) Detail(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	order, err := c.svc.GetForBuyer(ctx, middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"order": dto.ToOrderVO(order)})
}

// VendorOrders 商家订单列表
// GET /api/vendor/orders
func (c *OrderController) VendorOrders(ctx *gin.Context) {
	orders, err := c.svc.ListForVendor(ctx, middleware.GetPrincipal(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{
		"orders": dto.ToOrderVOList(orders),
		"total":  len(orders),
	})
}

// UpdateStatus 商家推进订单状态
// PATCH /api/vendor/orders/:id/update-status
func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求参数错误: " + err.Error()})
		return
	}

	order, err := c.svc.UpdateStatus(ctx, middleware.GetPrincipal(ctx), id, req.Status, req.TrackingNumber)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"order": dto.ToOrderVO(order)})
}
