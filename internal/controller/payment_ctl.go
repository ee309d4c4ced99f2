package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradefair/internal/api/dto"
	"tradefair/internal/middleware"
	"tradefair/internal/service"
)

// PaymentController 支付控制器
type PaymentController struct {
	svc *service.PaymentService
}

// NewPaymentController 创建支付控制器
func NewPaymentController(svc *service.PaymentService) *PaymentController {
	return &PaymentController{svc: svc}
}

// Initialize 发起支付，返回托管收银台地址
// POST /api/payment/initialize
func (c *PaymentController) Initialize(ctx *gin.Context) {
	var req dto.InitPaymentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求参数错误: " + err.Error()})
		return
	}

	data, err := c.svc.Initialize(ctx, middleware.GetPrincipal(ctx), &service.InitializePaymentInput{
		Email:     req.Email,
		Amount:    req.Amount,
		OrderID:   req.OrderID,
		Reference: req.Reference,
		Metadata:  req.Metadata,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{
		"authorizationUrl": data.AuthorizationURL,
		"accessCode":       data.AccessCode,
		"reference":        data.Reference,
	})
}

// Verify 核验支付结果
// GET /api/payment/verify?reference=
func (c *PaymentController) Verify(ctx *gin.Context) {
	data, err := c.svc.Verify(ctx, middleware.GetPrincipal(ctx), ctx.Query("reference"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{
		"status":    data.Status,
		"reference": data.Reference,
		"amount":    data.Amount,
		"currency":  data.Currency,
		"paidAt":    data.PaidAt,
		"channel":   data.Channel,
		"metadata":  data.Metadata,
	})
}
