package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradefair/internal/api/dto"
	"tradefair/internal/middleware"
	"tradefair/internal/service"
)

// ReviewController 评价控制器
type ReviewController struct {
	svc *service.ReviewService
}

// NewReviewController 创建评价控制器
func NewReviewController(svc *service.ReviewService) *ReviewController {
	return &ReviewController{svc: svc}
}

// Create 买家发表评价
// POST /api/reviews
func (c *ReviewController) Create(ctx *gin.Context) {
	var req dto.CreateReviewReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求参数错误: " + err.Error()})
		return
	}

	review, err := c.svc.Create(ctx, middleware.GetPrincipal(ctx), req.ListingID, req.Rating, req.Body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"review": dto.ToReviewVO(review)})
}

// ListForListing 商品评价列表（公开）
// GET /api/listings/:id/reviews
func (c *ReviewController) ListForListing(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	reviews, err := c.svc.ListForListing(ctx, id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{
		"reviews": dto.ToReviewVOList(reviews),
		"total":   len(reviews),
	})
}

// ToggleHelpful 切换"有帮助"投票
// POST /api/reviews/:id/helpful
func (c *ReviewController) ToggleHelpful(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	count, isHelpful, err := c.svc.ToggleHelpful(ctx, middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{
		"helpfulCount": count,
		"isHelpful":    isHelpful,
	})
}

// Respond 商家回复评价
// POST /api/reviews/:id/respond
func (c *ReviewController) Respond(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RespondReviewReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求参数错误: " + err.Error()})
		return
	}

	review, err := c.svc.Respond(ctx, middleware.GetPrincipal(ctx), id, req.Response)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"review": dto.ToReviewVO(review)})
}
