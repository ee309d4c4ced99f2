package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradefair/internal/api/dto"
	"tradefair/internal/middleware"
	"tradefair/internal/service"
)

// ProductController 商品控制器（商家侧）
type ProductController struct {
	svc *service.CatalogService
}

// NewProductController 创建商品控制器
func NewProductController(svc *service.CatalogService) *ProductController {
	return &ProductController{svc: svc}
}

// List 本店商品列表
// GET /api/vendor/products
func (c *ProductController) List(ctx *gin.Context) {
	listings, err := c.svc.ListForVendor(ctx, middleware.GetPrincipal(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{
		"products": dto.ToListingVOList(listings),
		"total":    len(listings),
	})
}

// Create 创建商品
// POST /api/vendor/products
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.CreateListingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求参数错误: " + err.Error()})
		return
	}

	listing, err := c.svc.Create(ctx, middleware.GetPrincipal(ctx), &service.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Inventory:   req.Inventory,
		Categories:  req.Categories,
		Images:      req.Images,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"product": dto.ToListingVO(listing)})
}

// ToggleActive 上下架商品
// PATCH /api/vendor/products/:id/active
func (c *ProductController) ToggleActive(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ToggleActiveReq
	if err := ctx.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "isActive 为必填"})
		return
	}

	listing, err := c.svc.ToggleActive(ctx, middleware.GetPrincipal(ctx), id, *req.IsActive)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"product": dto.ToListingVO(listing)})
}

// Detail 商品详情
// GET /api/vendor/products/:id
func (c *ProductController) Detail(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	listing, err := c.svc.GetDetails(ctx, middleware.GetPrincipal(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"product": dto.ToListingVO(listing)})
}
