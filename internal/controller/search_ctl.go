package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradefair/internal/api/dto"
	"tradefair/internal/service"
)

// SearchController 搜索控制器
type SearchController struct {
	svc *service.SearchService
}

// NewSearchController 创建搜索控制器
func NewSearchController(svc *service.SearchService) *SearchController {
	return &SearchController{svc: svc}
}

// Enhance 搜索意图解析
// POST /api/search/enhance
func (c *SearchController) Enhance(ctx *gin.Context) {
	var req dto.EnhanceSearchReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "请求参数错误: " + err.Error()})
		return
	}

	result, err := c.svc.Enhance(ctx, req.Query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"enhanced": result, "original": req.Query})
}

// Suggestions 搜索联想
// GET /api/search/suggestions?q=
func (c *SearchController) Suggestions(ctx *gin.Context) {
	suggestions, err := c.svc.Suggestions(ctx, ctx.Query("q"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, gin.H{"suggestions": suggestions})
}
