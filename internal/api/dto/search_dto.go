package dto

// ==================== 请求 DTO ====================

// EnhanceSearchReq 搜索意图解析请求
type EnhanceSearchReq struct {
	Query string `json:"query" binding:"required"`
}

// SuggestReq 搜索联想请求
type SuggestReq struct {
	Query string `form:"q"`
}

// ==================== 响应 DTO ====================

// SuggestResp 搜索联想响应
type SuggestResp struct {
	Suggestions []string `json:"suggestions"`
}
