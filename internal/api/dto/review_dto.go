package dto

import (
	"time"

	"tradefair/internal/model"
)

// ==================== 请求 DTO ====================

// CreateReviewReq 发表评价请求
type CreateReviewReq struct {
	ListingID int64  `json:"listingId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Body      string `json:"body"`
}

// RespondReviewReq 商家回复评价请求
type RespondReviewReq struct {
	Response string `json:"response" binding:"required"`
}

// ==================== 响应 DTO ====================

// ReviewResp 评价响应
type ReviewResp struct {
	ID                int64  `json:"id"`
	ListingID         int64  `json:"listingId"`
	AuthorID          int64  `json:"authorId"`
	AuthorName        string `json:"authorName,omitempty"`
	Rating            int    `json:"rating"`
	Body              string `json:"body"`
	HelpfulCount      int64  `json:"helpfulCount"`
	VendorResponse    string `json:"vendorResponse,omitempty"`
	VendorRespondedAt string `json:"vendorRespondedAt,omitempty"`
	CreatedAt         string `json:"createdAt"`
}

// ToReviewVO 将数据库 Model 转换为前端 VO
func ToReviewVO(r *model.Review) ReviewResp {
	resp := ReviewResp{
		ID:             r.ID,
		ListingID:      r.ListingID,
		AuthorID:       r.AuthorID,
		Rating:         r.Rating,
		Body:           r.Body,
		HelpfulCount:   r.HelpfulCount,
		VendorResponse: r.VendorResponse,
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
	if r.VendorRespondedAt != nil {
		resp.VendorRespondedAt = r.VendorRespondedAt.Format(time.RFC3339)
	}
	if r.Author != nil {
		resp.AuthorName = r.Author.DisplayName
	}
	return resp
}

// ToReviewVOList 批量转换
func ToReviewVOList(reviews []model.Review) []ReviewResp {
	result := make([]ReviewResp, 0, len(reviews))
	for i := range reviews {
		result = append(result, ToReviewVO(&reviews[i]))
	}
	return result
}
