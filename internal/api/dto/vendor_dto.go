package dto

import (
	"time"

	"tradefair/internal/model"
)

// ==================== 请求 DTO ====================

// ApplyVendorReq 商家入驻申请请求
type ApplyVendorReq struct {
	BusinessName string `json:"businessName" binding:"required"`
	Description  string `json:"description"`
}

// ApproveVendorReq 批准申请请求
type ApproveVendorReq struct {
	VendorID int64 `json:"vendorId" binding:"required"`
}

// RejectVendorReq 驳回申请请求
type RejectVendorReq struct {
	VendorID int64  `json:"vendorId" binding:"required"`
	Reason   string `json:"reason"`
}

// ==================== 响应 DTO ====================

// VendorResp 商家响应
type VendorResp struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	BusinessName    string `json:"businessName"`
	Description     string `json:"description"`
	Status          string `json:"status"`
	ApprovedAt      string `json:"approvedAt,omitempty"`
	RejectionReason string `json:"rejectionReason,omitempty"`
	ApplicantEmail  string `json:"applicantEmail,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

// ToVendorVO 将数据库 Model 转换为前端 VO
func ToVendorVO(v *model.Vendor) VendorResp {
	resp := VendorResp{
		ID:              v.ID,
		UserID:          v.UserID,
		BusinessName:    v.BusinessName,
		Description:     v.Description,
		Status:          v.Status,
		RejectionReason: v.RejectionReason,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
	if v.ApprovedAt != nil {
		resp.ApprovedAt = v.ApprovedAt.Format(time.RFC3339)
	}
	if v.User != nil {
		resp.ApplicantEmail = v.User.Email
	}
	return resp
}

// ToVendorVOList 批量转换
func ToVendorVOList(vendors []model.Vendor) []VendorResp {
	result := make([]VendorResp, 0, len(vendors))
	for i := range vendors {
		result = append(result, ToVendorVO(&vendors[i]))
	}
	return result
}
