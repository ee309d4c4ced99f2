package dto

// ==================== 请求 DTO ====================

// TrackActivityReq 行为埋点请求
type TrackActivityReq struct {
	ListingID    *int64                 `json:"listingId"`
	ActivityType string                 `json:"activityType" binding:"required"`
	Metadata     map[string]interface{} `json:"metadata"`
}
