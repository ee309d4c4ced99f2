package dto

import (
	"time"

	"tradefair/internal/model"
)

// ==================== 响应 DTO ====================

// NotificationResp 通知响应
type NotificationResp struct {
	ID        int64                  `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Read      bool                   `json:"read"`
	ReadAt    string                 `json:"readAt,omitempty"`
	CreatedAt string                 `json:"createdAt"`
}

// ToNotificationVO 将数据库 Model 转换为前端 VO
func ToNotificationVO(n *model.Notification) NotificationResp {
	resp := NotificationResp{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Metadata:  n.Metadata,
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		resp.ReadAt = n.ReadAt.Format(time.RFC3339)
	}
	return resp
}

// ToNotificationVOList 批量转换
func ToNotificationVOList(notifications []model.Notification) []NotificationResp {
	result := make([]NotificationResp, 0, len(notifications))
	for i := range notifications {
		result = append(result, ToNotificationVO(&notifications[i]))
	}
	return result
}
