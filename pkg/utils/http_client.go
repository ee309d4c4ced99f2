package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewAPIClient 创建一个配置好超时的 Resty 客户端
// 它是全系统统一的外部 HTTP 请求入口（支付网关、邮件服务）
func NewAPIClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return resty.New().
		SetTimeout(timeout). // 所有出站请求必须有界超时，避免 handler 卡死
		SetHeader("User-Agent", "TradeFair-Go-App/1.0")
}
