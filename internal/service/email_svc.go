package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"tradefair/pkg/utils"
)

// ==================== EmailSender 邮件发送 ====================

// EmailSender 邮件发送接口
// 外部邮件服务的能力抽象，测试中可替换为内存实现
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// EmailConfig 邮件服务配置
type EmailConfig struct {
	APIURL string
	APIKey string
	From   string
}

// EmailService 基于 HTTP API 的邮件发送实现（Resend 风格）
type EmailService struct {
	config *EmailConfig
	client *resty.Client
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *EmailConfig) *EmailService {
	return &EmailService{
		config: cfg,
		client: utils.NewAPIClient(0),
	}
}

// Send 发送邮件
// 调用方按尽力而为处理：失败只记日志，不让主流程失败
func (s *EmailService) Send(ctx context.Context, to, subject, html string) error {
	if s.config.APIKey == "" {
		return fmt.Errorf("%w: 邮件服务未配置", ErrGateway)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.config.APIKey).
		SetBody(map[string]interface{}{
			"from":    s.config.From,
			"to":      []string{to},
			"subject": subject,
			"html":    html,
		}).
		Post(s.config.APIURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: 邮件服务返回 [%d]: %s", ErrGateway, resp.StatusCode(), resp.String())
	}
	return nil
}
