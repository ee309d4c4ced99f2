package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	"tradefair/internal/repository"
	"tradefair/pkg/utils"
)

// ==================== Paystack 网关客户端 ====================

// 固定的支付参数：货币与可用渠道不随请求变化
const paystackCurrency = "NGN"

var paystackChannels = []string{"card", "bank", "ussd", "mobile_money", "bank_transfer"}

// PaymentGateway 支付网关能力抽象
// 测试中可替换为本地实现，核心分支逻辑无需真实网络
type PaymentGateway interface {
	InitializeTransaction(ctx context.Context, req *PaystackInitRequest) (*PaystackInitData, error)
	VerifyTransaction(ctx context.Context, reference string) (*PaystackVerifyData, error)
}

// PaystackInitRequest 交易初始化请求
type PaystackInitRequest struct {
	Email       string                 `json:"email"`
	Amount      int64                  `json:"amount"`
	Reference   string                 `json:"reference"`
	Currency    string                 `json:"currency"`
	Channels    []string               `json:"channels"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// PaystackInitData 交易初始化返回
type PaystackInitData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// PaystackVerifyData 交易校验返回
type PaystackVerifyData struct {
	Status    string                 `json:"status"`
	Reference string                 `json:"reference"`
	Amount    int64                  `json:"amount"`
	Currency  string                 `json:"currency"`
	PaidAt    string                 `json:"paid_at"`
	Channel   string                 `json:"channel"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// paystackEnvelope Paystack 统一响应包装
type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// PaystackConfig Paystack 配置
type PaystackConfig struct {
	BaseURL   string
	SecretKey string
}

// PaystackClient Paystack API 客户端
type PaystackClient struct {
	config *PaystackConfig
	client *resty.Client
}

// NewPaystackClient 创建客户端
func NewPaystackClient(cfg *PaystackConfig) *PaystackClient {
	return &PaystackClient{
		config: cfg,
		client: utils.NewAPIClient(0),
	}
}

// InitializeTransaction 初始化交易，返回托管收银台地址
func (c *PaystackClient) InitializeTransaction(ctx context.Context, req *PaystackInitRequest) (*PaystackInitData, error) {
	envelope, err := c.call(ctx, "POST", "/transaction/initialize", req)
	if err != nil {
		return nil, err
	}

	var data PaystackInitData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: 网关响应格式错误: %v", ErrGateway, err)
	}
	return &data, nil
}

// VerifyTransaction 按商户引用号查询交易结果
func (c *PaystackClient) VerifyTransaction(ctx context.Context, reference string) (*PaystackVerifyData, error) {
	envelope, err := c.call(ctx, "GET", "/transaction/verify/"+reference, nil)
	if err != nil {
		return nil, err
	}

	var data PaystackVerifyData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: 网关响应格式错误: %v", ErrGateway, err)
	}
	return &data, nil
}

// call 发起请求并解开 Paystack 响应包装
// 非 2xx 或 status=false 时附带网关的错误信息返回，便于排障
func (c *PaystackClient) call(ctx context.Context, method, path string, body interface{}) (*paystackEnvelope, error) {
	r := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.config.SecretKey).
		SetHeader("Content-Type", "application/json")
	if body != nil {
		r = r.SetBody(body)
	}

	resp, err := r.Execute(method, c.config.BaseURL+path)
	if err != nil {
		return nil, fmt.Errorf("%w: 请求支付网关失败: %v", ErrGateway, err)
	}

	var envelope paystackEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("%w: 网关响应格式错误 [%d]: %s", ErrGateway, resp.StatusCode(), resp.String())
	}

	if resp.IsError() || !envelope.Status {
		msg := envelope.Message
		if msg == "" {
			msg = resp.String()
		}
		return nil, fmt.Errorf("%w: 支付网关返回 [%d]: %s", ErrGateway, resp.StatusCode(), msg)
	}
	return &envelope, nil
}

// ==================== PaymentService 支付服务 ====================

// InitializePaymentInput 初始化支付输入
type InitializePaymentInput struct {
	Email     string
	Amount    int64
	OrderID   int64
	Reference string
	Metadata  map[string]interface{}
}

// PaymentService 支付桥接
// 幂等与防重复支付由网关按 reference 负责，这里不做本地去重
type PaymentService struct {
	gateway    PaymentGateway
	users      repository.UserRepository
	appBaseURL string
	configured bool
}

// NewPaymentService 创建支付服务
// configured=false 时（未配置密钥）所有操作返回明确的网关错误而非崩溃
func NewPaymentService(gateway PaymentGateway, users repository.UserRepository, appBaseURL string, configured bool) *PaymentService {
	return &PaymentService{
		gateway:    gateway,
		users:      users,
		appBaseURL: appBaseURL,
		configured: configured,
	}
}

// Initialize 初始化支付交易
func (s *PaymentService) Initialize(ctx context.Context, p *Principal, input *InitializePaymentInput) (*PaystackInitData, error) {
	if _, err := resolveUser(ctx, s.users, p); err != nil {
		return nil, err
	}

	if input.Email == "" || input.Amount <= 0 || input.OrderID <= 0 || input.Reference == "" {
		return nil, fmt.Errorf("%w: email、amount、orderId、reference 均为必填", ErrValidation)
	}
	if !s.configured {
		return nil, fmt.Errorf("%w: 支付系统未配置 (payment system not configured)", ErrGateway)
	}

	metadata := map[string]interface{}{
		"order_id": input.OrderID,
	}
	for k, v := range input.Metadata {
		metadata[k] = v
	}

	return s.gateway.InitializeTransaction(ctx, &PaystackInitRequest{
		Email:       input.Email,
		Amount:      input.Amount,
		Reference:   input.Reference,
		Currency:    paystackCurrency,
		Channels:    paystackChannels,
		CallbackURL: s.appBaseURL + "/payment/callback",
		Metadata:    metadata,
	})
}

// Verify 校验支付交易
func (s *PaymentService) Verify(ctx context.Context, p *Principal, reference string) (*PaystackVerifyData, error) {
	if _, err := resolveUser(ctx, s.users, p); err != nil {
		return nil, err
	}
	if reference == "" {
		return nil, fmt.Errorf("%w: reference 不能为空", ErrValidation)
	}
	if !s.configured {
		return nil, fmt.Errorf("%w: 支付系统未配置 (payment system not configured)", ErrGateway)
	}
	return s.gateway.VerifyTransaction(ctx, reference)
}
