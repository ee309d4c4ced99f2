package dto

// ==================== 请求 DTO ====================

// InitPaymentReq 发起支付请求
// Amount 单位为最小货币单位 (kobo)
type InitPaymentReq struct {
	Email     string                 `json:"email"`
	Amount    int64                  `json:"amount"`
	OrderID   int64                  `json:"orderId"`
	Reference string                 `json:"reference"`
	Metadata  map[string]interface{} `json:"metadata"`
}
