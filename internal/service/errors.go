package service

import "errors"

// ==================== 领域错误 ====================

// 统一的领域错误分类，由 controller 层映射为 HTTP 状态码：
// ErrUnauthenticated → 401
// ErrForbidden       → 403
// ErrNotFound        → 404（含所有权不匹配，避免泄露资源存在性）
// ErrValidation      → 400
// ErrInvalidState    → 400
// ErrGateway         → 500（附带下游错误信息）
var (
	ErrUnauthenticated = errors.New("未认证")
	ErrForbidden       = errors.New("无权限")
	ErrNotFound        = errors.New("资源不存在")
	ErrValidation      = errors.New("参数错误")
	ErrInvalidState    = errors.New("当前状态不允许该操作")
	ErrGateway         = errors.New("下游服务错误")
)
