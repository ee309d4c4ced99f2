package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tradefair/internal/model"
	"tradefair/internal/repository"
	"tradefair/pkg/logger"
)

// ==================== VendorService 卖家入驻服务 ====================

// VendorService 卖家入驻与审核
type VendorService struct {
	vendors repository.VendorRepository
	users   repository.UserRepository
	email   EmailSender
}

// NewVendorService 创建卖家服务
func NewVendorService(
	vendors repository.VendorRepository,
	users repository.UserRepository,
	email EmailSender,
) *VendorService {
	return &VendorService{
		vendors: vendors,
		users:   users,
		email:   email,
	}
}

// ==================== 入驻申请 ====================

// Apply 提交入驻申请
// 每个用户最多一条卖家记录，重复申请返回 ErrInvalidState
func (s *VendorService) Apply(ctx context.Context, p *Principal, businessName, description string) (*model.Vendor, error) {
	user, err := resolveUser(ctx, s.users, p)
	if err != nil {
		return nil, err
	}

	businessName = strings.TrimSpace(businessName)
	if businessName == "" {
		return nil, fmt.Errorf("%w: 店铺名称不能为空", ErrValidation)
	}

	if existing, err := s.vendors.GetByUserID(ctx, user.ID); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: 已存在入驻申请", ErrInvalidState)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询入驻记录失败: %w", err)
	}

	vendor := &model.Vendor{
		UserID:       user.ID,
		BusinessName: businessName,
		Description:  description,
		Status:       model.VendorStatusPending,
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, fmt.Errorf("创建入驻申请失败: %w", err)
	}
	return vendor, nil
}

// ==================== 管理员审核 ====================

// ListPending 待审核申请列表（按申请时间升序）
func (s *VendorService) ListPending(ctx context.Context, p *Principal) ([]model.Vendor, error) {
	if _, err := s.requireAdmin(ctx, p); err != nil {
		return nil, err
	}
	vendors, err := s.vendors.ListByStatus(ctx, model.VendorStatusPending)
	if err != nil {
		return nil, fmt.Errorf("查询待审核列表失败: %w", err)
	}
	return vendors, nil
}

// Approve 审核通过
// 仅允许 PENDING → APPROVED：重复审批被拒绝而非静默重复
func (s *VendorService) Approve(ctx context.Context, p *Principal, vendorID int64) (*model.Vendor, error) {
	if _, err := s.requireAdmin(ctx, p); err != nil {
		return nil, err
	}

	vendor, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 入驻申请不存在", ErrNotFound)
		}
		return nil, fmt.Errorf("查询入驻申请失败: %w", err)
	}
	if !vendor.IsPending() {
		return nil, fmt.Errorf("%w: 该申请已处理", ErrInvalidState)
	}

	notification := &model.Notification{
		UserID:  vendor.UserID,
		Type:    model.NotificationVendorApproved,
		Title:   "入驻审核通过",
		Message: fmt.Sprintf("恭喜，您的店铺「%s」已通过审核，现在可以发布商品了。", vendor.BusinessName),
		Metadata: datatypes.JSONMap{
			"vendor_id": vendor.ID,
		},
	}
	if err := s.vendors.Approve(ctx, vendor.ID, notification); err != nil {
		return nil, fmt.Errorf("审核通过失败: %w", err)
	}

	s.sendMail(ctx, vendor,
		"TradeFair 入驻审核通过",
		fmt.Sprintf("<p>您的店铺 <b>%s</b> 已通过审核。</p>", vendor.BusinessName))

	return s.vendors.GetByID(ctx, vendor.ID)
}

// Reject 审核驳回
// 与 Approve 对称，同样仅允许从 PENDING 流转
func (s *VendorService) Reject(ctx context.Context, p *Principal, vendorID int64, reason string) (*model.Vendor, error) {
	if _, err := s.requireAdmin(ctx, p); err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: 驳回原因不能为空", ErrValidation)
	}

	vendor, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 入驻申请不存在", ErrNotFound)
		}
		return nil, fmt.Errorf("查询入驻申请失败: %w", err)
	}
	if !vendor.IsPending() {
		return nil, fmt.Errorf("%w: 该申请已处理", ErrInvalidState)
	}

	notification := &model.Notification{
		UserID:  vendor.UserID,
		Type:    model.NotificationVendorRejected,
		Title:   "入驻审核未通过",
		Message: fmt.Sprintf("很遗憾，您的店铺「%s」未通过审核。原因：%s", vendor.BusinessName, reason),
		Metadata: datatypes.JSONMap{
			"vendor_id": vendor.ID,
			"reason":    reason,
		},
	}
	if err := s.vendors.Reject(ctx, vendor.ID, reason, notification); err != nil {
		return nil, fmt.Errorf("审核驳回失败: %w", err)
	}

	s.sendMail(ctx, vendor,
		"TradeFair 入驻审核结果",
		fmt.Sprintf("<p>您的店铺 <b>%s</b> 未通过审核：%s</p>", vendor.BusinessName, reason))

	return s.vendors.GetByID(ctx, vendor.ID)
}

// ==================== 辅助方法 ====================

func (s *VendorService) requireAdmin(ctx context.Context, p *Principal) (*model.User, error) {
	user, err := resolveUser(ctx, s.users, p)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, fmt.Errorf("%w: 需要管理员权限", ErrForbidden)
	}
	return user, nil
}

// sendMail 邮件为尽力而为的副作用，失败只记日志
func (s *VendorService) sendMail(ctx context.Context, vendor *model.Vendor, subject, html string) {
	if s.email == nil || vendor.User == nil || vendor.User.Email == "" {
		return
	}
	if err := s.email.Send(ctx, vendor.User.Email, subject, html); err != nil {
		logger.L.Warn("入驻审核邮件发送失败",
			zap.Int64("vendor_id", vendor.ID),
			zap.Error(err))
	}
}
