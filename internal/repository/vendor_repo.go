package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tradefair/internal/model"
)

// ==================== VendorRepository 卖家仓储 ====================

// VendorRepository 卖家仓储接口
type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	GetByID(ctx context.Context, id int64) (*model.Vendor, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Vendor, error)
	ListByStatus(ctx context.Context, status string) ([]model.Vendor, error)

	// Approve 审核通过：状态流转 + 用户角色提升 + 站内通知，单事务完成
	Approve(ctx context.Context, vendorID int64, notification *model.Notification) error
	// Reject 审核驳回：状态流转 + 驳回原因 + 站内通知，单事务完成
	Reject(ctx context.Context, vendorID int64, reason string, notification *model.Notification) error
}

// ==================== 实现 ====================

type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository 创建卖家仓储
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

func (r *vendorRepository) GetByID(ctx context.Context, id int64) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.WithContext(ctx).Preload("User").First(&vendor, id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) GetByUserID(ctx context.Context, userID int64) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// ListByStatus 按状态查询，申请时间升序（最早的排前面）
func (r *vendorRepository) ListByStatus(ctx context.Context, status string) ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&vendors).Error
	return vendors, err
}

func (r *vendorRepository) Approve(ctx context.Context, vendorID int64, notification *model.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&model.Vendor{}).Where("id = ?", vendorID).Updates(map[string]interface{}{
			"status":           model.VendorStatusApproved,
			"approved_at":      &now,
			"rejection_reason": "", // 通过时清除历史驳回原因
		}).Error; err != nil {
			return err
		}

		var vendor model.Vendor
		if err := tx.First(&vendor, vendorID).Error; err != nil {
			return err
		}

		// 审核通过后用户角色提升为 VENDOR
		if err := tx.Model(&model.User{}).Where("id = ?", vendor.UserID).
			Update("role", model.RoleVendor).Error; err != nil {
			return err
		}

		return tx.Create(notification).Error
	})
}

func (r *vendorRepository) Reject(ctx context.Context, vendorID int64, reason string, notification *model.Notification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Vendor{}).Where("id = ?", vendorID).Updates(map[string]interface{}{
			"status":           model.VendorStatusRejected,
			"rejection_reason": reason,
		}).Error; err != nil {
			return err
		}

		return tx.Create(notification).Error
	})
}
