package repository

import (
	"context"

	"gorm.io/gorm"

	"tradefair/internal/model"
)

// ==================== ListingRepository 商品仓储 ====================

// ListingRepository 商品仓储接口
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	GetByID(ctx context.Context, id int64) (*model.Listing, error)
	// GetByIDForVendor 所有权限定读取：非本卖家的商品一律按不存在处理
	GetByIDForVendor(ctx context.Context, id, vendorID int64) (*model.Listing, error)
	ListByVendor(ctx context.Context, vendorID int64) ([]model.Listing, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error

	// 搜索相关
	SearchActive(ctx context.Context, keyword string, limit int) ([]model.Listing, error)
	CategoryExists(ctx context.Context, category string) (bool, error)
}

// ==================== 实现 ====================

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository 创建商品仓储
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.WithContext(ctx).First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) GetByIDForVendor(ctx context.Context, id, vendorID int64) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.WithContext(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		First(&listing).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListByVendor 卖家自己的商品列表，最新的排前面
func (r *listingRepository) ListByVendor(ctx context.Context, vendorID int64) ([]model.Listing, error) {
	var listings []model.Listing
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (r *listingRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Listing{}).Where("id = ?", id).Updates(fields).Error
}

// SearchActive 在上架商品中做大小写不敏感的标题/描述子串匹配
func (r *listingRepository) SearchActive(ctx context.Context, keyword string, limit int) ([]model.Listing, error) {
	var listings []model.Listing
	pattern := "%" + keyword + "%"
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&listings).Error
	return listings, err
}

// CategoryExists 是否存在携带该分类的上架商品
// 分类存储为 JSON 数组，这里做文本包含匹配（分类值不含引号与特殊字符）
func (r *listingRepository) CategoryExists(ctx context.Context, category string) (bool, error) {
	var count int64
	pattern := "%\"" + category + "\"%"
	err := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("is_active = ?", true).
		Where("CAST(categories AS TEXT) LIKE ?", pattern).
		Count(&count).Error
	return count > 0, err
}
