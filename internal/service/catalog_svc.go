package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"tradefair/internal/model"
	"tradefair/internal/repository"
)

// ==================== CatalogService 商品目录服务 ====================

// CatalogService 卖家商品管理
// 所有写操作都限定在调用方自己的卖家身份之内
type CatalogService struct {
	listings repository.ListingRepository
	vendors  repository.VendorRepository
	users    repository.UserRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(
	listings repository.ListingRepository,
	vendors repository.VendorRepository,
	users repository.UserRepository,
) *CatalogService {
	return &CatalogService{
		listings: listings,
		vendors:  vendors,
		users:    users,
	}
}

// ==================== 输入 ====================

// CreateListingInput 创建商品输入
// 价格与库存以字符串接收，由服务端解析校验为非负整数
type CreateListingInput struct {
	Title       string
	Description string
	Price       string
	Inventory   string
	Categories  []string
	Images      []string
}

// ==================== 操作 ====================

// ListForVendor 卖家自己的商品列表（最新优先）
func (s *CatalogService) ListForVendor(ctx context.Context, p *Principal) ([]model.Listing, error) {
	_, vendor, err := s.requireVendor(ctx, p)
	if err != nil {
		return nil, err
	}
	listings, err := s.listings.ListByVendor(ctx, vendor.ID)
	if err != nil {
		return nil, fmt.Errorf("查询商品列表失败: %w", err)
	}
	return listings, nil
}

// Create 创建商品
// 标题/描述/价格/库存/至少一个分类/至少一张图片均为必填；
// 价格与库存必须是合法的非负整数；新商品默认上架
func (s *CatalogService) Create(ctx context.Context, p *Principal, input *CreateListingInput) (*model.Listing, error) {
	_, vendor, err := s.requireVendor(ctx, p)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: 标题和描述不能为空", ErrValidation)
	}
	if len(input.Categories) == 0 {
		return nil, fmt.Errorf("%w: 至少选择一个分类", ErrValidation)
	}
	if len(input.Images) == 0 {
		return nil, fmt.Errorf("%w: 至少上传一张图片", ErrValidation)
	}

	price, err := strconv.ParseInt(strings.TrimSpace(input.Price), 10, 64)
	if err != nil || price < 0 {
		return nil, fmt.Errorf("%w: 价格必须是非负整数（最小货币单位）", ErrValidation)
	}
	inventory, err := strconv.Atoi(strings.TrimSpace(input.Inventory))
	if err != nil || inventory < 0 {
		return nil, fmt.Errorf("%w: 库存必须是非负整数", ErrValidation)
	}

	listing := &model.Listing{
		VendorID:    vendor.ID,
		Title:       title,
		Description: description,
		PriceAmount: price,
		Inventory:   inventory,
		Categories:  input.Categories,
		Images:      input.Images,
		IsActive:    true,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("创建商品失败: %w", err)
	}
	return listing, nil
}

// ToggleActive 上/下架
// 所有权检查先于存在性暴露：别家的商品一律返回 ErrNotFound
func (s *CatalogService) ToggleActive(ctx context.Context, p *Principal, listingID int64, isActive bool) (*model.Listing, error) {
	_, vendor, err := s.requireVendor(ctx, p)
	if err != nil {
		return nil, err
	}

	listing, err := s.listings.GetByIDForVendor(ctx, listingID, vendor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 商品不存在", ErrNotFound)
		}
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}

	if err := s.listings.UpdateFields(ctx, listing.ID, map[string]interface{}{
		"is_active": isActive,
	}); err != nil {
		return nil, fmt.Errorf("更新商品状态失败: %w", err)
	}

	listing.IsActive = isActive
	return listing, nil
}

// GetDetails 商品详情（同样按所有权限定）
func (s *CatalogService) GetDetails(ctx context.Context, p *Principal, listingID int64) (*model.Listing, error) {
	_, vendor, err := s.requireVendor(ctx, p)
	if err != nil {
		return nil, err
	}

	listing, err := s.listings.GetByIDForVendor(ctx, listingID, vendor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 商品不存在", ErrNotFound)
		}
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}
	return listing, nil
}

// ==================== 辅助方法 ====================

// requireVendor 解析当前用户并要求其为已通过审核的卖家
func (s *CatalogService) requireVendor(ctx context.Context, p *Principal) (*model.User, *model.Vendor, error) {
	user, err := resolveUser(ctx, s.users, p)
	if err != nil {
		return nil, nil, err
	}

	vendor, err := s.vendors.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: 仅卖家可执行该操作", ErrForbidden)
		}
		return nil, nil, fmt.Errorf("查询卖家信息失败: %w", err)
	}
	if !vendor.IsApproved() {
		return nil, nil, fmt.Errorf("%w: 卖家未通过审核", ErrForbidden)
	}
	return user, vendor, nil
}
