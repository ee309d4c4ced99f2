package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"tradefair/internal/model"
	"tradefair/internal/repository"
)

// ==================== ReviewService 评价服务 ====================

// ReviewService 评价互动
type ReviewService struct {
	reviews  repository.ReviewRepository
	listings repository.ListingRepository
	vendors  repository.VendorRepository
	users    repository.UserRepository
}

// NewReviewService 创建评价服务
func NewReviewService(
	reviews repository.ReviewRepository,
	listings repository.ListingRepository,
	vendors repository.VendorRepository,
	users repository.UserRepository,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		listings: listings,
		vendors:  vendors,
		users:    users,
	}
}

// ==================== 评价创建与查询 ====================

// Create 买家发表评价
func (s *ReviewService) Create(ctx context.Context, p *Principal, listingID int64, rating int, body string) (*model.Review, error) {
	user, err := resolveUser(ctx, s.users, p)
	if err != nil {
		return nil, err
	}

	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: 评分必须在 1-5 之间", ErrValidation)
	}
	if _, err := s.listings.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 商品不存在", ErrNotFound)
		}
		return nil, fmt.Errorf("查询商品失败: %w", err)
	}

	review := &model.Review{
		ListingID: listingID,
		AuthorID:  user.ID,
		Rating:    rating,
		Body:      strings.TrimSpace(body),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("创建评价失败: %w", err)
	}
	return review, nil
}

// ListForListing 商品评价列表（公开，最新优先）
func (s *ReviewService) ListForListing(ctx context.Context, listingID int64) ([]model.Review, error) {
	reviews, err := s.reviews.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("查询评价列表失败: %w", err)
	}
	return reviews, nil
}

// ==================== 有用投票 ====================

// ToggleHelpful 切换「有用」投票
// 行的存在即代表投票，计数器与行数在同一事务内保持一致
func (s *ReviewService) ToggleHelpful(ctx context.Context, p *Principal, reviewID int64) (helpfulCount int64, isHelpful bool, err error) {
	user, err := resolveUser(ctx, s.users, p)
	if err != nil {
		return 0, false, err
	}

	helpfulCount, isHelpful, err = s.reviews.ToggleHelpful(ctx, reviewID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, fmt.Errorf("%w: 评价不存在", ErrNotFound)
		}
		return 0, false, fmt.Errorf("投票失败: %w", err)
	}
	return helpfulCount, isHelpful, nil
}

// ==================== 卖家回复 ====================

// Respond 卖家回复评价
// 仅评价所属商品的卖家可回复，且只能回复一次（一次性写入）
func (s *ReviewService) Respond(ctx context.Context, p *Principal, reviewID int64, responseText string) (*model.Review, error) {
	user, err := resolveUser(ctx, s.users, p)
	if err != nil {
		return nil, err
	}

	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		return nil, fmt.Errorf("%w: 回复内容不能为空", ErrValidation)
	}

	vendor, err := s.vendors.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 仅卖家可回复评价", ErrForbidden)
		}
		return nil, fmt.Errorf("查询卖家信息失败: %w", err)
	}

	review, err := s.reviews.GetByIDWithListing(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 评价不存在", ErrNotFound)
		}
		return nil, fmt.Errorf("查询评价失败: %w", err)
	}
	if review.Listing == nil || review.Listing.VendorID != vendor.ID {
		return nil, fmt.Errorf("%w: 只能回复自己商品的评价", ErrForbidden)
	}
	if review.HasVendorResponse() {
		return nil, fmt.Errorf("%w: 该评价已回复过", ErrInvalidState)
	}

	now := time.Now()
	if err := s.reviews.SetVendorResponse(ctx, review.ID, responseText, now); err != nil {
		return nil, fmt.Errorf("保存回复失败: %w", err)
	}

	review.VendorResponse = responseText
	review.VendorRespondedAt = &now
	return review, nil
}
