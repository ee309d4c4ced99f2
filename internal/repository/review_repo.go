package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"tradefair/internal/model"
)

// ==================== ReviewRepository 评价仓储 ====================

// ReviewRepository 评价仓储接口
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id int64) (*model.Review, error)
	GetByIDWithListing(ctx context.Context, id int64) (*model.Review, error)
	ListByListing(ctx context.Context, listingID int64) ([]model.Review, error)

	// ToggleHelpful 投票开关：有投票行则撤销，没有则投票。
	// 必须单事务执行，撤销以删除行数为准，计数器以投票行数回写，
	// 防止两个并发请求同时撤销时计数低于真实票数
	ToggleHelpful(ctx context.Context, reviewID, userID int64) (helpfulCount int64, isHelpful bool, err error)

	SetVendorResponse(ctx context.Context, reviewID int64, response string, respondedAt time.Time) error
}

// ==================== 实现 ====================

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByIDWithListing(ctx context.Context, id int64) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).Preload("Listing").First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByListing(ctx context.Context, listingID int64) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ToggleHelpful(ctx context.Context, reviewID, userID int64) (int64, bool, error) {
	var helpfulCount int64
	var isHelpful bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review model.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			return err
		}

		// 先尝试撤销：删除行数为 0 说明当前没有可撤销的投票，
		// 包括另一个并发请求已抢先撤销的情况，此时转为投票
		res := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).
			Delete(&model.ReviewHelpful{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 并发重复投票由唯一索引拦截
			if err := tx.Create(&model.ReviewHelpful{ReviewID: reviewID, UserID: userID}).Error; err != nil {
				return err
			}
			isHelpful = true
		} else {
			isHelpful = false
		}

		// 计数器以投票行数为准回写，而非增量更新，
		// 保证 helpful_count 始终等于 review_helpfuls 的行数
		var votes int64
		if err := tx.Model(&model.ReviewHelpful{}).
			Where("review_id = ?", reviewID).
			Count(&votes).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Review{}).Where("id = ?", reviewID).
			UpdateColumn("helpful_count", votes).Error; err != nil {
			return err
		}
		helpfulCount = votes
		return nil
	})

	return helpfulCount, isHelpful, err
}

func (r *reviewRepository) SetVendorResponse(ctx context.Context, reviewID int64, response string, respondedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Review{}).Where("id = ?", reviewID).Updates(map[string]interface{}{
		"vendor_response":     response,
		"vendor_responded_at": &respondedAt,
	}).Error
}
