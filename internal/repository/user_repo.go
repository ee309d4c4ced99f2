package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tradefair/internal/model"
)

// ==================== UserRepository 用户仓储 ====================

// UserRepository 用户仓储接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByClerkID(ctx context.Context, clerkUserID string) (*model.User, error)
	Upsert(ctx context.Context, user *model.User) error
	UpdateRole(ctx context.Context, id int64, role string) error
}

// ==================== 实现 ====================

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByClerkID(ctx context.Context, clerkUserID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("clerk_user_id = ?", clerkUserID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert 按外部身份主体幂等写入
// 首次认证创建记录，后续只刷新展示名与邮箱，角色不在此处变更
func (r *userRepository) Upsert(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clerk_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "email", "updated_at"}),
		}).
		Create(user).Error
}

func (r *userRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("role", role).Error
}
